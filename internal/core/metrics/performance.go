package metrics

import (
	"sort"

	"hranalytics/internal/core/records"
)

type dayBucket struct {
	total     int
	satisfied int
	resolved  int
	latency   float64
	pairs     int
}

func (b *dayBucket) add(r records.QueryRecord) {
	b.total++
	if r.Satisfied() {
		b.satisfied++
	}
	if r.Resolved {
		b.resolved++
	}
	if lat, ok := r.Latency(); ok {
		b.latency += lat
		b.pairs++
	}
}

// Performance builds the per-day satisfaction, resolution, and latency chart
// the daily latency average divides by the day's query count, not its valid pair count
// records without a date key are left out of the chart and the summary alike
func Performance(recs []records.QueryRecord) PerformanceReport {
	buckets := make(map[string]*dayBucket)
	var sum dayBucket

	for _, r := range recs {
		day, ok := r.DayKey()
		if !ok {
			continue
		}
		b, ok := buckets[day]
		if !ok {
			b = &dayBucket{}
			buckets[day] = b
		}
		b.add(r)
		sum.add(r)
	}

	days := make([]string, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	sort.Strings(days)

	chart := make([]DailyPerformance, 0, len(days))
	for _, d := range days {
		b := buckets[d]
		avg := 0.0
		if b.pairs > 0 {
			avg = ratio(b.latency, b.total)
		}
		chart = append(chart, DailyPerformance{
			Date:                d,
			SatisfactionRate:    Percent(b.satisfied, b.total),
			ResolutionRate:      Percent(b.resolved, b.total),
			AverageResponseTime: avg,
		})
	}

	return PerformanceReport{
		ChartData: chart,
		Summary: PerformanceSummary{
			TotalQueries:        sum.total,
			SatisfactionRate:    Percent(sum.satisfied, sum.total),
			ResolutionRate:      Percent(sum.resolved, sum.total),
			AverageResponseTime: ratio(sum.latency, sum.pairs),
		},
	}
}

package metrics

import (
	"sort"

	"hranalytics/internal/core/records"
)

// TopN is the length of the top categories list
const TopN = 5

// counter keeps category counts in first-seen order
type counter struct {
	order  []string
	counts map[string]int
}

func countCategories(recs []records.QueryRecord) counter {
	c := counter{counts: make(map[string]int)}
	for _, r := range recs {
		if _, ok := c.counts[r.Category]; !ok {
			c.order = append(c.order, r.Category)
		}
		c.counts[r.Category]++
	}
	return c
}

// Categories compares the recent record set against the previous one
func Categories(recent, previous []records.QueryRecord) CategoryReport {
	rc := countCategories(recent)
	pc := countCategories(previous)
	total := len(recent)

	dist := make([]CategoryShare, 0, len(rc.order))
	if total > 0 {
		for _, cat := range rc.order {
			n := rc.counts[cat]
			dist = append(dist, CategoryShare{Category: cat, Count: n, Percentage: Percent(n, total)})
		}
	}

	top := make([]CategoryShare, len(dist))
	copy(top, dist)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > TopN {
		top = top[:TopN]
	}

	trends := make([]Trend, 0, len(rc.order))
	for _, cat := range rc.order {
		trends = append(trends, trend(cat, rc.counts[cat], pc.counts[cat]))
	}
	sort.SliceStable(trends, func(i, j int) bool { return trends[i].Growth > trends[j].Growth })

	return CategoryReport{
		RecentCounts:         rc.counts,
		PreviousCounts:       pc.counts,
		CategoryDistribution: dist,
		Top5Categories:       top,
		TrendingTopics:       trends,
	}
}

func trend(cat string, recent, previous int) Trend {
	if previous <= 0 {
		return Trend{Category: cat, Growth: Inf, New: true}
	}
	g := float64(recent-previous) / float64(previous) * 100
	return Trend{Category: cat, Growth: Growth(Round2(g))}
}

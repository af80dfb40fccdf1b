package metrics

import "hranalytics/internal/core/records"

// Usage counts queries and distinct users per day
// records without a usable date still count toward total_queries
// query_volume counts every dated record, a missing user only keeps it out of the user counts
func Usage(recs []records.QueryRecord) UsageReport {
	users := make(map[string]struct{})
	daily := make(map[string]map[string]struct{})
	volume := make(map[string]int)

	for _, r := range recs {
		day, dated := r.DayKey()
		if dated {
			volume[day]++
		}
		if !r.HasUser() {
			continue
		}
		users[r.UserID] = struct{}{}
		if !dated {
			continue
		}
		set, ok := daily[day]
		if !ok {
			set = make(map[string]struct{})
			daily[day] = set
		}
		set[r.UserID] = struct{}{}
	}

	dau := make(map[string]int, len(daily))
	for day, set := range daily {
		dau[day] = len(set)
	}

	return UsageReport{
		TotalQueries:      len(recs),
		UniqueUsers:       len(users),
		DailyActiveUsers:  dau,
		QueryVolume:       volume,
		AvgQueriesPerUser: ratio(float64(len(recs)), len(users)),
	}
}

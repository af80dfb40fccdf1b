package metrics

import "hranalytics/internal/core/records"

// maxRating scales average satisfaction to a percentage of the best score
const maxRating = 5

// Dashboard computes the headline tiles
func Dashboard(recs []records.QueryRecord) DashboardReport {
	users := make(map[string]struct{})
	var ratingSum, rated int
	var latSum float64
	var pairs int

	for _, r := range recs {
		if r.HasUser() {
			users[r.UserID] = struct{}{}
		}
		if r.ValidSatisfaction() {
			ratingSum += r.Satisfaction
			rated++
		}
		if lat, ok := r.Latency(); ok {
			latSum += lat
			pairs++
		}
	}

	sat := 0.0
	if rated > 0 {
		sat = Round2(float64(ratingSum) / float64(rated*maxRating) * 100)
	}

	return DashboardReport{
		ActiveUsers:         len(users),
		TotalQueries:        len(recs),
		AverageSatisfaction: sat,
		AverageResponseTime: ratio(latSum, pairs),
	}
}

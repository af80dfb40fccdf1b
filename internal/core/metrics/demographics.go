package metrics

import "hranalytics/internal/core/records"

// Bucket keys for new_vs_returning
const (
	KeyNew       = "new"
	KeyReturning = "returning"
)

var seniorityKeys = []records.Seniority{
	records.SeniorityJunior,
	records.SeniorityMid,
	records.SenioritySenior,
	records.SeniorityUnknown,
}

// Demographics converts department, seniority, and new user counts into percentages
// an empty record set yields three empty maps
func Demographics(recs []records.QueryRecord) DemographicsReport {
	out := DemographicsReport{
		DepartmentUsage: map[string]float64{},
		SeniorityUsage:  map[string]float64{},
		NewVsReturning:  map[string]float64{},
	}
	total := len(recs)
	if total == 0 {
		return out
	}

	dept := make(map[string]int)
	sen := make(map[records.Seniority]int, len(seniorityKeys))
	var fresh int
	for _, r := range recs {
		dept[r.Department]++
		sen[r.Seniority]++
		if r.NewUser {
			fresh++
		}
	}

	for d, n := range dept {
		out.DepartmentUsage[d] = Percent(n, total)
	}
	for _, k := range seniorityKeys {
		out.SeniorityUsage[string(k)] = Percent(sen[k], total)
	}
	out.NewVsReturning[KeyNew] = Percent(fresh, total)
	out.NewVsReturning[KeyReturning] = Percent(total-fresh, total)
	return out
}

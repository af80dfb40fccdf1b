package metrics

import (
	"encoding/json"
	"math"
)

// UsageReport summarizes query volume and active users
type UsageReport struct {
	TotalQueries      int            `json:"total_queries"`
	UniqueUsers       int            `json:"unique_users"`
	DailyActiveUsers  map[string]int `json:"daily_active_users"`
	QueryVolume       map[string]int `json:"query_volume"`
	AvgQueriesPerUser float64        `json:"avg_queries_per_user"`
}

// CategoryShare is one category's slice of the recent window
type CategoryShare struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Growth is a percentage change, +Inf marks a category with no previous activity
// JSON has no infinity so +Inf is written as null
type Growth float64

// Inf is the growth of a category absent from the previous window
var Inf = Growth(math.Inf(1))

// IsInf reports whether g is unbounded
func (g Growth) IsInf() bool { return math.IsInf(float64(g), 0) }

// MarshalJSON writes non-finite growth as null
func (g Growth) MarshalJSON() ([]byte, error) {
	f := float64(g)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON reads null back as +Inf
func (g *Growth) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*g = Inf
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*g = Growth(f)
	return nil
}

// Trend is one category's growth against the previous window
type Trend struct {
	Category string `json:"category"`
	Growth   Growth `json:"growth"`
	New      bool   `json:"new"`
}

// CategoryReport compares category counts between two windows
type CategoryReport struct {
	RecentCounts         map[string]int  `json:"recent_counts"`
	PreviousCounts       map[string]int  `json:"previous_counts"`
	CategoryDistribution []CategoryShare `json:"category_distribution"`
	Top5Categories       []CategoryShare `json:"top_5_categories"`
	TrendingTopics       []Trend         `json:"trending_topics"`
}

// DailyPerformance is one day of the performance chart
type DailyPerformance struct {
	Date                string  `json:"date"`
	SatisfactionRate    float64 `json:"satisfaction_rate"`
	ResolutionRate      float64 `json:"resolution_rate"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// PerformanceSummary covers the whole window
// its response time average is over valid latency pairs only
type PerformanceSummary struct {
	TotalQueries        int     `json:"total_queries"`
	SatisfactionRate    float64 `json:"satisfaction_rate"`
	ResolutionRate      float64 `json:"resolution_rate"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// PerformanceReport is the per-day chart plus a window summary
type PerformanceReport struct {
	ChartData []DailyPerformance `json:"chart_data"`
	Summary   PerformanceSummary `json:"summary"`
}

// DemographicsReport breaks usage down by who asked
type DemographicsReport struct {
	DepartmentUsage map[string]float64 `json:"department_usage"`
	SeniorityUsage  map[string]float64 `json:"seniority_usage"`
	NewVsReturning  map[string]float64 `json:"new_vs_returning"`
}

// DashboardReport is the headline tile set
type DashboardReport struct {
	ActiveUsers         int     `json:"active_users"`
	TotalQueries        int     `json:"total_queries"`
	AverageSatisfaction float64 `json:"average_satisfaction"`
	AverageResponseTime float64 `json:"average_response_time"`
}

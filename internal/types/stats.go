package types

// StatusCount pairs an application status with its occurrence count.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// Stats holds the aggregate counters behind the admin dashboard.
type Stats struct {
	TotalJobs            int             `json:"totalJobs"`
	TotalApplications    int             `json:"totalApplications"`
	TotalCompanies       int             `json:"totalCompanies"`
	NewJobsToday         int             `json:"newJobsToday"`
	NewApplicationsToday int             `json:"newApplicationsToday"`
	ApplicationsByStatus []StatusCount   `json:"applicationsByStatus"`
	TopCategories        []CategoryCount `json:"topCategories"`
}

// GrowthPoint is one daily bucket of a growth time series.
type GrowthPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Growth holds the jobs-posted and applications-received series for the
// trailing window shown on the analytics chart.
type Growth struct {
	JobGrowth         []GrowthPoint `json:"jobGrowth"`
	ApplicationGrowth []GrowthPoint `json:"applicationGrowth"`
}

package domain

// LotSummary is one summary card on the dashboard: area counts for a lot
// broken down by status.
type LotSummary struct {
	Lot       int     `json:"lote" db:"lote"`
	Total     int     `json:"total" db:"total"`
	Scheduled int     `json:"scheduled" db:"scheduled"`
	Overdue   int     `json:"overdue" db:"overdue"`
	Manual    int     `json:"manual" db:"manual"`
	TotalM2   float64 `json:"total_m2" db:"total_m2"`
}

// ProductionPoint is one point in the monthly production chart: m² mowed
// by a lot in a given month.
type ProductionPoint struct {
	Month   string  `json:"month" db:"month"`
	Lot     int     `json:"lote" db:"lote"`
	AreaM2  float64 `json:"area_m2" db:"area_m2"`
	Mowings int     `json:"mowings" db:"mowings"`
}

// DashboardFilter narrows dashboard queries. Empty fields mean no filter.
type DashboardFilter struct {
	Lots    []int  `json:"lots"`
	Service string `json:"service"`
	Months  int    `json:"months"`
}

// Dashboard bundles everything the landing page needs in one response.
type Dashboard struct {
	Summary    []LotSummary      `json:"summary"`
	Production []ProductionPoint `json:"production"`
}

package domain

// MonthlyRow is one month of aggregated output: the month's value in the
// selected mode plus its growth against the prior year and prior month.
// Growth pointers are nil when the comparison period has no data.
type MonthlyRow struct {
	MonthKey MonthKey `json:"month_key"`
	Label    string   `json:"label"`
	Value    float64  `json:"value"`
	YoYPct   *float64 `json:"yoy_pct,omitempty"`
	MoMPct   *float64 `json:"mom_pct,omitempty"`
}

// KPISnapshot bundles the single-number rollups derived from the daily
// series. Every field is independently optional; a nil field means the
// underlying window had no populated days.
type KPISnapshot struct {
	Latest          *float64 `json:"latest,omitempty"`
	LatestDate      *Date    `json:"latest_date,omitempty"`
	LatestYoYPct    *float64 `json:"latest_yoy_pct,omitempty"`
	Avg7            *float64 `json:"avg_7d,omitempty"`
	Avg7YoYPct      *float64 `json:"avg_7d_yoy_pct,omitempty"`
	Avg30           *float64 `json:"avg_30d,omitempty"`
	Avg30YoYPct     *float64 `json:"avg_30d_yoy_pct,omitempty"`
	FiscalYTD       *float64 `json:"fiscal_ytd,omitempty"`
	FiscalYTDYoYPct *float64 `json:"fiscal_ytd_yoy_pct,omitempty"`
	MTDAvg          *float64 `json:"mtd_avg,omitempty"`
	MTDAvgYoYPct    *float64 `json:"mtd_avg_yoy_pct,omitempty"`
}

// FiscalYearStart returns 1 April of the fiscal year containing d, using the
// Indian fiscal-year convention: April through March.
func FiscalYearStart(d Date) Date {
	year := d.Year
	if d.Month < 4 {
		year--
	}
	return Date{Year: year, Month: 4, Day: 1}
}

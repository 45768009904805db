package domain

// GrowthPct is the single period-over-period growth rule used everywhere in
// this repo: (current - previous) / previous * 100. The result is nil when
// previous is nil or exactly zero. Nil means "no comparable data" and must
// never be rendered as 0.00%.
func GrowthPct(current float64, previous *float64) *float64 {
	if previous == nil || *previous == 0 {
		return nil
	}
	pct := (current - *previous) / *previous * 100
	return &pct
}

// Float64Ptr is a small helper for building optional metric values.
func Float64Ptr(v float64) *float64 {
	return &v
}

package reporting

import (
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

// BuildKPISnapshot derives the headline rollups from the daily series. The
// mode only affects the fiscal year-to-date figure (summed for additive
// metrics, averaged for rates); every other field is mode-independent.
// An empty series yields the zero snapshot: every field nil.
func BuildKPISnapshot(series []domain.DailyRecord, mode string) (domain.KPISnapshot, error) {
	normalizedMode, err := domain.NormalizeAggregationMode(mode)
	if err != nil {
		return domain.KPISnapshot{}, err
	}

	if len(series) == 0 {
		return domain.KPISnapshot{}, nil
	}

	byDate := make(map[domain.Date]float64, len(series))
	for _, record := range series {
		byDate[record.Date] = record.Value
	}

	latest := series[len(series)-1]
	latestDate := latest.Date

	snapshot := domain.KPISnapshot{
		Latest:     domain.Float64Ptr(latest.Value),
		LatestDate: &latestDate,
	}

	// Exact same calendar date one year earlier, leap days clamped.
	if previous, ok := byDate[latestDate.AddYears(-1)]; ok {
		snapshot.LatestYoYPct = domain.GrowthPct(latest.Value, &previous)
	}

	snapshot.Avg7, snapshot.Avg7YoYPct = trailingAverage(byDate, latestDate, 7)
	snapshot.Avg30, snapshot.Avg30YoYPct = trailingAverage(byDate, latestDate, 30)

	// Fiscal YTD windows align by calendar-year offset, not by day count:
	// both endpoints shift back one year, so the comparison window can span
	// a different number of days than the current one.
	fiscalStart := domain.FiscalYearStart(latestDate)
	snapshot.FiscalYTD = windowAggregate(byDate, fiscalStart, latestDate, normalizedMode)
	if snapshot.FiscalYTD != nil {
		previous := windowAggregate(byDate, fiscalStart.AddYears(-1), latestDate.AddYears(-1), normalizedMode)
		snapshot.FiscalYTDYoYPct = domain.GrowthPct(*snapshot.FiscalYTD, previous)
	}

	monthStart := latestDate.MonthKey().FirstDay()
	snapshot.MTDAvg = windowAverage(byDate, monthStart, latestDate)
	if snapshot.MTDAvg != nil {
		previous := windowAverage(byDate, monthStart.AddYears(-1), latestDate.AddYears(-1))
		snapshot.MTDAvgYoYPct = domain.GrowthPct(*snapshot.MTDAvg, previous)
	}

	return snapshot, nil
}

// trailingAverage computes the mean over the n calendar days ending at end
// inclusive, divided by the count of populated days in the window, and its
// year-over-year counterpart over the same fixed-length window shifted back
// exactly one year.
func trailingAverage(byDate map[domain.Date]float64, end domain.Date, n int) (*float64, *float64) {
	start := end.SubDays(n - 1)
	current := windowAverage(byDate, start, end)
	if current == nil {
		return nil, nil
	}
	previous := windowAverage(byDate, start.AddYears(-1), end.AddYears(-1))
	return current, domain.GrowthPct(*current, previous)
}

// windowAverage is the mean over populated days in [start, end]; nil when
// the window has none.
func windowAverage(byDate map[domain.Date]float64, start, end domain.Date) *float64 {
	sum, count := windowSumCount(byDate, start, end)
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}

// windowAggregate sums or averages [start, end] depending on mode.
func windowAggregate(byDate map[domain.Date]float64, start, end domain.Date, mode string) *float64 {
	if mode == domain.AggregationModeAverage {
		return windowAverage(byDate, start, end)
	}
	sum, count := windowSumCount(byDate, start, end)
	if count == 0 {
		return nil
	}
	return &sum
}

func windowSumCount(byDate map[domain.Date]float64, start, end domain.Date) (float64, int) {
	sum := 0.0
	count := 0
	for day := start; !day.After(end); day = day.AddDays(1) {
		if value, ok := byDate[day]; ok {
			sum += value
			count++
		}
	}
	return sum, count
}

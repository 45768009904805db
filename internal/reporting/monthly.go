package reporting

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

// monthAggregate is the derived per-month view rebuilt from the daily series
// on every query. byDay keeps the value per day-of-month so a comparison
// month can be re-summed only through the current month's max populated day.
type monthAggregate struct {
	total  float64
	count  int
	maxDay int
	byDay  map[int]float64
}

func buildMonthAggregates(series []domain.DailyRecord) map[domain.MonthKey]*monthAggregate {
	aggregates := map[domain.MonthKey]*monthAggregate{}
	for _, record := range series {
		key := record.Date.MonthKey()
		agg, ok := aggregates[key]
		if !ok {
			agg = &monthAggregate{byDay: map[int]float64{}}
			aggregates[key] = agg
		}
		agg.total += record.Value
		agg.count++
		agg.byDay[record.Date.Day] = record.Value
		if record.Date.Day > agg.maxDay {
			agg.maxDay = record.Date.Day
		}
	}
	return aggregates
}

// sumThroughDay sums the month's values through day-of-month limit inclusive.
// Returns nil when no populated day falls inside the truncated window.
func (a *monthAggregate) sumThroughDay(limit int) *float64 {
	if a == nil {
		return nil
	}
	sum := 0.0
	populated := 0
	for day, value := range a.byDay {
		if day <= limit {
			sum += value
			populated++
		}
	}
	if populated == 0 {
		return nil
	}
	return &sum
}

// average is the full-month mean over populated days, nil for an empty month.
func (a *monthAggregate) average() *float64 {
	if a == nil || a.count == 0 {
		return nil
	}
	mean := a.total / float64(a.count)
	return &mean
}

// AggregateMonthly groups the daily series by month and derives one output
// row per populated month, ascending by month key.
//
// In sum mode the row value is the month's full sum, and growth is computed
// against the comparison month summed only through this month's max populated
// day. An in-progress month with data through the 12th is compared to the
// first 12 days of the prior month and of the same month last year, never to
// their full totals. In average mode the row value is the full-month mean and
// growth compares full means directly; means are not biased by partial-month
// length, so no truncation applies.
func AggregateMonthly(series []domain.DailyRecord, mode string) ([]domain.MonthlyRow, error) {
	normalizedMode, err := domain.NormalizeAggregationMode(mode)
	if err != nil {
		return nil, err
	}

	aggregates := buildMonthAggregates(series)

	keys := lo.Keys(aggregates)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})

	rows := make([]domain.MonthlyRow, 0, len(keys))
	for _, key := range keys {
		agg := aggregates[key]
		priorMonth := aggregates[key.AddMonths(-1)]
		priorYear := aggregates[domain.MonthKey{Year: key.Year - 1, Month: key.Month}]

		row := domain.MonthlyRow{MonthKey: key, Label: monthLabel(key)}
		switch normalizedMode {
		case domain.AggregationModeSum:
			row.Value = agg.total
			row.YoYPct = domain.GrowthPct(agg.total, priorYear.sumThroughDay(agg.maxDay))
			row.MoMPct = domain.GrowthPct(agg.total, priorMonth.sumThroughDay(agg.maxDay))
		case domain.AggregationModeAverage:
			row.Value = *agg.average()
			row.YoYPct = domain.GrowthPct(row.Value, priorYear.average())
			row.MoMPct = domain.GrowthPct(row.Value, priorMonth.average())
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LastMonths keeps the most recent n rows of an ascending row set. Windowing
// is presentation trimming only; growth figures are already final.
func LastMonths(rows []domain.MonthlyRow, n int) []domain.MonthlyRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[len(rows)-n:]
}

func monthLabel(key domain.MonthKey) string {
	return time.Date(key.Year, time.Month(key.Month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

package reporting

import (
	"errors"
	"math"
	"testing"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

func record(year, month, day int, value float64) domain.DailyRecord {
	return domain.DailyRecord{Date: domain.NewDate(year, month, day), Value: value}
}

func assertPctEquals(t *testing.T, got *float64, expected float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %v, got absent", expected)
	}
	if math.Abs(*got-expected) > 1e-6 {
		t.Fatalf("expected %v, got %v", expected, *got)
	}
}

func TestSumModeTruncatesComparisonToMaxDay(t *testing.T) {
	t.Parallel()

	// Dec 2024 has data through the 25th, Dec 2025 only through the 20th.
	// The YoY comparison must sum Dec 2024 only through day 20.
	series := []domain.DailyRecord{
		record(2024, 12, 18, 11),
		record(2024, 12, 19, 11),
		record(2024, 12, 20, 11),
		record(2024, 12, 25, 100),
		record(2025, 12, 18, 10),
		record(2025, 12, 19, 10),
		record(2025, 12, 20, 10),
	}

	rows, err := AggregateMonthly(series, domain.AggregationModeSum)
	if err != nil {
		t.Fatalf("aggregate monthly: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	current := rows[1]
	if current.MonthKey != (domain.MonthKey{Year: 2025, Month: 12}) {
		t.Fatalf("unexpected month order: %+v", rows)
	}
	if current.Value != 30 {
		t.Fatalf("expected full sum 30, got %v", current.Value)
	}
	// growthPct(30, 33): the 100 recorded on the 25th is outside the
	// truncated window.
	assertPctEquals(t, current.YoYPct, (30.0-33.0)/33.0*100)

	// No Nov 2025 data, so month-over-month growth is absent.
	if current.MoMPct != nil {
		t.Fatalf("expected absent MoM growth, got %v", *current.MoMPct)
	}
}

func TestSumModeMonthOverMonthTruncation(t *testing.T) {
	t.Parallel()

	series := []domain.DailyRecord{}
	// November fully populated with 5 per day.
	for day := 1; day <= 30; day++ {
		series = append(series, record(2025, 11, day, 5))
	}
	// December in progress: 8 per day through the 10th.
	for day := 1; day <= 10; day++ {
		series = append(series, record(2025, 12, day, 8))
	}

	rows, err := AggregateMonthly(series, domain.AggregationModeSum)
	if err != nil {
		t.Fatalf("aggregate monthly: %v", err)
	}

	december := rows[len(rows)-1]
	if december.Value != 80 {
		t.Fatalf("expected December sum 80, got %v", december.Value)
	}
	// Compared to November through day 10 (50), not the full 150.
	assertPctEquals(t, december.MoMPct, (80.0-50.0)/50.0*100)
}

func TestSumModeAbsentWhenTruncatedWindowEmpty(t *testing.T) {
	t.Parallel()

	series := []domain.DailyRecord{
		// Prior month populated only after the current month's max day.
		record(2025, 11, 25, 100),
		record(2025, 12, 10, 8),
	}

	rows, err := AggregateMonthly(series, domain.AggregationModeSum)
	if err != nil {
		t.Fatalf("aggregate monthly: %v", err)
	}

	december := rows[len(rows)-1]
	if december.MoMPct != nil {
		t.Fatalf("expected absent MoM growth for empty truncated window, got %v", *december.MoMPct)
	}
}

func TestAverageModeComparesFullMonthsWithoutTruncation(t *testing.T) {
	t.Parallel()

	series := []domain.DailyRecord{
		// November: populated on 20 days at rate 4.
		record(2025, 12, 2, 6),
		record(2025, 12, 9, 6),
		record(2025, 12, 30, 6),
	}
	for day := 1; day <= 20; day++ {
		series = append(series, record(2025, 11, day, 4))
	}

	rows, err := AggregateMonthly(series, domain.AggregationModeAverage)
	if err != nil {
		t.Fatalf("aggregate monthly: %v", err)
	}

	december := rows[len(rows)-1]
	if december.Value != 6 {
		t.Fatalf("expected December mean 6, got %v", december.Value)
	}
	// Full 3-day mean against full 20-day mean; day 30 in December does not
	// widen or narrow the comparison.
	assertPctEquals(t, december.MoMPct, (6.0-4.0)/4.0*100)
}

func TestAverageModeAbsentWhenComparisonMonthEmpty(t *testing.T) {
	t.Parallel()

	rows, err := AggregateMonthly([]domain.DailyRecord{record(2025, 12, 5, 6)}, domain.AggregationModeAverage)
	if err != nil {
		t.Fatalf("aggregate monthly: %v", err)
	}
	if rows[0].YoYPct != nil || rows[0].MoMPct != nil {
		t.Fatalf("expected absent growth with no comparison data: %+v", rows[0])
	}
}

func TestAggregateMonthlyRowsAscendingByMonth(t *testing.T) {
	t.Parallel()

	series := []domain.DailyRecord{
		record(2026, 1, 5, 1),
		record(2024, 12, 5, 1),
		record(2025, 6, 5, 1),
	}

	rows, err := AggregateMonthly(series, domain.AggregationModeSum)
	if err != nil {
		t.Fatalf("aggregate monthly: %v", err)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i-1].MonthKey.Compare(rows[i].MonthKey) >= 0 {
			t.Fatalf("rows not ascending: %+v", rows)
		}
	}
	if rows[0].Label != "Dec 2024" {
		t.Fatalf("unexpected label: %q", rows[0].Label)
	}
}

func TestAggregateMonthlyEmptySeries(t *testing.T) {
	t.Parallel()

	rows, err := AggregateMonthly(nil, domain.AggregationModeSum)
	if err != nil {
		t.Fatalf("aggregate monthly: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows for empty series, got %d", len(rows))
	}
}

func TestAggregateMonthlyRejectsUnknownMode(t *testing.T) {
	t.Parallel()

	_, err := AggregateMonthly(nil, "median")
	if !errors.Is(err, domain.ErrInvalidAggregationMode) {
		t.Fatalf("expected ErrInvalidAggregationMode, got %v", err)
	}
}

func TestLastMonthsWindowing(t *testing.T) {
	t.Parallel()

	rows := []domain.MonthlyRow{
		{MonthKey: domain.MonthKey{Year: 2025, Month: 10}},
		{MonthKey: domain.MonthKey{Year: 2025, Month: 11}},
		{MonthKey: domain.MonthKey{Year: 2025, Month: 12}},
	}

	trimmed := LastMonths(rows, 2)
	if len(trimmed) != 2 || trimmed[0].MonthKey.Month != 11 {
		t.Fatalf("unexpected window: %+v", trimmed)
	}
	if got := LastMonths(rows, 0); len(got) != 3 {
		t.Fatalf("zero window should keep all rows, got %d", len(got))
	}
	if got := LastMonths(rows, 10); len(got) != 3 {
		t.Fatalf("oversized window should keep all rows, got %d", len(got))
	}
}

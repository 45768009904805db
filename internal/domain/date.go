package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonthKey = errors.New("invalid month key")
)

// Date is a timezone-free calendar day. All arithmetic in this package is
// calendar arithmetic; nothing here carries a clock or a location.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) MonthKey() MonthKey {
	return MonthKey{Year: d.Year, Month: d.Month}
}

func (d Date) asTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func fromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// AddDays walks n calendar days forward (or backward for negative n),
// rolling months, years and leap days correctly.
func (d Date) AddDays(n int) Date {
	return fromTime(d.asTime().AddDate(0, 0, n))
}

func (d Date) SubDays(n int) Date {
	return d.AddDays(-n)
}

// AddYears shifts the year component, keeping month and day. When the target
// day does not exist (29 Feb landing on a non-leap year) it clamps to the
// last day of the target month. The clamp is lossy on purpose: year-over-year
// comparisons around leap days depend on it.
func (d Date) AddYears(n int) Date {
	year := d.Year + n
	day := d.Day
	if last := DaysInMonth(year, d.Month); day > last {
		day = last
	}
	return Date{Year: year, Month: d.Month, Day: day}
}

// StartOfWeek returns the Monday of the week containing d. Sunday maps to
// the Monday six days earlier.
func (d Date) StartOfWeek() Date {
	offset := (int(d.asTime().Weekday()) + 6) % 7
	return d.SubDays(offset)
}

// Compare orders dates chronologically: -1, 0, +1.
func (d Date) Compare(other Date) int {
	if d.Year != other.Year {
		return compareInt(d.Year, other.Year)
	}
	if d.Month != other.Month {
		return compareInt(d.Month, other.Month)
	}
	return compareInt(d.Day, other.Day)
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// DaysInMonth returns the number of days in the given calendar month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate accepts the canonical YYYY-MM-DD form.
func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return fromTime(parsed), nil
}

func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// FirstDay returns the first calendar day of the month.
func (m MonthKey) FirstDay() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// AddMonths shifts the month, rolling the year across December/January.
func (m MonthKey) AddMonths(n int) MonthKey {
	total := m.Year*12 + (m.Month - 1) + n
	year := total / 12
	month := total%12 + 1
	if month <= 0 {
		month += 12
		year--
	}
	return MonthKey{Year: year, Month: month}
}

func (m MonthKey) Compare(other MonthKey) int {
	if m.Year != other.Year {
		return compareInt(m.Year, other.Year)
	}
	return compareInt(m.Month, other.Month)
}

// ParseMonthKey accepts the canonical YYYY-MM form.
func ParseMonthKey(value string) (MonthKey, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := time.Parse("2006-01", trimmed)
	if err != nil {
		return MonthKey{}, ErrInvalidMonthKey
	}
	return MonthKey{Year: parsed.Year(), Month: int(parsed.Month())}, nil
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

package store

import (
	"sort"

	"github.com/samber/lo"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

// SeriesStore holds the deduplicated date-to-value series. Mutations are
// copy-on-write: every Upsert/Merge/Clear installs a fresh map, so a reader
// holding the previous snapshot never observes a partial update.
type SeriesStore struct {
	data map[domain.Date]float64
}

func NewSeriesStore() *SeriesStore {
	return &SeriesStore{data: map[domain.Date]float64{}}
}

// Upsert inserts or overwrites the value for a date. Last write wins.
func (s *SeriesStore) Upsert(date domain.Date, value float64) {
	next := make(map[domain.Date]float64, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[date] = value
	s.data = next
}

// Merge batch-upserts records. Later entries in the input override earlier
// ones with the same date, and both override any pre-existing stored value.
func (s *SeriesStore) Merge(records []domain.DailyRecord) {
	next := make(map[domain.Date]float64, len(s.data)+len(records))
	for k, v := range s.data {
		next[k] = v
	}
	for _, record := range records {
		next[record.Date] = record.Value
	}
	s.data = next
}

// Clear empties the store.
func (s *SeriesStore) Clear() {
	s.data = map[domain.Date]float64{}
}

// Len reports the number of distinct populated days.
func (s *SeriesStore) Len() int {
	return len(s.data)
}

// Lookup returns the value recorded for an exact date, if any.
func (s *SeriesStore) Lookup(date domain.Date) (float64, bool) {
	value, ok := s.data[date]
	return value, ok
}

// SortedSeries materializes the full series ascending by date. The slice is
// rebuilt on every call; callers own it and may not see later mutations.
func (s *SeriesStore) SortedSeries() []domain.DailyRecord {
	dates := lo.Keys(s.data)
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	records := make([]domain.DailyRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, domain.DailyRecord{Date: date, Value: s.data[date]})
	}
	return records
}

package service

import (
	"context"
	"fmt"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/store"
)

type ObservationRepository interface {
	Upsert(ctx context.Context, record domain.DailyRecord) error
	UpsertBatch(ctx context.Context, records []domain.DailyRecord) (int64, error)
	List(ctx context.Context) ([]domain.DailyRecord, []domain.Warning, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

// SeriesService owns the daily series: single upserts, batch merges, range
// listing and the load path the analytics commands build on.
type SeriesService struct {
	repo ObservationRepository
}

type ImportResult struct {
	Imported int64            `json:"imported"`
	Skipped  int64            `json:"skipped"`
	Warnings []domain.Warning `json:"warnings"`
}

func NewSeriesService(repo ObservationRepository) (*SeriesService, error) {
	if repo == nil {
		return nil, fmt.Errorf("series service: observation repository is required")
	}
	return &SeriesService{repo: repo}, nil
}

func (s *SeriesService) Add(ctx context.Context, date domain.Date, value float64) (domain.DailyRecord, error) {
	if err := domain.ValidateValue(value); err != nil {
		return domain.DailyRecord{}, err
	}

	record := domain.DailyRecord{Date: date, Value: value}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return domain.DailyRecord{}, err
	}
	return record, nil
}

// List returns the stored series ascending by date, optionally filtered to
// [from, to]. Zero bounds are open.
func (s *SeriesService) List(ctx context.Context, from, to domain.Date) ([]domain.DailyRecord, []domain.Warning, error) {
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, nil, err
	}

	records, warnings, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	if from.IsZero() && to.IsZero() {
		return records, warnings, nil
	}

	filtered := make([]domain.DailyRecord, 0, len(records))
	for _, record := range records {
		if !from.IsZero() && record.Date.Before(from) {
			continue
		}
		if !to.IsZero() && record.Date.After(to) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered, warnings, nil
}

// LoadStore materializes the persisted series into an in-memory SeriesStore
// snapshot for the aggregators. Malformed stored rows surface as warnings.
func (s *SeriesService) LoadStore(ctx context.Context) (*store.SeriesStore, []domain.Warning, error) {
	records, warnings, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	seriesStore := store.NewSeriesStore()
	seriesStore.Merge(records)
	return seriesStore, warnings, nil
}

// ImportRecords merges a parsed batch into the store, last write wins.
func (s *SeriesService) ImportRecords(ctx context.Context, records []domain.DailyRecord, parseWarnings []domain.Warning) (ImportResult, error) {
	imported, err := s.repo.UpsertBatch(ctx, records)
	if err != nil {
		return ImportResult{}, err
	}

	warnings := parseWarnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}

	return ImportResult{
		Imported: imported,
		Skipped:  int64(len(parseWarnings)),
		Warnings: warnings,
	}, nil
}

func (s *SeriesService) Clear(ctx context.Context) (int64, error) {
	return s.repo.Clear(ctx)
}

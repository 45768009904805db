package service

import (
	"context"
	"fmt"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/reporting"
)

// ReportService computes the monthly table and the KPI snapshot. Both are
// full recomputations over the persisted series; nothing is cached between
// invocations.
type ReportService struct {
	series *SeriesService
}

type MonthlyReportRequest struct {
	Mode   string
	Months int
}

type MonthlyReportResult struct {
	Mode     string              `json:"mode"`
	Rows     []domain.MonthlyRow `json:"rows"`
	Warnings []domain.Warning    `json:"warnings"`
}

type KPIResult struct {
	Mode     string             `json:"mode"`
	Snapshot domain.KPISnapshot `json:"snapshot"`
	Warnings []domain.Warning   `json:"warnings"`
}

func NewReportService(series *SeriesService) (*ReportService, error) {
	if series == nil {
		return nil, fmt.Errorf("report service: series service is required")
	}
	return &ReportService{series: series}, nil
}

func (s *ReportService) Monthly(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResult, error) {
	mode, err := domain.NormalizeAggregationMode(req.Mode)
	if err != nil {
		return MonthlyReportResult{}, err
	}

	seriesStore, warnings, err := s.series.LoadStore(ctx)
	if err != nil {
		return MonthlyReportResult{}, err
	}

	rows, err := reporting.AggregateMonthly(seriesStore.SortedSeries(), mode)
	if err != nil {
		return MonthlyReportResult{}, err
	}

	if warnings == nil {
		warnings = []domain.Warning{}
	}

	return MonthlyReportResult{
		Mode:     mode,
		Rows:     reporting.LastMonths(rows, req.Months),
		Warnings: warnings,
	}, nil
}

func (s *ReportService) KPI(ctx context.Context, mode string) (KPIResult, error) {
	normalizedMode, err := domain.NormalizeAggregationMode(mode)
	if err != nil {
		return KPIResult{}, err
	}

	seriesStore, warnings, err := s.series.LoadStore(ctx)
	if err != nil {
		return KPIResult{}, err
	}

	snapshot, err := reporting.BuildKPISnapshot(seriesStore.SortedSeries(), normalizedMode)
	if err != nil {
		return KPIResult{}, err
	}

	if warnings == nil {
		warnings = []domain.Warning{}
	}

	return KPIResult{
		Mode:     normalizedMode,
		Snapshot: snapshot,
		Warnings: warnings,
	}, nil
}

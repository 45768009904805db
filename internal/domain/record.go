package domain

import (
	"errors"
	"math"
	"strings"
)

const (
	AggregationModeSum     = "sum"
	AggregationModeAverage = "average"

	WarningCodeRowRejected     = "ROW_REJECTED"
	WarningCodeEntryDropped    = "STORED_ENTRY_DROPPED"
	RowRejectedWarningMessage  = "Row could not be parsed and was skipped."
	EntryDroppedWarningMessage = "Stored entry was malformed and was dropped on load."
)

var (
	ErrInvalidValue           = errors.New("invalid value")
	ErrInvalidAggregationMode = errors.New("invalid aggregation mode")
	ErrInvalidDateRange       = errors.New("invalid date range")
)

// DailyRecord is one observation: the metric's value on one calendar day.
// The series holds at most one record per date; later writes win.
type DailyRecord struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ValidateValue rejects NaN and infinities. Zero and negatives are fine;
// the metric itself decides what they mean.
func ValidateValue(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidValue
	}
	return nil
}

func NormalizeAggregationMode(mode string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		return AggregationModeSum, nil
	}
	switch normalized {
	case AggregationModeSum, AggregationModeAverage:
		return normalized, nil
	case "avg", "mean":
		return AggregationModeAverage, nil
	default:
		return "", ErrInvalidAggregationMode
	}
}

// ValidateDateRange checks an optional [from, to] filter. Zero dates mean
// the bound is open.
func ValidateDateRange(from, to Date) error {
	if from.IsZero() || to.IsZero() {
		return nil
	}
	if from.After(to) {
		return ErrInvalidDateRange
	}
	return nil
}

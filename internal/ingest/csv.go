package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

// Accepted date layouts. Year-first is tried before day-first so an
// unambiguous ISO date never gets read as day-month-year.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
}

type rowDiagnostic struct {
	Row    int    `json:"row"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// ReadCSVFile parses a two-column (date, value) CSV file. Malformed rows are
// reported one diagnostic each and skipped; valid rows are still returned.
func ReadCSVFile(path string) ([]domain.DailyRecord, []domain.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv %q: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses two-column daily observations from r. A leading header row
// is recognized by the word "date" in its first cell and skipped. Dates may
// be day-month-year or year-month-day; numeric cells may carry thousands
// separators.
func ReadCSV(r io.Reader) ([]domain.DailyRecord, []domain.Warning, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records := []domain.DailyRecord{}
	warnings := []domain.Warning{}
	rowNum := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		rowNum++

		if rowNum == 1 && isHeaderRow(row) {
			continue
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) < 2 {
			warnings = append(warnings, rejectRow(rowNum, row, "expected two columns"))
			continue
		}

		date, err := ParseFlexibleDate(row[0])
		if err != nil {
			warnings = append(warnings, rejectRow(rowNum, row, "unparseable date"))
			continue
		}

		value, err := ParseNumericCell(row[1])
		if err != nil {
			warnings = append(warnings, rejectRow(rowNum, row, "unparseable value"))
			continue
		}

		records = append(records, domain.DailyRecord{Date: date, Value: value})
	}

	return records, warnings, nil
}

// ParseFlexibleDate accepts day-month-year and year-month-day forms with
// "-", "/" or "." separators.
func ParseFlexibleDate(cell string) (domain.Date, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return domain.Date{}, domain.ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return domain.NewDate(parsed.Year(), int(parsed.Month()), parsed.Day()), nil
		}
	}
	return domain.Date{}, domain.ErrInvalidDate
}

// ParseNumericCell strips thousands separators before parsing, so "1,234.5"
// and "1234.5" read the same.
func ParseNumericCell(cell string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cleaned == "" {
		return 0, domain.ErrInvalidValue
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, domain.ErrInvalidValue
	}
	if err := domain.ValidateValue(value); err != nil {
		return 0, err
	}
	return value, nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(row[0]), "date")
}

func rejectRow(rowNum int, row []string, reason string) domain.Warning {
	return domain.Warning{
		Code:    domain.WarningCodeRowRejected,
		Message: domain.RowRejectedWarningMessage,
		Details: rowDiagnostic{
			Row:    rowNum,
			Raw:    strings.Join(row, ","),
			Reason: reason,
		},
	}
}

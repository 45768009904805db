package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/ingest"
)

const (
	PortabilityFormatJSON = "json"
	PortabilityFormatCSV  = "csv"
)

// PortabilityService moves the series in and out of the database: CSV/JSON
// export and import, plus whole-file backup and restore.
type PortabilityService struct {
	series *SeriesService
	db     *sql.DB
	dbPath string
}

type portabilityRecord struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type portabilityJSONEnvelope struct {
	Records []portabilityRecord `json:"records"`
}

func NewPortabilityService(series *SeriesService, db *sql.DB, dbPath string) (*PortabilityService, error) {
	if series == nil {
		return nil, fmt.Errorf("portability service: series service is required")
	}
	if db == nil {
		return nil, fmt.Errorf("portability service: db is required")
	}
	return &PortabilityService{series: series, db: db, dbPath: dbPath}, nil
}

// Export writes the full series to filePath. Dates are always exported in
// the canonical YYYY-MM-DD form regardless of how they were ingested.
func (s *PortabilityService) Export(ctx context.Context, format, filePath string) (int64, error) {
	normalizedFormat := normalizePortabilityFormat(format)
	if normalizedFormat == "" {
		return 0, fmt.Errorf("unsupported export format: %s", format)
	}

	records, _, err := s.series.List(ctx, domain.Date{}, domain.Date{})
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return 0, err
	}

	switch normalizedFormat {
	case PortabilityFormatJSON:
		if err := writeSeriesJSON(filePath, records); err != nil {
			return 0, err
		}
	case PortabilityFormatCSV:
		if err := writeSeriesCSV(filePath, records); err != nil {
			return 0, err
		}
	}

	return int64(len(records)), nil
}

// Import parses filePath and merges the parsed rows into the store,
// last write wins. Malformed rows become warnings, not errors.
func (s *PortabilityService) Import(ctx context.Context, format, filePath string) (ImportResult, error) {
	normalizedFormat := normalizePortabilityFormat(format)
	if normalizedFormat == "" {
		return ImportResult{}, fmt.Errorf("unsupported import format: %s", format)
	}

	var records []domain.DailyRecord
	var warnings []domain.Warning
	var err error

	switch normalizedFormat {
	case PortabilityFormatCSV:
		records, warnings, err = ingest.ReadCSVFile(filePath)
	case PortabilityFormatJSON:
		records, warnings, err = readSeriesJSON(filePath)
	}
	if err != nil {
		return ImportResult{}, err
	}

	return s.series.ImportRecords(ctx, records, warnings)
}

// Backup snapshots the live database into outputPath via VACUUM INTO.
func (s *PortabilityService) Backup(ctx context.Context, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	escapedPath := strings.ReplaceAll(outputPath, "'", "''")
	query := fmt.Sprintf("VACUUM INTO '%s';", escapedPath)
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// Restore replaces the database file with backupPath. The caller's open
// connection keeps serving the pre-restore snapshot; the restored data is
// visible from the next invocation.
func (s *PortabilityService) Restore(backupPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("restore: %q is a directory", backupPath)
	}

	if err := copyFile(backupPath, s.dbPath); err != nil {
		return fmt.Errorf("restore copy: %w", err)
	}

	// Drop stale WAL/SHM sidecars so the restored file is authoritative.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(s.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("restore remove sidecar: %w", err)
		}
	}
	return nil
}

func normalizePortabilityFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case PortabilityFormatJSON:
		return PortabilityFormatJSON
	case PortabilityFormatCSV, "":
		return PortabilityFormatCSV
	default:
		return ""
	}
}

func writeSeriesCSV(filePath string, records []domain.DailyRecord) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "value"}); err != nil {
		return err
	}

	for _, record := range records {
		row := []string{
			record.Date.String(),
			strconv.FormatFloat(record.Value, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeSeriesJSON(filePath string, records []domain.DailyRecord) error {
	envelope := portabilityJSONEnvelope{Records: make([]portabilityRecord, 0, len(records))}
	for _, record := range records {
		envelope.Records = append(envelope.Records, portabilityRecord{
			Date:  record.Date.String(),
			Value: record.Value,
		})
	}

	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, append(payload, '\n'), 0o644)
}

func readSeriesJSON(filePath string) ([]domain.DailyRecord, []domain.Warning, error) {
	payload, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read json %q: %w", filePath, err)
	}

	var envelope portabilityJSONEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, nil, fmt.Errorf("parse json %q: %w", filePath, err)
	}

	records := make([]domain.DailyRecord, 0, len(envelope.Records))
	warnings := []domain.Warning{}
	for i, raw := range envelope.Records {
		date, err := domain.ParseDate(raw.Date)
		if err != nil {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarningCodeRowRejected,
				Message: domain.RowRejectedWarningMessage,
				Details: map[string]any{"index": i, "date": raw.Date, "reason": "unparseable date"},
			})
			continue
		}
		if err := domain.ValidateValue(raw.Value); err != nil {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarningCodeRowRejected,
				Message: domain.RowRejectedWarningMessage,
				Details: map[string]any{"index": i, "date": raw.Date, "reason": "non-finite value"},
			})
			continue
		}
		records = append(records, domain.DailyRecord{Date: date, Value: raw.Value})
	}

	return records, warnings, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

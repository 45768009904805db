package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

// ObservationRepo persists the date-to-value series. One row per calendar
// day; upserting an existing date overwrites its value.
type ObservationRepo struct {
	db *sql.DB
}

func NewObservationRepo(db *sql.DB) *ObservationRepo {
	return &ObservationRepo{db: db}
}

func (r *ObservationRepo) Upsert(ctx context.Context, record domain.DailyRecord) error {
	if r.db == nil {
		return fmt.Errorf("upsert observation: db is nil")
	}
	if err := domain.ValidateValue(record.Value); err != nil {
		return err
	}

	nowUTC := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO observations (obs_date, value, created_at_utc, updated_at_utc)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (obs_date) DO UPDATE SET
			value = excluded.value,
			updated_at_utc = excluded.updated_at_utc
	`, record.Date.String(), record.Value, nowUTC, nowUTC)
	if err != nil {
		return fmt.Errorf("upsert observation %s: %w", record.Date, err)
	}
	return nil
}

// UpsertBatch writes a batch of records in one transaction. Later records
// with the same date override earlier ones, matching the merge policy of the
// in-memory store.
func (r *ObservationRepo) UpsertBatch(ctx context.Context, records []domain.DailyRecord) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("upsert observations: db is nil")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("upsert observations begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (obs_date, value, created_at_utc, updated_at_utc)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (obs_date) DO UPDATE SET
			value = excluded.value,
			updated_at_utc = excluded.updated_at_utc
	`)
	if err != nil {
		return 0, fmt.Errorf("upsert observations prepare: %w", err)
	}
	defer stmt.Close()

	nowUTC := time.Now().UTC().Format(time.RFC3339Nano)
	written := int64(0)
	for _, record := range records {
		if err := domain.ValidateValue(record.Value); err != nil {
			return 0, fmt.Errorf("upsert observation %s: %w", record.Date, err)
		}
		if _, err := stmt.ExecContext(ctx, record.Date.String(), record.Value, nowUTC, nowUTC); err != nil {
			return 0, fmt.Errorf("upsert observation %s: %w", record.Date, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("upsert observations commit: %w", err)
	}
	return written, nil
}

// List loads the full series ascending by date. Rows whose stored date or
// value no longer parses are dropped with a warning rather than failing the
// load; round-tripping well-formed rows is lossless.
func (r *ObservationRepo) List(ctx context.Context) ([]domain.DailyRecord, []domain.Warning, error) {
	if r.db == nil {
		return nil, nil, fmt.Errorf("list observations: db is nil")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT obs_date, value
		FROM observations
		ORDER BY obs_date ASC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	records := []domain.DailyRecord{}
	warnings := []domain.Warning{}
	for rows.Next() {
		var rawDate string
		var value float64
		if err := rows.Scan(&rawDate, &value); err != nil {
			return nil, nil, fmt.Errorf("scan observation: %w", err)
		}

		date, err := domain.ParseDate(rawDate)
		if err != nil {
			warnings = append(warnings, droppedEntryWarning(rawDate, "unparseable date"))
			continue
		}
		if err := domain.ValidateValue(value); err != nil {
			warnings = append(warnings, droppedEntryWarning(rawDate, "non-finite value"))
			continue
		}

		records = append(records, domain.DailyRecord{Date: date, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate observations: %w", err)
	}

	return records, warnings, nil
}

func (r *ObservationRepo) Count(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("count observations: db is nil")
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM observations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count observations: %w", err)
	}
	return count, nil
}

// Clear removes every stored observation and reports how many were deleted.
func (r *ObservationRepo) Clear(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("clear observations: db is nil")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM observations`)
	if err != nil {
		return 0, fmt.Errorf("clear observations: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear observations rows affected: %w", err)
	}
	return deleted, nil
}

func droppedEntryWarning(rawDate, reason string) domain.Warning {
	return domain.Warning{
		Code:    domain.WarningCodeEntryDropped,
		Message: domain.EntryDroppedWarningMessage,
		Details: map[string]string{"obs_date": rawDate, "reason": reason},
	}
}

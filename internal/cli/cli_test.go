package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeJSON runs the root command against dbPath with json output and
// decodes the printed envelope. Each call builds a fresh command tree so
// flag state never leaks between executions.
func executeJSON(t *testing.T, dbPath, configPath string, args ...string) map[string]any {
	t.Helper()

	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "config.yml")
	}

	fullArgs := append([]string{
		"--output", "json",
		"--db-path", dbPath,
		"--config", configPath,
	}, args...)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(fullArgs)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}

	var envelope map[string]any
	if err := json.Unmarshal(out.Bytes(), &envelope); err != nil {
		t.Fatalf("parse envelope for %v: %v\noutput: %s", args, err, out.String())
	}
	return envelope
}

func envelopeData(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	return data
}

func assertOk(t *testing.T, envelope map[string]any) {
	t.Helper()

	if ok, _ := envelope["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, got %v", envelope)
	}
}

func assertErrorCode(t *testing.T, envelope map[string]any, code string) {
	t.Helper()

	if ok, _ := envelope["ok"].(bool); ok {
		t.Fatalf("expected ok=false, got %v", envelope)
	}
	errObj, _ := envelope["error"].(map[string]any)
	if errObj == nil || errObj["code"] != code {
		t.Fatalf("expected error code %s, got %v", code, envelope["error"])
	}
}

func TestRecordAddAndList(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")

	assertOk(t, executeJSON(t, dbPath, "", "record", "add", "--date", "2025-12-18", "--value", "10.5"))
	assertOk(t, executeJSON(t, dbPath, "", "record", "add", "--date", "2025-12-17", "--value", "8"))

	envelope := executeJSON(t, dbPath, "", "record", "list")
	assertOk(t, envelope)
	data := envelopeData(t, envelope)

	if data["count"] != float64(2) {
		t.Fatalf("expected count=2, got %v", data["count"])
	}
	records, _ := data["records"].([]any)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", data["records"])
	}
	first, _ := records[0].(map[string]any)
	if first["date"] != "2025-12-17" || first["value"] != float64(8) {
		t.Fatalf("expected ascending order starting 2025-12-17, got %v", first)
	}
}

func TestRecordListRangeFilter(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	for _, day := range []string{"2025-12-01", "2025-12-10", "2025-12-20"} {
		assertOk(t, executeJSON(t, dbPath, "", "record", "add", "--date", day, "--value", "1"))
	}

	envelope := executeJSON(t, dbPath, "", "record", "list", "--from", "2025-12-05", "--to", "2025-12-15")
	assertOk(t, envelope)
	if data := envelopeData(t, envelope); data["count"] != float64(1) {
		t.Fatalf("expected only the 2025-12-10 row, got %v", data)
	}
}

func TestRecordAddRejectsBadDate(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	envelope := executeJSON(t, dbPath, "", "record", "add", "--date", "18-13-2025", "--value", "1")
	assertErrorCode(t, envelope, "INVALID_DATE")
}

func TestRecordListRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	envelope := executeJSON(t, dbPath, "", "record", "list", "--from", "2025-12-20", "--to", "2025-12-01")
	assertErrorCode(t, envelope, "INVALID_DATE_RANGE")
}

func TestReportMonthlySumGrowth(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	seeds := []struct {
		date  string
		value string
	}{
		{"2025-11-01", "50"},
		{"2025-11-02", "30"},
		{"2025-12-01", "100"},
		{"2025-12-02", "60"},
	}
	for _, seed := range seeds {
		assertOk(t, executeJSON(t, dbPath, "", "record", "add", "--date", seed.date, "--value", seed.value))
	}

	envelope := executeJSON(t, dbPath, "", "report", "monthly", "--mode", "sum")
	assertOk(t, envelope)
	data := envelopeData(t, envelope)

	if data["mode"] != "sum" {
		t.Fatalf("expected sum mode, got %v", data["mode"])
	}
	rows, _ := data["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 monthly rows, got %v", data["rows"])
	}
	december, _ := rows[1].(map[string]any)
	if december["month"] != "2025-12" || december["value"] != float64(160) {
		t.Fatalf("unexpected december row: %v", december)
	}
	// November total over the same two days is 80, so MoM is 100%.
	if december["mom_pct"] != float64(100) {
		t.Fatalf("expected mom_pct=100, got %v", december["mom_pct"])
	}
}

func TestReportMonthlyRejectsUnknownMode(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	envelope := executeJSON(t, dbPath, "", "report", "monthly", "--mode", "median")
	assertErrorCode(t, envelope, "INVALID_MODE")
}

func TestConfigDefaultsApplyWhenFlagsUnset(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	configPath := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(configPath, []byte("mode: average\nmonths: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	assertOk(t, executeJSON(t, dbPath, configPath, "record", "add", "--date", "2025-11-01", "--value", "10"))
	assertOk(t, executeJSON(t, dbPath, configPath, "record", "add", "--date", "2025-12-01", "--value", "20"))

	envelope := executeJSON(t, dbPath, configPath, "report", "monthly")
	assertOk(t, envelope)
	data := envelopeData(t, envelope)

	if data["mode"] != "average" {
		t.Fatalf("expected config mode to apply, got %v", data["mode"])
	}
	if rows, _ := data["rows"].([]any); len(rows) != 1 {
		t.Fatalf("expected config months=1 to apply, got %v", data["rows"])
	}
}

func TestKPISnapshot(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	assertOk(t, executeJSON(t, dbPath, "", "record", "add", "--date", "2024-12-18", "--value", "10"))
	assertOk(t, executeJSON(t, dbPath, "", "record", "add", "--date", "2025-12-18", "--value", "12"))

	envelope := executeJSON(t, dbPath, "", "kpi")
	assertOk(t, envelope)
	data := envelopeData(t, envelope)

	if data["latest"] != float64(12) || data["latest_date"] != "2025-12-18" {
		t.Fatalf("unexpected latest fields: %v", data)
	}
	if data["latest_yoy_pct"] != float64(20) {
		t.Fatalf("expected latest_yoy_pct=20, got %v", data["latest_yoy_pct"])
	}
}

func TestDataImportExportClear(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	inputPath := filepath.Join(t.TempDir(), "input.csv")
	input := "date,value\n18-12-2025,\"1,234.5\"\n2025-12-19,10\nnot-a-date,5\n"
	if err := os.WriteFile(inputPath, []byte(input), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	imported := executeJSON(t, dbPath, "", "data", "import", "--file", inputPath)
	assertOk(t, imported)
	data := envelopeData(t, imported)
	if data["imported"] != float64(2) || data["skipped"] != float64(1) {
		t.Fatalf("unexpected import counts: %v", data)
	}
	if warnings, _ := imported["warnings"].([]any); len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", imported["warnings"])
	}

	exportPath := filepath.Join(t.TempDir(), "export.csv")
	exported := executeJSON(t, dbPath, "", "data", "export", "--file", exportPath)
	assertOk(t, exported)
	if envelopeData(t, exported)["exported"] != float64(2) {
		t.Fatalf("unexpected export count: %v", exported)
	}

	payload, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(payload), "2025-12-18,1234.5") {
		t.Fatalf("expected canonical date in export, got %s", payload)
	}

	blocked := executeJSON(t, dbPath, "", "data", "clear")
	assertErrorCode(t, blocked, "INVALID_ARGUMENT")

	cleared := executeJSON(t, dbPath, "", "data", "clear", "--confirm")
	assertOk(t, cleared)
	if envelopeData(t, cleared)["deleted"] != float64(2) {
		t.Fatalf("unexpected delete count: %v", cleared)
	}
}

func TestDataBackupAndRestore(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli.db")
	backupPath := filepath.Join(t.TempDir(), "backup.db")

	assertOk(t, executeJSON(t, dbPath, "", "record", "add", "--date", "2025-12-18", "--value", "10"))
	assertOk(t, executeJSON(t, dbPath, "", "data", "backup", "--file", backupPath))

	assertOk(t, executeJSON(t, dbPath, "", "data", "clear", "--confirm"))
	assertOk(t, executeJSON(t, dbPath, "", "data", "restore", "--file", backupPath))

	envelope := executeJSON(t, dbPath, "", "record", "list")
	assertOk(t, envelope)
	if envelopeData(t, envelope)["count"] != float64(1) {
		t.Fatalf("expected restored series, got %v", envelope)
	}
}

func TestRejectsInvalidOutputFormat(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--output", "yaml", "record", "list"})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for invalid output format")
	}
}

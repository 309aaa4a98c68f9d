package canonval_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aafcanon/internal/canonval"
	"aafcanon/internal/testsupport"
)

func TestValidateFileMissing(t *testing.T) {
	report := canonval.New().ValidateFile(filepath.Join(t.TempDir(), "nope.json"))
	if report.OK {
		t.Fatal("missing file must fail")
	}
	if report.Errors[0].Code != canonval.CodeFileError {
		t.Errorf("code = %q", report.Errors[0].Code)
	}
	if report.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", report.ExitCode())
	}
}

func TestValidateFileParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	content := "{\n  \"project\": {\n  broken\n}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	report := canonval.New().ValidateFile(path)
	if report.OK {
		t.Fatal("malformed JSON must fail")
	}
	issue := report.Errors[0]
	if issue.Code != canonval.CodeParseError {
		t.Errorf("code = %q", issue.Code)
	}
	if !strings.HasPrefix(issue.Path, "line ") {
		t.Errorf("parse issues should carry the line, got %q", issue.Path)
	}
	if report.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", report.ExitCode())
	}
}

func TestValidateFileValidDocument(t *testing.T) {
	data, err := json.Marshal(testsupport.SampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "canon.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	report := canonval.New().ValidateFile(path)
	if !report.OK {
		t.Fatalf("expected valid, got %+v", report.Errors)
	}
}

func TestValidateFileSchemaFailureExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.json")
	if err := os.WriteFile(path, []byte(`{"project": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	report := canonval.New().ValidateFile(path)
	if report.ExitCode() != 1 {
		t.Errorf("schema failures exit 1, got %d", report.ExitCode())
	}
}

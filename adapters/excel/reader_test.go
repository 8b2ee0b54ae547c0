package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func testReader() *NumberReader {
	return NewNumberReader(zap.NewNop().Sugar())
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadNumbersCSVWithHeader(t *testing.T) {
	path := writeFixture(t, "sample.csv", "value\n42\n7\n255\n")

	got, err := testReader().ReadNumbers(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadNumbers: %v", err)
	}
	if got != "42 7 255" {
		t.Errorf("payload = %q, want %q", got, "42 7 255")
	}
}

func TestReadNumbersCSVNoHeader(t *testing.T) {
	path := writeFixture(t, "grid.csv", "1,2,3\n4,5,6\n")

	got, err := testReader().ReadNumbers(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadNumbers: %v", err)
	}
	if got != "1 2 3 4 5 6" {
		t.Errorf("payload = %q, want %q", got, "1 2 3 4 5 6")
	}
}

func TestReadNumbersPlainText(t *testing.T) {
	path := writeFixture(t, "numbers.txt", "10 20 30\n40\n")

	got, err := testReader().ReadNumbers(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadNumbers: %v", err)
	}
	if got != "10 20 30\n40" {
		t.Errorf("payload = %q, want %q", got, "10 20 30\n40")
	}
}

func TestReadNumbersWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	cells := map[string]interface{}{
		"A1": "reading", "B1": "count",
		"A2": 123, "B2": 9,
		"A3": 456, "B3": 12,
	}
	for ref, val := range cells {
		if err := f.SetCellValue("Sheet1", ref, val); err != nil {
			t.Fatalf("SetCellValue(%s): %v", ref, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	got, err := testReader().ReadNumbers(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadNumbers: %v", err)
	}
	if got != "123 9 456 12" {
		t.Errorf("payload = %q, want %q", got, "123 9 456 12")
	}
}

func TestReadNumbersMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := testReader().ReadNumbers(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "file not found") {
		t.Errorf("error = %q, want file-not-found", err)
	}
}

func TestReadNumbersCanceledContext(t *testing.T) {
	path := writeFixture(t, "numbers.txt", "1 2 3")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := testReader().ReadNumbers(ctx, path); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestHeaderRowDetection(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  bool
	}{
		{"labels", []string{"value", "count"}, true},
		{"numbers", []string{"1", "2.5"}, false},
		{"mixed", []string{"1", "total"}, true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHeaderRow(tt.cells); got != tt.want {
				t.Errorf("isHeaderRow(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

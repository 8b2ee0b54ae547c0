// Package excel extracts number payloads from spreadsheet and text
// files so exported datasets feed the validation pipeline without
// manual copy-paste.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gorand/ports"
)

// NumberReader loads delimiter-separated number text from .xlsx, .csv,
// or plain text files. The format follows the file extension.
type NumberReader struct {
	logger *zap.SugaredLogger
}

// NewNumberReader creates a file reader that logs through the given logger.
func NewNumberReader(logger *zap.SugaredLogger) *NumberReader {
	return &NumberReader{logger: logger}
}

var _ ports.NumberReaderPort = (*NumberReader)(nil)

// ReadNumbers returns the cell contents of path joined into a single
// space-separated payload. Workbooks are read from their first sheet,
// CSV files field by field, and any other extension as plain text. A
// leading header row in tabular files is dropped.
func (r *NumberReader) ReadNumbers(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var (
		payload string
		err     error
	)
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "xlsx", "xlsm":
		payload, err = r.readWorkbook(path)
	case "csv":
		payload, err = r.readCSV(path)
	default:
		format = "text"
		payload, err = r.readText(path)
	}
	if err != nil {
		return "", err
	}

	r.logger.Debugw("file payload loaded",
		"path", path,
		"format", format,
		"chars", len(payload))
	return payload, nil
}

func (r *NumberReader) readWorkbook(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rowsToPayload(rows), nil
}

func (r *NumberReader) readCSV(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rowsToPayload(records), nil
}

func (r *NumberReader) readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// rowsToPayload flattens tabular cells into the space-separated text
// the number parser consumes. Spreadsheet exports often carry a label
// row, so a first row with any non-numeric cell is treated as a header
// and skipped. Non-numeric cells below that pass through so malformed
// data surfaces as a parse error instead of vanishing.
func rowsToPayload(rows [][]string) string {
	var cells []string
	for i, row := range rows {
		trimmed := make([]string, 0, len(row))
		for _, cell := range row {
			if c := strings.TrimSpace(cell); c != "" {
				trimmed = append(trimmed, c)
			}
		}
		if i == 0 && isHeaderRow(trimmed) {
			continue
		}
		cells = append(cells, trimmed...)
	}
	return strings.Join(cells, " ")
}

func isHeaderRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return true
		}
	}
	return false
}

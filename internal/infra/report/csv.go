package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yanqian/weather-buddy/internal/domain/evaluation"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

var header = []string{"User Question", "Location", "Start Hour", "End Hour", "Forecast Response"}

// WriteCSV encodes rows with a BOM and a header line. Newlines inside a
// response become " | " so each row stays on one line.
func WriteCSV(w io.Writer, rows []evaluation.Row) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Question,
			row.Location,
			strconv.Itoa(row.StartHour),
			strconv.Itoa(row.EndHour),
			flatten(row.Response),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", " | ")
}

// FileSink writes the report CSV to a local path.
type FileSink struct {
	Path string
}

// Publish writes the CSV and returns its path.
func (s FileSink) Publish(_ context.Context, rep evaluation.Report) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep.Rows); err != nil {
		return "", err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return s.Path, nil
}

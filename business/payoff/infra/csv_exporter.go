// Package infra contains infrastructure adapters for the payoff context.
package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/fd1az/options-arbitrage/business/payoff/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
)

// CSVExporter writes payoff curves as underlying,payoff CSV files.
type CSVExporter struct {
	dir string
}

// NewCSVExporter creates an exporter writing into dir.
func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir}
}

// Write marshals the curve to w with a header row.
func (e *CSVExporter) Write(w io.Writer, curve domain.Curve) error {
	points := curve.Points()
	if err := gocsv.Marshal(&points, w); err != nil {
		return apperror.Wrap(err, apperror.CodeExportFailed, "marshal curve")
	}
	return nil
}

// Export writes the curve to <dir>/<name>.csv and returns the file path.
func (e *CSVExporter) Export(name string, curve domain.Curve) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", apperror.Wrap(err, apperror.CodeExportFailed, "create export dir")
	}

	path := filepath.Join(e.dir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeExportFailed, fmt.Sprintf("create %s", path))
	}
	defer file.Close()

	points := curve.Points()
	if err := gocsv.MarshalFile(&points, file); err != nil {
		return "", apperror.Wrap(err, apperror.CodeExportFailed, fmt.Sprintf("write %s", path))
	}
	return path, nil
}

package infra

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/options-arbitrage/business/payoff/domain"
)

func curve() domain.Curve {
	return domain.Curve{
		Prices:  []decimal.Decimal{decimal.NewFromInt(45), decimal.NewFromFloat(97.5), decimal.NewFromInt(165)},
		Payoffs: []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromFloat(8.5), decimal.NewFromInt(1)},
	}
}

func TestCSVExporter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVExporter("").Write(&buf, curve()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	want := "underlying,payoff\n45,1\n97.5,8.5\n165,1\n"
	if got := buf.String(); got != want {
		t.Errorf("Write =\n%s\nwant\n%s", got, want)
	}
}

func TestCSVExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "curves")

	path, err := NewCSVExporter(dir).Export("butterfly", curve())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if path != filepath.Join(dir, "butterfly.csv") {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Errorf("got %d lines, want 4", len(lines))
	}
}

package app

import (
	"fmt"

	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
)

// ExportCurves writes every opportunity's curve and returns the locations in
// opportunity order. Files are named <evaluation id prefix>_<flag>.
func ExportCurves(eval *domain.Evaluation, exporter CurveExporter) ([]string, error) {
	prefix := eval.ID.String()[:8]

	paths := make([]string, 0, len(eval.Opportunities))
	for _, opp := range eval.Opportunities {
		path, err := exporter.Export(fmt.Sprintf("%s_%s", prefix, opp.Flag), opp.Curve)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

package renderer

import (
	"errors"

	"github.com/nvannier/folio"
	"github.com/vicanso/go-charts/v2"
)

// ValuationChart renders the valuation series as a PNG line chart.
func ValuationChart(vs folio.ValuationSeries, title string) ([]byte, error) {
	if len(vs) == 0 {
		return nil, errors.New("no valuation points to chart")
	}

	xAxisData := make([]string, 0, len(vs))
	values := make([]float64, 0, len(vs))
	for _, p := range vs {
		xAxisData = append(xAxisData, p.On.String())
		values = append(values, p.TotalValue)
	}

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(xAxisData),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

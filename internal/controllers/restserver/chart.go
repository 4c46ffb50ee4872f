package restserver

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/somnolab/apneawatch/internal/analysis"
	"github.com/somnolab/apneawatch/internal/database"
)

// renderSignalChart writes an HTML line chart of a stored analysis's reduced
// signal. The curve is already bounded by the visualization cap, so no
// further down-sampling is needed here.
func renderSignalChart(w io.Writer, record *database.AnalysisRecord, chart []analysis.ChartPoint) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("ECG signal: %s", record.Filename),
			Subtitle: fmt.Sprintf("%d events, AHI %.2f (%s)", record.EventCount, record.AHI, record.Severity),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "amplitude"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	xs := make([]string, len(chart))
	ys := make([]opts.LineData, len(chart))
	for i, p := range chart {
		xs[i] = fmt.Sprintf("%.2f", p.Time)
		ys[i] = opts.LineData{Value: p.Value}
	}

	line.SetXAxis(xs).AddSeries("signal", ys)
	return line.Render(w)
}

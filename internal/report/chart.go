package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/sensorsim/internal/solver"
)

// RenderDetectionScatter writes an HTML page with a top-down scatter of the
// detections, one series per transmitter/receiver pair.
func RenderDetectionScatter(w io.Writer, title string, detections []solver.Detection) error {
	series := make(map[string][]opts.ScatterData)
	pad := 1.0
	for _, d := range detections {
		key := d.Transmitter + ":" + d.Receiver
		series[key] = append(series[key], opts.ScatterData{
			Value: []interface{}{d.Point.X, d.Point.Y, d.PathLength},
		})
		pad = math.Max(pad, math.Max(math.Abs(d.Point.X), math.Abs(d.Point.Y)))
	}
	pad = math.Ceil(pad * 1.1)

	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d detections, %d pairs", len(detections), len(keys))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)
	for _, k := range keys {
		scatter.AddSeries(k, series[k], charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	}

	return scatter.Render(w)
}

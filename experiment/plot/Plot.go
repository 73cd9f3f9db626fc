// Package plot renders experiment results as HTML charts
package plot

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/samuelfneumann/gridlearn/experiment"
)

// missing is the value echarts draws as a gap
const missing = "-"

// Benchmark renders bar charts of the mean planning time and mean path
// length of each planner, with the standard deviations as a second
// series, and writes the HTML page to w. Statistics over no samples
// are drawn as missing bars.
func Benchmark(w io.Writer, samples []experiment.Sample) error {
	names := make([]string, len(samples))
	times := make([]experiment.Stats, len(samples))
	lengths := make([]experiment.Stats, len(samples))
	for i, s := range samples {
		names[i] = s.Planner
		times[i] = s.TimeStats()
		lengths[i] = s.LengthStats()
	}

	page := components.NewPage()
	page.SetPageTitle("Planner Benchmark")
	page.AddCharts(
		bar("Average Time", "seconds", names, times),
		bar("Average Path Length", "cells", names, lengths),
	)
	return page.Render(w)
}

// bar returns a bar chart of the means and standard deviations in
// stats, labelled by names
func bar(title, unit string, names []string,
	stats []experiment.Stats) *charts.Bar {
	chart := charts.NewBar()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: unit,
		}),
	)

	means := make([]opts.BarData, len(stats))
	stds := make([]opts.BarData, len(stats))
	for i, s := range stats {
		means[i] = opts.BarData{Value: value(s.Mean)}
		stds[i] = opts.BarData{Value: value(s.Std)}
	}

	chart.SetXAxis(names).
		AddSeries("mean", means).
		AddSeries("std", stds)
	return chart
}

// value returns v as chart data, replacing NaN, which cannot be
// encoded as JSON, with the missing marker
func value(v float64) interface{} {
	if math.IsNaN(v) {
		return missing
	}
	return v
}

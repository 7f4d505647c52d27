package main

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
)

// plotCodeLengths renders a scatter plot of codeword length in bits against the number of symbols of that length.
func plotCodeLengths(path string, lengths map[int]int) error {
	if len(lengths) < 2 {
		return errors.Errorf("need at least two distinct codeword lengths to plot, have %d", len(lengths))
	}

	keys := make([]int, 0, len(lengths))
	for k := range lengths {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	xvals := make([]float64, 0, len(keys))
	yvals := make([]float64, 0, len(keys))
	var ymax float64
	for _, k := range keys {
		y := float64(lengths[k])
		xvals = append(xvals, float64(k))
		yvals = append(yvals, y)
		if y > ymax {
			ymax = y
		}
	}
	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "codeword bits"},
		// Equal counts would otherwise give an empty y range.
		YAxis: chart.YAxis{Name: "symbols", Range: &chart.ContinuousRange{Min: 0, Max: ymax}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
				},
				XValues: xvals,
				YValues: yvals,
			},
		},
	}

	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer fh.Close()
	if err := graph.Render(chart.SVG, fh); err != nil {
		return errors.Wrap(err, "")
	}
	return errors.Wrap(fh.Close(), "")
}

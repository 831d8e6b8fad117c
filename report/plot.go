package report

import (
	"errors"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/stepstone/transport"
)

// Default plot size.
const (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// ErrNoCosts is returned by CostPlot when the trace holds no objective value.
var ErrNoCosts = errors.New("report: trace has no cost values")

// CostSeries returns the objective value of the initial plan followed by the
// value after every pivot.
func CostSeries(res *transport.Result) []float64 {
	if res == nil {
		return nil
	}
	var out []float64
	for _, e := range res.Trace {
		switch e.Stage {
		case transport.StageInitialPlan, transport.StagePivot:
			out = append(out, e.Cost)
		}
	}

	return out
}

// CostPlot builds a line chart of CostSeries against the pivot number.
func CostPlot(res *transport.Result) (*plot.Plot, error) {
	series := CostSeries(res)
	if len(series) == 0 {
		return nil, ErrNoCosts
	}

	pts := make(plotter.XYs, len(series))
	for k, c := range series {
		pts[k].X = float64(k)
		pts[k].Y = c
	}

	p := plot.New()
	p.Title.Text = "Objective value per pivot (" + res.Method.String() + ", " + res.PivotRule.String() + ")"
	p.X.Label.Text = "pivot"
	p.Y.Label.Text = "cost"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	marks, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	p.Add(line, marks)

	return p, nil
}

// WriteCostPlot renders CostPlot in format ("png", "svg", "pdf", ...) to w.
func WriteCostPlot(w io.Writer, res *transport.Result, format string) error {
	p, err := CostPlot(res)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)

	return err
}

// SaveCostPlot renders CostPlot to path; the format follows the extension.
func SaveCostPlot(path string, res *transport.Result) error {
	p, err := CostPlot(res)
	if err != nil {
		return err
	}

	return p.Save(PlotWidth, PlotHeight, path)
}

package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Series is one line of a step chart. Values[i] is the value after step i.
type Series struct {
	Name   string
	Color  color.RGBA
	Values []float64
}

// WriteStepChart renders series against the step index as a PNG. All series
// must have the same length of at least two points.
func WriteStepChart(w io.Writer, title string, series []Series) error {
	if len(series) == 0 {
		return errors.New("step chart needs at least one series")
	}
	n := len(series[0].Values)
	if n < 2 {
		return fmt.Errorf("step chart needs at least two points, got %d", n)
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	yMax := 1.0
	lines := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) != n {
			return fmt.Errorf("series %q has %d points, want %d", s.Name, len(s.Values), n)
		}
		for _, v := range s.Values {
			yMax = max(yMax, v)
		}
		lines = append(lines, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeColor: drawing.Color{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A},
				StrokeWidth: 3.0,
			},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  640,
		Height: 360,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(n - 1)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// SaveStepChart writes WriteStepChart output to path.
func SaveStepChart(path, title string, series []Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	if err := WriteStepChart(f, title, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package starfield

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotBands saves a bar chart of BandCounts next to the count every band
// should get under a uniform spread. Useful to eyeball a generated layer.
func PlotBands(c *PointCloud, bands int, path string) error {
	counts, err := BandCounts(c, bands)
	if err != nil {
		return err
	}
	vals := make(plotter.Values, len(counts))
	for i, n := range counts {
		vals[i] = float64(n)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d stars, radius %g, %d equal-area bands", c.Len(), c.Radius(), bands)
	p.X.Label.Text = "band (south to north)"
	p.Y.Label.Text = "points"

	bars, err := plotter.NewBarChart(vals, vg.Points(8))
	if err != nil {
		return errors.Wrap(err, "bar chart")
	}
	bars.Color = color.RGBA{R: 70, G: 110, B: 200, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars)

	expected := float64(c.Len()) / float64(bands)
	line, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: expected},
		{X: float64(bands) - 0.5, Y: expected},
	})
	if err != nil {
		return errors.Wrap(err, "expected line")
	}
	line.LineStyle.Color = color.RGBA{R: 220, G: 50, B: 50, A: 255}
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(line)
	p.Legend.Add("uniform", line)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving band plot to %s", path)
	}
	return nil
}

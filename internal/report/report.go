// Package report renders training progress charts.
package report

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/FlavioCFOliveira/neurograph/internal/net"
)

// LossPlot builds a line chart of the loss of each epoch.
func LossPlot(title string, losses []float64) (*plot.Plot, error) {
	if len(losses) == 0 {
		return nil, errors.New("report: no losses to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Loss"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(losses))
	for i, l := range losses {
		pts[i].X = float64(i)
		pts[i].Y = l
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "report: failed to build loss line")
	}
	line.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

// LossChart writes the loss chart to filename. The image format follows the
// file extension (png, svg, pdf, ...).
func LossChart(title string, losses []float64, filename string) error {
	p, err := LossPlot(title, losses)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "report: failed to save %s", filename)
	}
	return nil
}

// Chart is a training callback that records the loss of every epoch and
// writes the chart when training ends.
type Chart struct {
	net.LossHistory
	Title    string
	Filename string
	// Err holds the failure of the last write.
	Err error
}

func (c *Chart) OnTrainEnd(n *net.Network) {
	c.Err = LossChart(c.Title, c.Losses, c.Filename)
}

package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"capital-engine/internal/simulation"
)

// ErrEmptyEnsemble is returned when there is nothing to draw.
var ErrEmptyEnsemble = errors.New("ensemble has no trajectories")

type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	Format string // png, svg, pdf...
	Median bool   // overlay the median path
}

func DefaultOptions() Options {
	return Options{
		Title:  "Capital over time",
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
		Format: "png",
		Median: true,
	}
}

// Render draws one line per trajectory, x = month index and y = capital.
func Render(w io.Writer, ens simulation.Ensemble, opts Options) error {
	if len(ens) == 0 || len(ens[0]) == 0 {
		return ErrEmptyEnsemble
	}
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Months"
	p.Y.Label.Text = "Capital"
	p.Add(plotter.NewGrid())

	for i, path := range ens {
		line, err := plotter.NewLine(points(path))
		if err != nil {
			return fmt.Errorf("trajectory %d: %w", i+1, err)
		}
		r, g, b, _ := plotutil.Color(i).RGBA()
		line.Color = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 128}
		line.Width = vg.Points(1)
		p.Add(line)
	}

	if opts.Median {
		median := simulation.Summarize(ens, 50).Bands[0].Values
		line, err := plotter.NewLine(points(median))
		if err != nil {
			return fmt.Errorf("median: %w", err)
		}
		line.Color = color.Black
		line.Width = vg.Points(2.5)
		p.Add(line)
		p.Legend.Add("Median", line)
		p.Legend.Top = true
		p.Legend.Left = true
	}

	wt, err := p.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return fmt.Errorf("prepare %s canvas: %w", opts.Format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func points(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for m, v := range values {
		pts[m].X = float64(m)
		pts[m].Y = v
	}
	return pts
}

// Package chart renders the report charts as PNG images.
package chart

import (
	"io"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"

	"opsreport/internal/errors"
)

// Bar is one labeled bar
type Bar struct {
	Label string
	Value float64
}

// BarChartSpec describes a bar chart to render
type BarChartSpec struct {
	Title  string
	YLabel string
	Width  int
	Height int
	Bars   []Bar
}

// RenderPNG renders the bar chart as PNG into w
func RenderPNG(spec BarChartSpec, w io.Writer) error {
	if len(spec.Bars) == 0 {
		return errors.NewValidationError("bar chart has no data", nil)
	}
	// A zero value range cannot be scaled onto the canvas
	maxValue := 0.0
	for _, b := range spec.Bars {
		if b.Value > maxValue {
			maxValue = b.Value
		}
	}
	if maxValue <= 0 {
		return errors.NewValidationError("bar chart has no positive values", nil)
	}
	if spec.Width <= 0 {
		spec.Width = 1024
	}
	if spec.Height <= 0 {
		spec.Height = 512
	}

	values := make([]gochart.Value, len(spec.Bars))
	for i, b := range spec.Bars {
		values[i] = gochart.Value{Label: b.Label, Value: b.Value}
	}

	graph := gochart.BarChart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		BarWidth:     48,
		BarSpacing:   24,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: gochart.YAxis{
			Name: spec.YLabel,
		},
		XAxis: gochart.Style{},
		Bars:  values,
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return errors.NewStorageError("failed to render bar chart", err)
	}
	return nil
}

// WritePNG renders the bar chart to a PNG file, creating parent directories
func WritePNG(spec BarChartSpec, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create chart directory", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create chart file", err)
	}
	defer f.Close()

	if err := RenderPNG(spec, f); err != nil {
		return err
	}
	return f.Close()
}

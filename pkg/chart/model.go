package chart

import (
	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/geom"
	"github.com/matzehuels/stackchart/pkg/layout"
)

// Dataset is one named series of values.
type Dataset[Pt any] struct {
	Name   string       `json:"name" yaml:"name" toml:"name"`
	Values []Pt         `json:"values" yaml:"values" toml:"values"`
	Colour *draw.Colour `json:"colour,omitempty" yaml:"colour,omitempty" toml:"colour,omitempty"`
	// Thickness is the stroke width of line series. Zero uses the chart
	// type's default.
	Thickness float64 `json:"thickness,omitempty" yaml:"thickness,omitempty" toml:"thickness,omitempty"`
}

// Margins overrides the default plot margins per axis. A nil axis keeps
// its default.
type Margins = geom.XY[*float64]

// ChartInfo holds the parts of a chart shared by every chart type.
type ChartInfo[Pt any] struct {
	Datasets []Dataset[Pt] `json:"datasets" yaml:"datasets" toml:"datasets"`
	Font     *fonts.Spec   `json:"font,omitempty" yaml:"font,omitempty" toml:"font,omitempty"`
	Margins  *Margins      `json:"margins,omitempty" yaml:"margins,omitempty" toml:"margins,omitempty"`
	Caption  string        `json:"caption,omitempty" yaml:"caption,omitempty" toml:"caption,omitempty"`
	Legend   *bool         `json:"legend,omitempty" yaml:"legend,omitempty" toml:"legend,omitempty"`
}

// FontSpec returns the configured font or the sans-serif 12px default.
func (i ChartInfo[Pt]) FontSpec() fonts.Spec {
	if i.Font == nil {
		return fonts.Default()
	}
	return i.Font.WithDefaults()
}

// Margin returns the gap between the plot and its labels.
func (i ChartInfo[Pt]) Margin() geom.XY[float64] {
	m := layout.DefaultMargin
	if i.Margins == nil {
		return m
	}
	if i.Margins.X != nil {
		m.X = *i.Margins.X
	}
	if i.Margins.Y != nil {
		m.Y = *i.Margins.Y
	}
	return m
}

// Thickness returns the stroke width of dataset n, or def when the
// dataset sets none.
func (i ChartInfo[Pt]) Thickness(n int, def float64) float64 {
	if n < len(i.Datasets) && i.Datasets[n].Thickness > 0 {
		return i.Datasets[n].Thickness
	}
	return def
}

// ShowLegend reports whether the legend is drawn. It defaults to true.
func (i ChartInfo[Pt]) ShowLegend() bool { return i.Legend == nil || *i.Legend }

// Colour returns the colour of dataset n, falling back to the palette.
func (i ChartInfo[Pt]) Colour(n int) draw.Colour {
	if n < len(i.Datasets) && i.Datasets[n].Colour != nil {
		return *i.Datasets[n].Colour
	}
	return draw.PaletteColour(n)
}

// Names returns the dataset names in order.
func (i ChartInfo[Pt]) Names() []string {
	names := make([]string, len(i.Datasets))
	for n, d := range i.Datasets {
		names[n] = d.Name
	}
	return names
}

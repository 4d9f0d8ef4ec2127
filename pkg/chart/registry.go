package chart

import (
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// Renderer is a fully configured chart of any type.
type Renderer interface {
	Kind() string
	Render(ctx draw.Context, area geom.Rect) error
}

// Decoder decodes the chart document into v. It is called once per
// target, so every call must see the whole document.
type Decoder func(v any) error

// Factory builds a Renderer from a chart document.
type Factory func(dec Decoder) (Renderer, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a chart type available to Decode under kind and any
// aliases. Names are matched case-insensitively. Registering a name twice
// replaces the earlier factory.
func Register(kind string, f Factory, aliases ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, name := range append([]string{kind}, aliases...) {
		registry[strings.ToLower(name)] = f
	}
}

// Kinds lists the registered chart type names, sorted.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lookup(kind string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(strings.TrimSpace(kind))]
	return f, ok
}

// TypeFactory returns a Factory that decodes the document into a chart of
// type C. newType supplies the type's defaults before decoding.
func TypeFactory[C ChartType[Pt], Pt any](newType func() C) Factory {
	return func(dec Decoder) (Renderer, error) {
		c := &Chart[C, Pt]{Type: newType()}
		if err := dec(&c.Type); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s options", c.Type.Name())
		}
		if err := dec(&c.Info); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s datasets", c.Type.Name())
		}
		return c, nil
	}
}

func init() {
	Register(XYScatterName, TypeFactory[XYScatter, XYPoint](func() XYScatter { return XYScatter{} }), "xyscatter", "scatter", "line")
	Register(BarName, TypeFactory[BarChart, float64](func() BarChart { return BarChart{} }), "bars")
}

// Charts is a decoded chart of whichever registered type its document
// named.
type Charts struct {
	Renderer
}

// Decode reads the "type" field of the document and hands the document to
// the matching factory. Unknown types fail with
// errors.ErrCodeInvalidChartType.
func Decode(dec Decoder) (*Charts, error) {
	var head struct {
		Type string `json:"type" yaml:"type" toml:"type"`
	}
	if err := dec(&head); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode chart type")
	}
	if head.Type == "" {
		return nil, errors.New(errors.ErrCodeInvalidChartType, "chart type missing (available: %s)", strings.Join(Kinds(), ", "))
	}
	f, ok := lookup(head.Type)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidChartType, "unknown chart type %q (available: %s)", head.Type, strings.Join(Kinds(), ", "))
	}
	r, err := f(dec)
	if err != nil {
		return nil, err
	}
	return &Charts{Renderer: r}, nil
}

// NewScatter wraps an XYScatter chart.
func NewScatter(t XYScatter, info ChartInfo[XYPoint]) *Charts {
	return &Charts{Renderer: &Chart[XYScatter, XYPoint]{Type: t, Info: info}}
}

// NewBar wraps a BarChart.
func NewBar(t BarChart, info ChartInfo[float64]) *Charts {
	return &Charts{Renderer: &Chart[BarChart, float64]{Type: t, Info: info}}
}

// Package fonts resolves font specifications to measurable faces.
//
// Faces are built from the Go font family shipped with golang.org/x/image,
// so measurement is identical on every machine and no system font lookup
// takes place. The same faces drive the raster backend, which keeps the
// measured extents of a label in agreement with what ends up in the PNG.
package fonts

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

const (
	// DefaultFamily is used when a chart does not name a font.
	DefaultFamily = "sans-serif"
	// DefaultSize is the default font size in pixels.
	DefaultSize = 12.0
)

// Spec names a font family and a size in pixels.
type Spec struct {
	Family string  `json:"family" yaml:"family" toml:"family"`
	Size   float64 `json:"size" yaml:"size" toml:"size"`
}

// Default returns the sans-serif 12px spec.
func Default() Spec { return Spec{Family: DefaultFamily, Size: DefaultSize} }

// WithDefaults fills zero fields from Default.
func (s Spec) WithDefaults() Spec {
	if strings.TrimSpace(s.Family) == "" {
		s.Family = DefaultFamily
	}
	if s.Size <= 0 {
		s.Size = DefaultSize
	}
	return s
}

// CSSFamily returns a font-family value for SVG output.
func (s Spec) CSSFamily() string {
	switch face := lookupName(s.Family); face {
	case "gomono":
		return "'Go Mono', monospace"
	case "":
		return s.Family
	default:
		return "'Go', sans-serif"
	}
}

// CSSWeight returns the font-weight to pair with CSSFamily.
func (s Spec) CSSWeight() string {
	switch lookupName(s.Family) {
	case "gobold":
		return "bold"
	case "gomedium":
		return "500"
	}
	return "normal"
}

// CSSStyle returns the font-style to pair with CSSFamily.
func (s Spec) CSSStyle() string {
	if lookupName(s.Family) == "goitalic" {
		return "italic"
	}
	return "normal"
}

type parsed struct {
	ttf  []byte
	once sync.Once
	font *opentype.Font
	err  error
}

func (p *parsed) load() (*opentype.Font, error) {
	p.once.Do(func() {
		p.font, p.err = opentype.Parse(p.ttf)
	})
	return p.font, p.err
}

var faces = map[string]*parsed{
	"goregular": {ttf: goregular.TTF},
	"gobold":    {ttf: gobold.TTF},
	"goitalic":  {ttf: goitalic.TTF},
	"gomedium":  {ttf: gomedium.TTF},
	"gomono":    {ttf: gomono.TTF},
}

var aliases = map[string]string{
	"sans-serif":      "goregular",
	"sans":            "goregular",
	"go":              "goregular",
	"go regular":      "goregular",
	"sans-serif bold": "gobold",
	"bold":            "gobold",
	"go bold":         "gobold",
	"italic":          "goitalic",
	"go italic":       "goitalic",
	"go medium":       "gomedium",
	"monospace":       "gomono",
	"mono":            "gomono",
	"go mono":         "gomono",
}

func lookupName(family string) string {
	key := strings.ToLower(strings.TrimSpace(family))
	if key == "" {
		key = DefaultFamily
	}
	if _, ok := faces[key]; ok {
		return key
	}
	return aliases[key]
}

// Families lists the family names Resolve accepts.
func Families() []string {
	names := make([]string, 0, len(aliases)+len(faces))
	for k := range aliases {
		names = append(names, k)
	}
	for k := range faces {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Face is a resolved font at a fixed size.
type Face struct {
	spec    Spec
	face    font.Face
	metrics font.Metrics
	mu      sync.Mutex
}

// Resolve returns a face for spec. Unknown families fail with
// errors.ErrCodeFontLoading.
func Resolve(spec Spec) (*Face, error) {
	spec = spec.WithDefaults()
	name := lookupName(spec.Family)
	if name == "" {
		return nil, errors.New(errors.ErrCodeFontLoading,
			"unknown font family %q (available: %s)", spec.Family, strings.Join(Families(), ", "))
	}
	f, err := faces[name].load()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoading, err, "parse font %s", name)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoading, err, "build face %s", name)
	}
	return &Face{spec: spec, face: face, metrics: face.Metrics()}, nil
}

// Spec returns the spec the face was resolved from, with defaults applied.
func (f *Face) Spec() Spec { return f.spec }

// Measure returns the advance width of s and the line height of the face.
func (f *Face) Measure(s string) geom.Size {
	f.mu.Lock()
	adv := font.MeasureString(f.face, s)
	f.mu.Unlock()
	return geom.Size{W: toFloat(adv), H: f.Height()}
}

// Height is ascent plus descent.
func (f *Face) Height() float64 { return toFloat(f.metrics.Ascent + f.metrics.Descent) }

// Ascent is the distance from the baseline to the top of the line.
func (f *Face) Ascent() float64 { return toFloat(f.metrics.Ascent) }

// Descent is the distance from the baseline to the bottom of the line.
func (f *Face) Descent() float64 { return toFloat(f.metrics.Descent) }

// XFace exposes the underlying face for raster backends. It is not safe
// for concurrent use.
func (f *Face) XFace() font.Face { return f.face }

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

package draw

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Colour is a non-premultiplied RGBA colour.
type Colour struct {
	R, G, B, A uint8
}

// Common colours.
var (
	Black       = Colour{0, 0, 0, 255}
	White       = Colour{255, 255, 255, 255}
	Transparent = Colour{}
	GridGrey    = Colour{0xcc, 0xcc, 0xcc, 255}
)

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Colour { return Colour{r, g, b, 255} }

// WithAlpha returns c with opacity a in [0, 1].
func (c Colour) WithAlpha(a float64) Colour {
	switch {
	case a <= 0:
		c.A = 0
	case a >= 1:
		c.A = 255
	default:
		c.A = uint8(a*255 + 0.5)
	}
	return c
}

// Opacity returns the alpha channel in [0, 1].
func (c Colour) Opacity() float64 { return float64(c.A) / 255 }

// Hex returns the colour as #rrggbb, ignoring alpha.
func (c Colour) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// NRGBA converts c for image/color consumers.
func (c Colour) NRGBA() color.NRGBA { return color.NRGBA{c.R, c.G, c.B, c.A} }

// String returns #rrggbb for opaque colours and #rrggbbaa otherwise.
func (c Colour) String() string {
	if c.A == 255 {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), c.A)
}

// MarshalText implements encoding.TextMarshaler.
func (c Colour) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler using ParseColour.
func (c *Colour) UnmarshalText(b []byte) error {
	v, err := ParseColour(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

var named = map[string]Colour{
	"black":       Black,
	"white":       White,
	"red":         RGB(255, 0, 0),
	"green":       RGB(0, 128, 0),
	"blue":        RGB(0, 0, 255),
	"yellow":      RGB(255, 255, 0),
	"cyan":        RGB(0, 255, 255),
	"magenta":     RGB(255, 0, 255),
	"orange":      RGB(255, 165, 0),
	"purple":      RGB(128, 0, 128),
	"grey":        RGB(128, 128, 128),
	"gray":        RGB(128, 128, 128),
	"transparent": Transparent,
}

// ParseColour accepts a colour name, #rgb, #rrggbb or #rrggbbaa.
func ParseColour(s string) (Colour, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Colour{}, errors.New(errors.ErrCodeInvalidInput, "invalid colour %q", s)
	}
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Colour{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid colour %q", s)
		}
		alpha, s = uint8(a), s[:7]
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Colour{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid colour %q", s)
	}
	r, g, b := cf.RGB255()
	return Colour{r, g, b, alpha}, nil
}

// Palette holds the default dataset colours, cycled by dataset index.
var Palette = []Colour{
	RGB(0x4c, 0x72, 0xb0),
	RGB(0x55, 0xa8, 0x68),
	RGB(0xc4, 0x4e, 0x52),
	RGB(0x81, 0x72, 0xb2),
	RGB(0xcc, 0xb9, 0x74),
	RGB(0x64, 0xb5, 0xcd),
}

// PaletteColour returns the default colour for dataset i. Once the palette
// is exhausted the cycle repeats with lighter tints.
func PaletteColour(i int) Colour {
	if i < 0 {
		i = 0
	}
	base := Palette[i%len(Palette)]
	round := i / len(Palette)
	if round == 0 {
		return base
	}
	cf := colorful.Color{R: float64(base.R) / 255, G: float64(base.G) / 255, B: float64(base.B) / 255}
	tint := cf.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, min(0.25*float64(round), 0.75)).Clamped()
	r, g, b := tint.RGB255()
	return Colour{r, g, b, 255}
}

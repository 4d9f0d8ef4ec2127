package sink

import (
	"bytes"
	"os/exec"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// PDF is an SVG canvas whose Finish converts the document with
// rsvg-convert.
type PDF struct {
	*SVG
}

// NewPDF returns an empty PDF canvas.
func NewPDF(width, height float64, opts ...SVGOption) *PDF {
	return &PDF{SVG: NewSVG(width, height, opts...)}
}

// Finish implements Canvas.
func (p *PDF) Finish() ([]byte, error) {
	svg, err := p.SVG.Finish()
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}

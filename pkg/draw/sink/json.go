package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// JSON is a canvas that records primitives and encodes them as JSON.
type JSON struct {
	*draw.Recorder
	width, height float64
	background    draw.Colour
}

type jsonOutput struct {
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	Background draw.Colour      `json:"background"`
	Primitives []draw.Primitive `json:"primitives"`
}

// NewJSON returns an empty JSON canvas.
func NewJSON(width, height float64, background draw.Colour) *JSON {
	return &JSON{Recorder: draw.NewRecorder(), width: width, height: height, background: background}
}

// Finish implements Canvas.
func (j *JSON) Finish() ([]byte, error) {
	if d := j.Depth(); d != 0 {
		return nil, unbalanced(d)
	}
	prims := j.Primitives
	if prims == nil {
		prims = []draw.Primitive{}
	}
	data, err := json.MarshalIndent(jsonOutput{
		Width:      j.width,
		Height:     j.height,
		Background: j.background,
		Primitives: prims,
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "encode json")
	}
	return data, nil
}

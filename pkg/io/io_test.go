package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

const barYAML = `type: bar
categories: [a, b]
datasets:
  - name: one
    values: [1, 2]
  - name: two
    colour: "#ff0000"
    values: [3, 4]
`

const barTOML = `type = "bar"
categories = ["a", "b"]

[[datasets]]
name = "one"
values = [1, 2]

[[datasets]]
name = "two"
colour = "#ff0000"
values = [3, 4]
`

const barJSON = `{"type": "bar", "categories": ["a", "b"], "datasets": [
	{"name": "one", "values": [1, 2]},
	{"name": "two", "colour": "#ff0000", "values": [3, 4]}
]}`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"yaml", FormatYAML, false},
		{".yml", FormatYAML, false},
		{"TOML", FormatTOML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want Format
	}{
		{"yaml extension", "chart.yaml", barJSON, FormatYAML},
		{"toml extension", "chart.toml", "", FormatTOML},
		{"json extension", "c.JSON", "", FormatJSON},
		{"sniff json", "-", barJSON, FormatJSON},
		{"sniff toml", "-", barTOML, FormatTOML},
		{"sniff toml table", "", "# c\n[axis]\nx = \"a\"", FormatTOML},
		{"sniff yaml", "", barYAML, FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseChartFormats(t *testing.T) {
	docs := map[Format]string{
		FormatYAML: barYAML,
		FormatTOML: barTOML,
		FormatJSON: barJSON,
	}
	var want []draw.Primitive
	for _, f := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		c, err := ParseChart([]byte(docs[f]), f)
		if err != nil {
			t.Fatalf("ParseChart(%s) error = %v", f, err)
		}
		if c.Kind() != "bar" {
			t.Errorf("ParseChart(%s).Kind() = %q, want bar", f, c.Kind())
		}
		rec := draw.NewRecorder()
		if err := c.Render(rec, geom.Rect{X1: 400, Y1: 300}); err != nil {
			t.Fatalf("Render(%s) error = %v", f, err)
		}
		if want == nil {
			want = rec.Primitives
			continue
		}
		if len(rec.Primitives) != len(want) {
			t.Errorf("%s rendered %d primitives, yaml rendered %d", f, len(rec.Primitives), len(want))
		}
	}
}

func TestParseChartErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		f    Format
		code errors.Code
	}{
		{"empty", "  \n", FormatYAML, errors.ErrCodeInvalidInput},
		{"malformed json", "{", FormatJSON, errors.ErrCodeInvalidFormat},
		{"malformed toml", "type = ", FormatTOML, errors.ErrCodeInvalidFormat},
		{"no type", "caption: x\n", FormatYAML, errors.ErrCodeInvalidChartType},
		{"unknown type", "type: pie\n", FormatYAML, errors.ErrCodeInvalidChartType},
		{"bad format", barJSON, Format("xml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChart([]byte(tt.doc), tt.f)
			if !errors.Is(err, tt.code) {
				t.Errorf("ParseChart() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestParseChartSeriesOptions(t *testing.T) {
	doc := `type: xy-scatter
margins: {x: 3}
datasets:
  - name: a
    thickness: 5
    values: [{x: 0, y: 0}, {x: 4, y: 8}]
`
	c, err := ParseChart([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("ParseChart() error = %v", err)
	}
	sc, ok := c.Renderer.(*chart.Chart[chart.XYScatter, chart.XYPoint])
	if !ok {
		t.Fatalf("Renderer = %T, want a scatter chart", c.Renderer)
	}
	if got, want := sc.Info.Margin(), (geom.XY[float64]{X: 3, Y: 10}); got != want {
		t.Errorf("Margin() = %+v, want %+v", got, want)
	}

	rec := draw.NewRecorder()
	if err := c.Render(rec, geom.Rect{X1: 400, Y1: 300}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	paths := rec.Filter(draw.KindStrokedPath)
	if len(paths) != 1 || paths[0].Stroke.Width != 5 {
		t.Errorf("stroked paths = %+v, want one of width 5", paths)
	}
}

func TestReadChart(t *testing.T) {
	c, err := ReadChart(strings.NewReader(barJSON), FormatJSON)
	if err != nil {
		t.Fatalf("ReadChart() error = %v", err)
	}
	if c.Kind() != "bar" {
		t.Errorf("Kind() = %q, want bar", c.Kind())
	}
}

func TestImportChart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart")
	if err := os.WriteFile(path, []byte(barTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportChart(path); err != nil {
		t.Errorf("ImportChart() without extension error = %v", err)
	}

	_, err := ImportChart(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportChart(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestImportExamples(t *testing.T) {
	for _, name := range []string{"sales.yaml", "growth.toml", "signal.json"} {
		t.Run(name, func(t *testing.T) {
			c, err := ImportChart(filepath.Join("..", "..", "examples", name))
			if err != nil {
				t.Fatalf("ImportChart() error = %v", err)
			}
			rec := draw.NewRecorder()
			if err := c.Render(rec, geom.Rect{X1: 600, Y1: 400}); err != nil {
				t.Errorf("Render() error = %v", err)
			}
			if rec.Depth() != 0 {
				t.Errorf("Depth() = %d, want 0", rec.Depth())
			}
		})
	}
}

func TestConvert(t *testing.T) {
	for _, to := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		out, err := Convert([]byte(barYAML), FormatYAML, to)
		if err != nil {
			t.Fatalf("Convert(yaml, %s) error = %v", to, err)
		}
		c, err := ParseChart(out, to)
		if err != nil {
			t.Fatalf("ParseChart(converted %s) error = %v\n%s", to, err, out)
		}
		if c.Kind() != "bar" {
			t.Errorf("converted %s Kind() = %q, want bar", to, c.Kind())
		}
	}
}

func TestWriteDocumentUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDocument(&buf, map[string]any{"type": "bar"}, Format("xml"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("WriteDocument() error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
)

const barDoc = `type: bar
caption: Sales
categories: [north, south, east]
datasets:
  - name: "2023"
    values: [3, 5, 2]
  - name: "2024"
    values: [4, 6, 1]
`

func TestValidateAndSetDefaults(t *testing.T) {
	o := Options{Document: []byte(barDoc)}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight || o.Scale != DefaultScale {
		t.Errorf("defaults = %dx%d@%g, want %dx%d@%g", o.Width, o.Height, o.Scale, DefaultWidth, DefaultHeight, DefaultScale)
	}
	if len(o.Formats) != 1 || o.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty document", Options{}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Document: []byte(barDoc), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad input format", Options{Document: []byte(barDoc), InputFormat: "xml"}, errors.ErrCodeInvalidFormat},
		{"tiny canvas", Options{Document: []byte(barDoc), Width: 4, Height: 4}, errors.ErrCodeInvalidInput},
		{"huge scale", Options{Document: []byte(barDoc), Scale: 20}, errors.ErrCodeInvalidInput},
		{"bad background", Options{Document: []byte(barDoc), Background: "not-a-colour"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOptsScale(t *testing.T) {
	o := Options{Document: []byte(barDoc), Scale: 2}
	o.SetRenderDefaults()
	if got := o.ArtifactKeyOpts("svg").Scale; got != 0 {
		t.Errorf("svg key scale = %g, want 0", got)
	}
	if got := o.ArtifactKeyOpts("png").Scale; got != 2 {
		t.Errorf("png key scale = %g, want 2", got)
	}
}

func TestRender(t *testing.T) {
	out, err := Render(Options{Document: []byte(barDoc), Formats: []string{"svg", "json", "PNG"}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Contains(out["svg"], []byte("<svg")) {
		t.Errorf("svg artifact does not look like SVG: %.60s", out["svg"])
	}
	if !bytes.HasPrefix(out["png"], []byte("\x89PNG")) {
		t.Error("png artifact lacks the PNG signature")
	}
	if !bytes.Contains(out["json"], []byte(`"primitives"`)) {
		t.Error("json artifact lacks primitives")
	}
}

func TestRenderLayoutError(t *testing.T) {
	doc := "type: bar\ndatasets:\n  - values: [" + strings.Repeat("1, ", 400) + "1]\n"
	_, err := Render(Options{Document: []byte(doc), Width: 100, Height: 100})
	var se *errors.SpaceError
	if !errors.As(err, &se) {
		t.Fatalf("Render() error = %v, want *SpaceError", err)
	}
	if se.Needed <= se.Available {
		t.Errorf("SpaceError = %+v, want Needed > Available", se)
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, k string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[k]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, k string, d []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[k] = d
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, k string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, k)
	return nil
}

func (m *memCache) Close() error { return nil }

type hookCounter struct {
	observability.NoopPipelineHooks
	renders int
}

func (h *hookCounter) OnRenderStart(context.Context, string, string) { h.renders++ }

func TestRunnerCaches(t *testing.T) {
	hooks := &hookCounter{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	opts := Options{Document: []byte(barDoc), Source: "sales.yaml", Formats: []string{"svg", "json"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.Kind != "bar" {
		t.Errorf("Kind = %q, want bar", first.Kind)
	}
	if first.CacheInfo.RenderHit || len(first.CacheInfo.Hits) != 0 {
		t.Errorf("first run CacheInfo = %+v, want no hits", first.CacheInfo)
	}
	if mc.sets != 2 {
		t.Errorf("cache sets = %d, want 2", mc.sets)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want RenderHit", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from the rendered one")
	}
	if hooks.renders != 2 {
		t.Errorf("render hooks = %d, want 2", hooks.renders)
	}

	opts.Refresh = true
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if hooks.renders != 4 {
		t.Errorf("render hooks after refresh = %d, want 4", hooks.renders)
	}
}

func TestRunnerDeterministic(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	opts := Options{Document: []byte(barDoc), Formats: []string{"svg"}}
	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Artifacts["svg"], b.Artifacts["svg"]) {
		t.Error("two renders of the same document differ")
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"unknown type", "type: pie\n", errors.ErrCodeInvalidChartType},
		{"empty dataset", "type: xy-scatter\ndatasets: [{name: a}]\n", errors.ErrCodeEmptyDataset},
		{"mismatched", "type: bar\ncategories: [a]\ndatasets: [{values: [1, 2]}]\n", errors.ErrCodeInvalidDatasets},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), Options{Document: []byte(tt.doc)})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{Document: []byte(barDoc)})
	if err == nil {
		t.Error("Execute() with cancelled context succeeded")
	}
}

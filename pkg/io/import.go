package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Format is a chart document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name, case-insensitively. "yml" is YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q (want yaml, toml or json)", s)
}

// DetectFormat picks a format from the file extension of path, falling back
// to sniffing data: a leading '{' means JSON, a leading '[' table header or
// a top-level "key = value" line means TOML, anything else YAML.
func DetectFormat(path string, data []byte) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil && filepath.Ext(path) != "" {
		return f
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return FormatJSON
	}
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			return FormatTOML
		}
		if i := strings.Index(line, "="); i > 0 && !strings.Contains(line[:i], ":") {
			return FormatTOML
		}
		break
	}
	return FormatYAML
}

// Decoder returns a chart.Decoder that decodes data in format f.
func Decoder(data []byte, f Format) (chart.Decoder, error) {
	switch f {
	case FormatYAML:
		return func(v any) error { return yaml.Unmarshal(data, v) }, nil
	case FormatTOML:
		return func(v any) error { return toml.Unmarshal(data, v) }, nil
	case FormatJSON:
		return func(v any) error { return json.Unmarshal(data, v) }, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", f)
}

// ParseChart decodes a chart document.
//
// It fails with errors.ErrCodeInvalidFormat when the document is malformed
// and errors.ErrCodeInvalidChartType when its type is missing or unknown.
func ParseChart(data []byte, f Format) (*chart.Charts, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty chart document")
	}
	dec, err := Decoder(data, f)
	if err != nil {
		return nil, err
	}
	return chart.Decode(dec)
}

// ReadChart reads a whole chart document from r and decodes it.
// ReadChart does not close r.
func ReadChart(r io.Reader, f Format) (*chart.Charts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read chart")
	}
	return ParseChart(data, f)
}

// ImportChart reads the chart document at path. The format comes from the
// file extension or, failing that, from the content.
func ImportChart(path string) (*chart.Charts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	c, err := ParseChart(data, DetectFormat(path, data))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return c, nil
}

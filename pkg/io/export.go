package io

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Convert re-encodes a chart document from one format to another. Keys
// and values are preserved; comments and key order are not.
func Convert(data []byte, from, to Format) ([]byte, error) {
	dec, err := Decoder(data, from)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := dec(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", from)
	}
	var buf bytes.Buffer
	if err := WriteDocument(&buf, doc, to); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument encodes doc in format f and writes it to w.
func WriteDocument(w io.Writer, doc map[string]any, f Format) error {
	var err error
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode %s", f)
	}
	return nil
}

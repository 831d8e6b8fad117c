package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stepstone/generate"
)

// Problem file formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
	formatText = "text"
)

// formatOf picks a format from a file extension; anything that is not
// ".json" is read as YAML, which also accepts JSON documents.
func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return formatJSON
	}

	return formatYAML
}

// loadData reads a problem file. "-" reads stdin.
func loadData(path string, stdin io.Reader) (generate.Data, error) {
	var (
		d   generate.Data
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return d, err
	}

	switch formatOf(path) {
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&d)
	}
	if err != nil {
		return d, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// writeData encodes d in format.
func writeData(w io.Writer, d generate.Data, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(d)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

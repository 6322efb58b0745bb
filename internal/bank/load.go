package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the document major version this build understands.
const SupportedMajor = "v1"

// Format identifies the encoding of a question bank document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// document is the versioned wrapper form. The bare form is just the
// Sections mapping at the top level.
type document struct {
	Version  string                         `json:"version" yaml:"version"`
	Sections map[string]map[string][]string `json:"sections" yaml:"sections"`
}

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", configErrorf("unsupported file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads the question bank at path and validates it against cat.
// Every failure is returned as a *ConfigurationError.
func Load(path string, cat Catalog) (*Bank, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, withPath(err, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	b, err := Parse(data, format, cat)
	if err != nil {
		return nil, withPath(err, path)
	}
	return b, nil
}

// Parse decodes a question bank document in the given format. Both the
// versioned form ({"version": ..., "sections": {...}}) and the bare
// section → trait → questions mapping are accepted.
func Parse(data []byte, format Format, cat Catalog) (*Bank, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	version, err := checkVersion(doc.Version)
	if err != nil {
		return nil, err
	}
	b, err := New(cat, doc.Sections)
	if err != nil {
		return nil, err
	}
	b.version = version
	return b, nil
}

func decode(data []byte, format Format) (document, error) {
	var unmarshal func([]byte, any) error
	switch format {
	case FormatJSON:
		unmarshal = json.Unmarshal
	case FormatYAML:
		unmarshal = yaml.Unmarshal
	default:
		return document{}, configErrorf("unknown format %q", format)
	}

	var wrapped document
	if err := unmarshal(data, &wrapped); err == nil && wrapped.Sections != nil {
		return wrapped, nil
	}

	var bare map[string]map[string][]string
	if err := unmarshal(data, &bare); err != nil {
		return document{}, &ConfigurationError{Err: fmt.Errorf("parse %s: %w", format, err)}
	}
	if len(bare) == 0 {
		return document{}, configErrorf("document is empty")
	}
	return document{Sections: bare}, nil
}

// checkVersion accepts an empty version, or a semantic version (with or
// without the leading "v") whose major matches SupportedMajor.
func checkVersion(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return "", configErrorf("invalid version %q", v)
	}
	if semver.Major(canonical) != SupportedMajor {
		return "", configErrorf("unsupported version %s (this build reads %s.x)", v, SupportedMajor)
	}
	return semver.Canonical(canonical), nil
}

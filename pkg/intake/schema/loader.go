package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a schema, keyed by field id.
type Document struct {
	Name   string          `yaml:"name"`
	Fields []FieldDocument `yaml:"fields"`
}

type FieldDocument struct {
	Key       string   `yaml:"key"`
	Required  *bool    `yaml:"required"`
	Prompt    string   `yaml:"prompt"`
	Label     string   `yaml:"label"`
	Kind      Kind     `yaml:"kind"`
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	Precision int      `yaml:"precision"`
	// OneOf turns a custom field into a closed vocabulary check.
	OneOf []string `yaml:"one_of"`
}

// Parse decodes a YAML schema document.
func Parse(data []byte) (*Schema, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}

	fields := make([]Field, 0, len(doc.Fields))
	for _, fd := range doc.Fields {
		required := true
		if fd.Required != nil {
			required = *fd.Required
		}
		kind := fd.Kind
		if kind == "" {
			kind = KindText
		}

		f := Field{
			Key:       fd.Key,
			Required:  required,
			Prompt:    fd.Prompt,
			Label:     fd.Label,
			Kind:      kind,
			Min:       fd.Min,
			Max:       fd.Max,
			Precision: fd.Precision,
		}
		if kind == KindCustom && len(fd.OneOf) > 0 {
			f.Predicate = OneOf(fd.OneOf...)
		}
		fields = append(fields, f)
	}

	return New(doc.Name, fields...)
}

// Load reads a schema document from path. An empty path or a missing file
// yields the engineering watch log.
func Load(path string) (*Schema, error) {
	if path == "" {
		return EngineeringWatchLog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EngineeringWatchLog(), nil
		}
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Parse(data)
}

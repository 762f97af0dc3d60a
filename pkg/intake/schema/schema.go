package schema

import (
	"errors"
	"fmt"
)

var ErrInvalidSchema = errors.New("invalid schema")

// Schema is an ordered list of fields. Order is the default fill order.
type Schema struct {
	Name   string
	Fields []Field
}

// New builds a schema and checks it.
func New(name string, fields ...Field) (*Schema, error) {
	s := &Schema{Name: name, Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects schemas the engine cannot drive.
func (s *Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		if f.Key == "" {
			return fmt.Errorf("%w: field %d has no key", ErrInvalidSchema, i)
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidSchema, f.Key)
		}
		seen[f.Key] = struct{}{}

		if f.Prompt == "" {
			return fmt.Errorf("%w: field %q has no prompt", ErrInvalidSchema, f.Key)
		}

		switch f.Kind {
		case KindText, KindFreeText, KindNumber:
		case KindCustom:
			if f.Predicate == nil {
				return fmt.Errorf("%w: custom field %q has no predicate", ErrInvalidSchema, f.Key)
			}
		default:
			return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidSchema, f.Key, f.Kind)
		}

		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("%w: field %q has min above max", ErrInvalidSchema, f.Key)
		}
	}
	return nil
}

// Field looks a descriptor up by key.
func (s *Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the required fields in schema order.
func (s *Schema) Required() []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags how a field extracts and checks its value.
type Kind string

const (
	KindText     Kind = "text"      // non-empty string
	KindNumber   Kind = "number"    // first decimal number, optionally bounded
	KindFreeText Kind = "free_text" // any non-empty text is accepted
	KindCustom   Kind = "custom"    // trimmed text checked by Predicate
)

var numberPattern = regexp.MustCompile(`(\d+(\.\d+)?)`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Field describes one slot of the log.
//
// Parse never fails loudly: a false ok means the text carried nothing for
// this field, which is different from a value that fails Validate.
type Field struct {
	Key       string
	Required  bool
	Prompt    string
	Label     string
	Kind      Kind
	Min       *float64
	Max       *float64
	Precision int

	// Predicate is only consulted for KindCustom.
	Predicate func(value any) bool
	// Normalize overrides the kind's default normalization.
	Normalize func(value any) any
}

// Parse extracts a raw value from text.
func (f Field) Parse(text string) (any, bool) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil, false
	}

	switch f.Kind {
	case KindNumber:
		match := numberPattern.FindString(cleaned)
		if match == "" {
			return nil, false
		}
		v, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil, false
		}
		return v, true
	default:
		return cleaned, true
	}
}

// Validate reports whether a parsed value is acceptable.
func (f Field) Validate(value any) bool {
	switch f.Kind {
	case KindNumber:
		v, ok := value.(float64)
		if !ok || math.IsNaN(v) {
			return false
		}
		if f.Min != nil && v < *f.Min {
			return false
		}
		if f.Max != nil && v > *f.Max {
			return false
		}
		return true
	case KindText:
		s, ok := value.(string)
		return ok && len(strings.TrimSpace(s)) > 0
	case KindFreeText:
		_, ok := value.(string)
		return ok
	case KindCustom:
		if f.Predicate == nil {
			return false
		}
		return f.Predicate(value)
	default:
		return false
	}
}

// NormalizeValue converts a validated value into its stored form.
func (f Field) NormalizeValue(value any) any {
	if f.Normalize != nil {
		return f.Normalize(value)
	}

	switch v := value.(type) {
	case float64:
		if f.Precision <= 0 {
			return v
		}
		scale := math.Pow(10, float64(f.Precision))
		return math.Round(v*scale) / scale
	case string:
		return whitespacePattern.ReplaceAllString(strings.TrimSpace(v), " ")
	default:
		return value
	}
}

// DisplayLabel falls back to the key when no label is set.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// Bound is a helper for building Min/Max pointers.
func Bound(v float64) *float64 {
	return &v
}

// FormatValue renders a stored value for transcripts and summaries.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

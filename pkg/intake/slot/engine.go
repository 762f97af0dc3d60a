// Package slot implements the schema-driven slot-filling engine.
//
// An Engine owns the log for one session. Each call fills at most one field;
// a value that parses but fails validation parks the field as pending so the
// next utterance is read as a retry for it.
package slot

import (
	"strings"

	"greenwatch-be/pkg/intake/schema"
)

// Result is the outcome of one utterance.
type Result struct {
	// Clarification is the prompt to surface, empty when none is needed.
	Clarification string
	// Filled is the key stored by this call, empty when nothing advanced.
	Filled string
}

// NeedsClarification reports whether the caller must ask again.
func (r Result) NeedsClarification() bool {
	return r.Clarification != ""
}

type Engine struct {
	schema     *schema.Schema
	log        map[string]any
	pendingKey string
}

func NewEngine(s *schema.Schema) *Engine {
	return &Engine{
		schema: s,
		log:    make(map[string]any),
	}
}

func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// ApplyText interprets free text against the outstanding fields.
func (e *Engine) ApplyText(text string) Result {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		next, _ := e.NextQuestion()
		return Result{Clarification: next}
	}

	if e.pendingKey != "" {
		field, ok := e.schema.Field(e.pendingKey)
		e.pendingKey = ""
		if ok {
			filled, invalid := e.tryFill(field, cleaned)
			if invalid {
				e.pendingKey = field.Key
				return Result{Clarification: field.Prompt}
			}
			if filled {
				return Result{Filled: field.Key}
			}
		}
	}

	for _, field := range e.schema.Required() {
		if _, done := e.log[field.Key]; done {
			continue
		}
		filled, invalid := e.tryFill(field, cleaned)
		if invalid {
			e.pendingKey = field.Key
			return Result{Clarification: field.Prompt}
		}
		if filled {
			return Result{Filled: field.Key}
		}
	}

	// Nothing advanced: re-ask the outstanding question, if any.
	next, _ := e.NextQuestion()
	return Result{Clarification: next}
}

// ApplyTo fills one named field from text, ignoring the rest of the schema.
// A miss or an invalid value leaves the field pending. Unknown and already
// filled keys are a no-op.
func (e *Engine) ApplyTo(key, text string) Result {
	field, ok := e.schema.Field(key)
	if !ok {
		return Result{}
	}
	if _, done := e.log[key]; done {
		return Result{}
	}

	filled, _ := e.tryFill(field, strings.TrimSpace(text))
	if !filled {
		e.pendingKey = key
		return Result{Clarification: field.Prompt}
	}
	if e.pendingKey == key {
		e.pendingKey = ""
	}
	return Result{Filled: key}
}

// tryFill parses and validates text for field, storing the value on success.
// invalid is true only when a value was extracted but rejected.
func (e *Engine) tryFill(field schema.Field, text string) (filled, invalid bool) {
	raw, ok := field.Parse(text)
	if !ok {
		return false, false
	}
	if !field.Validate(raw) {
		return false, true
	}
	e.log[field.Key] = field.NormalizeValue(raw)
	return true, false
}

// IsComplete reports whether every required field is in the log.
func (e *Engine) IsComplete() bool {
	for _, f := range e.schema.Required() {
		if _, ok := e.log[f.Key]; !ok {
			return false
		}
	}
	return true
}

// Progress is the filled share of required fields, 1 when none are required.
func (e *Engine) Progress() float64 {
	required := e.schema.Required()
	if len(required) == 0 {
		return 1
	}
	filled := 0
	for _, f := range required {
		if _, ok := e.log[f.Key]; ok {
			filled++
		}
	}
	return float64(filled) / float64(len(required))
}

// NextQuestion returns the prompt of the first unfilled required field.
func (e *Engine) NextQuestion() (string, bool) {
	for _, f := range e.schema.Required() {
		if _, ok := e.log[f.Key]; !ok {
			return f.Prompt, true
		}
	}
	return "", false
}

// MissingFields lists unfilled required keys in schema order.
func (e *Engine) MissingFields() []string {
	var missing []string
	for _, f := range e.schema.Required() {
		if _, ok := e.log[f.Key]; !ok {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// Pending returns the key awaiting a retry, if any.
func (e *Engine) Pending() (string, bool) {
	return e.pendingKey, e.pendingKey != ""
}

// Log returns a copy of the filled values.
func (e *Engine) Log() map[string]any {
	out := make(map[string]any, len(e.log))
	for k, v := range e.log {
		out[k] = v
	}
	return out
}

// PreFill stores values without validation.
func (e *Engine) PreFill(values map[string]any) {
	for k, v := range values {
		e.log[k] = v
	}
	if _, ok := e.log[e.pendingKey]; ok {
		e.pendingKey = ""
	}
}

func (e *Engine) Reset() {
	e.log = make(map[string]any)
	e.pendingKey = ""
}

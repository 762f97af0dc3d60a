package sequence

import (
	"errors"
	"fmt"
	"os"

	"greenwatch-be/pkg/intake/schema"

	"gopkg.in/yaml.v3"
)

var ErrInvalidQuestions = errors.New("invalid question sequence")

type Category string

const (
	CategoryDocument   Category = "document"
	CategoryReflective Category = "reflective"
)

// DefaultReflectiveMinChars is the shortest accepted reflective answer.
const DefaultReflectiveMinChars = 100

// Question is one step of the guided flow. Field optionally binds the answer
// to a schema key so it is parsed and validated by the slot engine.
type Question struct {
	ID       string   `yaml:"id" json:"id"`
	Prompt   string   `yaml:"prompt" json:"prompt"`
	Category Category `yaml:"category" json:"category"`
	Field    string   `yaml:"field,omitempty" json:"field,omitempty"`
	Label    string   `yaml:"label,omitempty" json:"label,omitempty"`
}

func (q Question) DisplayLabel() string {
	if q.Label != "" {
		return q.Label
	}
	return q.ID
}

// DefaultQuestions is the engineering watch log followed by the well-being
// reflection.
func DefaultQuestions() []Question {
	return []Question{
		{ID: "vessel_name", Prompt: "What is the vessel name?", Category: CategoryDocument, Field: schema.KeyVesselName, Label: "Vessel"},
		{ID: "watch_period", Prompt: "Which watch period is this? (e.g., 08:00-12:00)", Category: CategoryDocument, Field: schema.KeyWatchPeriod, Label: "Watch Period"},
		{ID: "main_engine_rpm", Prompt: "What was the main engine RPM?", Category: CategoryDocument, Field: schema.KeyMainEngineRPM, Label: "Main Engine RPM"},
		{ID: "main_engine_load_percent", Prompt: "What was the engine load percentage?", Category: CategoryDocument, Field: schema.KeyMainEngineLoad, Label: "Engine Load (%)"},
		{ID: "alarms", Prompt: "Were there any alarms or faults? If none, say 'none'.", Category: CategoryDocument, Field: schema.KeyAlarmsFaults, Label: "Alarms/Faults"},
		{ID: "actions_taken", Prompt: "What actions were taken? If none, say 'none'.", Category: CategoryDocument, Field: schema.KeyCorrectiveActions, Label: "Actions Taken"},
		{ID: "wellbeing_goals", Prompt: "What are three aspects of your health and well-being you want to improve?", Category: CategoryReflective, Label: "Well-being Goals"},
		{ID: "manager_flexibility", Prompt: "I feel that my manager supports flexibility for my daily needs.", Category: CategoryReflective, Label: "Manager Flexibility"},
		{ID: "emotional_safety", Prompt: "My company allows me to express my feelings and emotions without fear of punishment.", Category: CategoryReflective, Label: "Emotional Safety"},
	}
}

// ValidateQuestions rejects empty or duplicate ids, empty prompts and
// unknown categories.
func ValidateQuestions(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidQuestions, i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidQuestions, q.ID)
		}
		seen[q.ID] = struct{}{}
		if q.Prompt == "" {
			return fmt.Errorf("%w: question %q has no prompt", ErrInvalidQuestions, q.ID)
		}
		switch q.Category {
		case CategoryDocument, CategoryReflective:
		default:
			return fmt.Errorf("%w: question %q has unknown category %q", ErrInvalidQuestions, q.ID, q.Category)
		}
	}
	return nil
}

// CheckBindings reports bound fields missing from s.
func CheckBindings(questions []Question, s *schema.Schema) error {
	for _, q := range questions {
		if q.Field == "" {
			continue
		}
		if _, ok := s.Field(q.Field); !ok {
			return fmt.Errorf("%w: question %q binds unknown field %q", ErrInvalidQuestions, q.ID, q.Field)
		}
	}
	return nil
}

type questionDocument struct {
	Questions []Question `yaml:"questions"`
}

func ParseQuestions(data []byte) ([]Question, error) {
	var doc questionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuestions, err)
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidQuestions)
	}
	if err := ValidateQuestions(doc.Questions); err != nil {
		return nil, err
	}
	return doc.Questions, nil
}

// LoadQuestions reads a question document. An empty path or a missing file
// yields DefaultQuestions.
func LoadQuestions(path string) ([]Question, error) {
	if path == "" {
		return DefaultQuestions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultQuestions(), nil
		}
		return nil, fmt.Errorf("read questions %s: %w", path, err)
	}
	return ParseQuestions(data)
}

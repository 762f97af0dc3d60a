package sequence

import "greenwatch-be/pkg/intake"

// Snapshot is the serialisable state of a Sequencer. The question list and
// options are configuration and are not part of it.
type Snapshot struct {
	Label     string            `json:"label"`
	Index     int               `json:"index"`
	Answers   map[string]string `json:"answers"`
	TurnCount int               `json:"turn_count"`
	Messages  []intake.Message  `json:"messages"`
	Announced []Category        `json:"announced,omitempty"`
	Summary   string            `json:"summary,omitempty"`
	Done      bool              `json:"done"`
	Completed bool              `json:"completed"`
}

func (s *Sequencer) Snapshot() Snapshot {
	announced := make([]Category, 0, len(s.announced))
	for _, q := range s.questions {
		if s.announced[q.Category] && !containsCategory(announced, q.Category) {
			announced = append(announced, q.Category)
		}
	}
	return Snapshot{
		Label:     s.label,
		Index:     s.index,
		Answers:   s.Answers(),
		TurnCount: s.turnCount,
		Messages:  s.Messages(),
		Announced: announced,
		Summary:   s.summary,
		Done:      s.done,
		Completed: s.completed,
	}
}

// Restore replaces the state with snap, clamping the cursor to the
// question list.
func (s *Sequencer) Restore(snap Snapshot) {
	s.label = snap.Label
	s.index = snap.Index
	if s.index < 0 {
		s.index = 0
	}
	if s.index > len(s.questions) {
		s.index = len(s.questions)
	}
	s.answers = make(map[string]string, len(snap.Answers))
	for k, v := range snap.Answers {
		s.answers[k] = v
	}
	s.turnCount = snap.TurnCount
	s.messages = append([]intake.Message(nil), snap.Messages...)
	s.announced = make(map[Category]bool, len(snap.Announced))
	for _, c := range snap.Announced {
		s.announced[c] = true
	}
	s.summary = snap.Summary
	s.done = snap.Done || (len(s.questions) > 0 && s.index == len(s.questions))
	s.completed = snap.Completed
}

func containsCategory(list []Category, c Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

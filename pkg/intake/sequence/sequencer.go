// Package sequence drives the guided question flow of a logging session.
//
// A Sequencer walks a fixed ordered list of questions, gates answers by
// category minimum length, announces each category change once and emits a
// closing summary when the list is exhausted.
package sequence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/intake/slot"
)

const (
	DefaultTitle         = "Engineering Watch Log"
	ReflectionTransition = "Thank you for those operational details. Now, I'd like to shift focus to your personal well-being and professional environment."
	ClosingStatement     = "This concludes the reflection section. Your responses have been recorded as part of today's log."
	AlreadyCompleteNote  = "This log is already complete. Your responses have been recorded."
)

// Outcome is the result of one submitted answer.
type Outcome struct {
	Messages []intake.Message
	Done     bool
}

// Completion is handed to the completion callback once the flow ends.
type Completion struct {
	Label    string
	Answers  map[string]string
	Messages []intake.Message
	Summary  string
}

type Option func(*Sequencer)

// WithMinChars sets the minimum trimmed length for answers in category.
func WithMinChars(category Category, n int) Option {
	return func(s *Sequencer) {
		s.minChars[category] = n
	}
}

// WithEngine routes answers of bound questions through engine.
func WithEngine(engine *slot.Engine) Option {
	return func(s *Sequencer) {
		s.engine = engine
	}
}

func WithCompletion(fn func(Completion)) Option {
	return func(s *Sequencer) {
		s.onComplete = fn
	}
}

func WithTitle(title string) Option {
	return func(s *Sequencer) {
		s.title = title
	}
}

// WithTransition sets the message announced when the flow first enters
// category. An empty text disables the announcement.
func WithTransition(category Category, text string) Option {
	return func(s *Sequencer) {
		s.transitions[category] = text
	}
}

type Sequencer struct {
	questions   []Question
	minChars    map[Category]int
	transitions map[Category]string
	title       string
	engine      *slot.Engine
	onComplete  func(Completion)

	label     string
	index     int
	answers   map[string]string
	turnCount int
	messages  []intake.Message
	announced map[Category]bool
	summary   string
	done      bool
	completed bool
}

func New(questions []Question, opts ...Option) *Sequencer {
	s := &Sequencer{
		questions: questions,
		minChars: map[Category]int{
			CategoryReflective: DefaultReflectiveMinChars,
		},
		transitions: map[Category]string{
			CategoryReflective: ReflectionTransition,
		},
		title:     DefaultTitle,
		answers:   make(map[string]string),
		announced: make(map[Category]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start resets the flow and greets the user with the first prompt.
func (s *Sequencer) Start(contextLabel string) []intake.Message {
	s.label = contextLabel
	s.index = 0
	s.answers = make(map[string]string)
	s.turnCount = 0
	s.messages = nil
	s.announced = make(map[Category]bool)
	s.summary = ""
	s.done = false
	s.completed = false

	out := []intake.Message{
		intake.AssistantMessage(fmt.Sprintf("Beginning %s for %q.", s.title, contextLabel)),
	}
	if len(s.questions) == 0 {
		s.messages = append(s.messages, out...)
		return append(out, s.finish()...)
	}

	first := s.questions[0]
	s.announced[first.Category] = true
	out = append(out, intake.AssistantMessage(first.Prompt))
	s.messages = append(s.messages, out...)
	return out
}

// SubmitAnswer records text as the answer to the current question.
func (s *Sequencer) SubmitAnswer(text string) Outcome {
	if s.done || s.index >= len(s.questions) {
		return Outcome{
			Messages: []intake.Message{intake.AssistantMessage(AlreadyCompleteNote)},
			Done:     true,
		}
	}

	current := s.questions[s.index]
	answer := strings.TrimSpace(text)
	if answer == "" {
		return Outcome{Messages: []intake.Message{intake.AssistantMessage(current.Prompt)}}
	}

	s.turnCount++
	out := []intake.Message{intake.UserMessage(answer)}

	if minLen := s.minChars[current.Category]; minLen > 0 {
		if n := utf8.RuneCountInString(answer); n < minLen {
			out = append(out, intake.AssistantMessage(fmt.Sprintf(
				"That answer is a bit brief (%d/%d chars). Could you share a little more detail?", n, minLen)))
			return s.emit(out)
		}
	}

	if current.Field != "" && s.engine != nil {
		res := s.engine.ApplyTo(current.Field, answer)
		if res.NeedsClarification() {
			out = append(out, intake.AssistantMessage(res.Clarification))
			return s.emit(out)
		}
		if v, ok := s.engine.Log()[current.Field]; ok && res.Filled != "" {
			answer = formatAnswer(v)
		}
	}

	s.answers[current.ID] = answer
	s.index++

	if s.index == len(s.questions) {
		s.messages = append(s.messages, out...)
		out = append(out, s.finish()...)
		return Outcome{Messages: out, Done: true}
	}

	next := s.questions[s.index]
	if next.Category != current.Category && !s.announced[next.Category] {
		s.announced[next.Category] = true
		if msg := s.transitions[next.Category]; msg != "" {
			out = append(out, intake.AssistantMessage(msg))
		}
	}
	out = append(out, intake.AssistantMessage(next.Prompt))
	return s.emit(out)
}

func (s *Sequencer) emit(out []intake.Message) Outcome {
	s.messages = append(s.messages, out...)
	return Outcome{Messages: out}
}

// finish appends the closing statement and summary and fires the
// completion callback. The callback runs at most once per Start.
func (s *Sequencer) finish() []intake.Message {
	s.summary = BuildSummary(s.title, s.questions, s.answers)
	out := []intake.Message{
		intake.AssistantMessage(ClosingStatement),
		intake.AssistantMessage(s.summary),
	}
	s.messages = append(s.messages, out...)
	s.done = true

	if !s.completed && s.onComplete != nil {
		s.completed = true
		s.onComplete(Completion{
			Label:    s.label,
			Answers:  s.Answers(),
			Messages: s.Messages(),
			Summary:  s.summary,
		})
	}
	return out
}

// Current returns the question awaiting an answer.
func (s *Sequencer) Current() (Question, bool) {
	if s.done || s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

func (s *Sequencer) Progress() float64 {
	if len(s.questions) == 0 {
		return 1
	}
	return float64(s.index) / float64(len(s.questions))
}

func (s *Sequencer) Done() bool {
	return s.done
}

func (s *Sequencer) Label() string {
	return s.label
}

func (s *Sequencer) Summary() string {
	return s.summary
}

func (s *Sequencer) TurnCount() int {
	return s.turnCount
}

func (s *Sequencer) Questions() []Question {
	return append([]Question(nil), s.questions...)
}

func (s *Sequencer) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

func (s *Sequencer) Messages() []intake.Message {
	return append([]intake.Message(nil), s.messages...)
}

package sequence

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/intake/schema"
	"greenwatch-be/pkg/intake/slot"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var longAnswer = strings.Repeat("I would like to sleep better on night watches. ", 3)

func texts(msgs []intake.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

func newDefault(t *testing.T, opts ...Option) (*Sequencer, *slot.Engine) {
	t.Helper()
	engine := slot.NewEngine(schema.EngineeringWatchLog())
	opts = append([]Option{WithEngine(engine)}, opts...)
	return New(DefaultQuestions(), opts...), engine
}

func TestStartGreetsWithFirstPrompt(t *testing.T) {
	s, _ := newDefault(t)

	got := texts(s.Start("Watch 12 Oct"))
	want := []string{
		`Beginning Engineering Watch Log for "Watch 12 Oct".`,
		"What is the vessel name?",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Start() mismatch (-want +got):\n%s", diff)
	}
	if s.Progress() != 0 {
		t.Errorf("Progress() = %v, want 0", s.Progress())
	}
}

func TestFullFlowCompletesOnce(t *testing.T) {
	var completions []Completion
	s, engine := newDefault(t, WithCompletion(func(c Completion) {
		completions = append(completions, c)
	}))
	s.Start("Watch 12 Oct")

	script := []string{"MV Horizon", "08:00-12:00", "RPM 1200", "65%", "none", "none", longAnswer, longAnswer, longAnswer}
	transitions := 0
	var last Outcome
	for i, answer := range script {
		prev := s.Progress()
		last = s.SubmitAnswer(answer)
		if s.Progress() <= prev {
			t.Fatalf("answer %d did not advance: progress %v -> %v", i, prev, s.Progress())
		}
		for _, m := range last.Messages {
			if m.Text == ReflectionTransition {
				transitions++
			}
		}
		if last.Done != (i == len(script)-1) {
			t.Fatalf("answer %d Done = %v", i, last.Done)
		}
	}

	if transitions != 1 {
		t.Errorf("transition announced %d times, want 1", transitions)
	}
	if len(completions) != 1 {
		t.Fatalf("completion fired %d times, want 1", len(completions))
	}

	gotTail := texts(last.Messages)
	if len(gotTail) != 3 || gotTail[1] != ClosingStatement || gotTail[2] != s.Summary() {
		t.Errorf("final messages = %q", gotTail)
	}

	c := completions[0]
	if c.Label != "Watch 12 Oct" {
		t.Errorf("Label = %q", c.Label)
	}
	wantAnswers := map[string]string{
		"vessel_name":              "MV Horizon",
		"watch_period":             "08:00-12:00",
		"main_engine_rpm":          "1200",
		"main_engine_load_percent": "65",
		"alarms":                   "none",
		"actions_taken":            "none",
		"wellbeing_goals":          strings.TrimSpace(longAnswer),
		"manager_flexibility":      strings.TrimSpace(longAnswer),
		"emotional_safety":         strings.TrimSpace(longAnswer),
	}
	if diff := cmp.Diff(wantAnswers, c.Answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Messages(), c.Messages); diff != "" {
		t.Errorf("completion history differs from transcript:\n%s", diff)
	}
	for _, q := range DefaultQuestions() {
		if !strings.Contains(c.Summary, "`"+q.ID+"`") {
			t.Errorf("summary missing %s", q.ID)
		}
	}

	if got := engine.Log()[schema.KeyMainEngineRPM]; got != 1200.0 {
		t.Errorf("engine rpm = %v", got)
	}

	after := s.SubmitAnswer("one more thing")
	if !after.Done || len(after.Messages) != 1 || after.Messages[0].Text != AlreadyCompleteNote {
		t.Errorf("post-completion outcome = %+v", after)
	}
	if len(completions) != 1 {
		t.Error("completion fired again after done")
	}
	if s.Progress() != 1 {
		t.Errorf("Progress() = %v, want 1", s.Progress())
	}
}

func TestReflectiveMinimumLength(t *testing.T) {
	s := New([]Question{
		{ID: "r1", Prompt: "How are you?", Category: CategoryReflective},
	})
	s.Start("log")

	short := strings.Repeat("a", 40)
	out := s.SubmitAnswer(short)

	want := []string{short, "That answer is a bit brief (40/100 chars). Could you share a little more detail?"}
	if diff := cmp.Diff(want, texts(out.Messages)); diff != "" {
		t.Errorf("gate mismatch (-want +got):\n%s", diff)
	}
	if out.Done || s.Progress() != 0 {
		t.Errorf("gated answer advanced: done=%v progress=%v", out.Done, s.Progress())
	}
	if _, ok := s.Answers()["r1"]; ok {
		t.Error("gated answer must not be recorded")
	}

	// The gate applies again on every short retry.
	out = s.SubmitAnswer(strings.Repeat("b", 99))
	if !strings.Contains(out.Messages[1].Text, "(99/100 chars)") {
		t.Errorf("second gate = %q", out.Messages[1].Text)
	}

	out = s.SubmitAnswer(strings.Repeat("c", 100))
	if !out.Done {
		t.Error("100 character answer should complete the flow")
	}
}

func TestMinCharsOption(t *testing.T) {
	s := New([]Question{
		{ID: "r1", Prompt: "How are you?", Category: CategoryReflective},
	}, WithMinChars(CategoryReflective, 30))
	s.Start("log")

	if out := s.SubmitAnswer(strings.Repeat("x", 30)); !out.Done {
		t.Errorf("30 chars should pass a 30 char minimum, got %q", texts(out.Messages))
	}
}

func TestBoundQuestionClarifiesInvalidValue(t *testing.T) {
	s, engine := newDefault(t)
	s.Start("log")
	s.SubmitAnswer("MV Horizon")
	s.SubmitAnswer("08:00-12:00")

	out := s.SubmitAnswer("RPM was 5000")
	want := []string{"RPM was 5000", "What was the main engine RPM?"}
	if diff := cmp.Diff(want, texts(out.Messages)); diff != "" {
		t.Errorf("clarification mismatch (-want +got):\n%s", diff)
	}
	if q, _ := s.Current(); q.ID != "main_engine_rpm" {
		t.Errorf("Current() = %q, want main_engine_rpm", q.ID)
	}
	if key, _ := engine.Pending(); key != schema.KeyMainEngineRPM {
		t.Errorf("engine pending = %q", key)
	}

	out = s.SubmitAnswer("1500")
	if got := texts(out.Messages); got[len(got)-1] != "What was the engine load percentage?" {
		t.Errorf("next prompt = %q", got[len(got)-1])
	}
	if s.Answers()["main_engine_rpm"] != "1500" {
		t.Errorf("answers = %v", s.Answers())
	}
}

func TestTransitionAnnouncedOncePerCategory(t *testing.T) {
	questions := []Question{
		{ID: "d1", Prompt: "D1?", Category: CategoryDocument},
		{ID: "r1", Prompt: "R1?", Category: CategoryReflective},
		{ID: "d2", Prompt: "D2?", Category: CategoryDocument},
		{ID: "r2", Prompt: "R2?", Category: CategoryReflective},
	}
	s := New(questions, WithMinChars(CategoryReflective, 0), WithTransition(CategoryDocument, "Back to operations."))
	s.Start("log")

	var all []string
	for _, a := range []string{"a", "b", "c", "d"} {
		all = append(all, texts(s.SubmitAnswer(a).Messages)...)
	}

	count := func(text string) int {
		n := 0
		for _, m := range all {
			if m == text {
				n++
			}
		}
		return n
	}
	if n := count(ReflectionTransition); n != 1 {
		t.Errorf("reflective transition count = %d, want 1", n)
	}
	// The flow started in document, so re-entering it is not announced.
	if n := count("Back to operations."); n != 0 {
		t.Errorf("document transition count = %d, want 0", n)
	}
}

func TestEmptyAnswerRepeatsPrompt(t *testing.T) {
	s, _ := newDefault(t)
	s.Start("log")
	before := len(s.Messages())

	out := s.SubmitAnswer("   ")
	if diff := cmp.Diff([]string{"What is the vessel name?"}, texts(out.Messages)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(s.Messages()) != before || s.TurnCount() != 0 {
		t.Error("empty answer must not change state")
	}
}

func TestEmptyQuestionListCompletesOnStart(t *testing.T) {
	fired := 0
	s := New(nil, WithCompletion(func(Completion) { fired++ }))

	msgs := s.Start("log")
	if len(msgs) != 3 || !s.Done() || fired != 1 {
		t.Errorf("Start() = %q, done=%v fired=%d", texts(msgs), s.Done(), fired)
	}
	if s.Progress() != 1 {
		t.Errorf("Progress() = %v", s.Progress())
	}
}

func TestBuildSummaryPlaceholders(t *testing.T) {
	questions := []Question{
		{ID: "vessel_name", Prompt: "?", Category: CategoryDocument, Label: "Vessel"},
		{ID: "alarms", Prompt: "?", Category: CategoryDocument},
		{ID: "wellbeing_goals", Prompt: "?", Category: CategoryReflective, Label: "Well-being Goals"},
	}
	got := BuildSummary("Engineering Watch Log", questions, map[string]string{
		"vessel_name": "MV Horizon",
		"alarms":      "  ",
	})

	want := strings.Join([]string{
		"### Engineering Watch Log Summary",
		"",
		"#### Operations",
		"",
		"- **Vessel** (`vessel_name`): MV Horizon",
		"- **alarms** (`alarms`): N/A",
		"",
		"#### Well-being",
		"",
		"- **Well-being Goals** (`wellbeing_goals`): N/A",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s, engine := newDefault(t)
	s.Start("log")
	s.SubmitAnswer("MV Horizon")
	s.SubmitAnswer("08:00-12:00")

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}

	restored := New(DefaultQuestions(), WithEngine(engine))
	restored.Restore(snap)

	if diff := cmp.Diff(s.Answers(), restored.Answers()); diff != "" {
		t.Errorf("answers mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(s.Messages(), restored.Messages(), cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("messages mismatch:\n%s", diff)
	}
	if q, _ := restored.Current(); q.ID != "main_engine_rpm" {
		t.Errorf("Current() = %q", q.ID)
	}
}

func TestRestoreClampsIndex(t *testing.T) {
	s := New(DefaultQuestions())
	s.Restore(Snapshot{Index: 42})
	if !s.Done() || s.Progress() != 1 {
		t.Errorf("done=%v progress=%v", s.Done(), s.Progress())
	}

	s.Restore(Snapshot{Index: -3})
	if s.Progress() != 0 || s.Done() {
		t.Errorf("done=%v progress=%v", s.Done(), s.Progress())
	}
}

func TestParseQuestions(t *testing.T) {
	doc := []byte(`
questions:
  - id: vessel
    prompt: Vessel?
    category: document
    field: vesselName
  - id: mood
    prompt: How do you feel?
    category: reflective
`)
	qs, err := ParseQuestions(doc)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	want := []Question{
		{ID: "vessel", Prompt: "Vessel?", Category: CategoryDocument, Field: "vesselName"},
		{ID: "mood", Prompt: "How do you feel?", Category: CategoryReflective},
	}
	if diff := cmp.Diff(want, qs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := CheckBindings(qs, schema.EngineeringWatchLog()); err != nil {
		t.Errorf("CheckBindings: %v", err)
	}
}

func TestQuestionValidation(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
	}{
		{"missing id", []Question{{Prompt: "?", Category: CategoryDocument}}},
		{"duplicate id", []Question{{ID: "a", Prompt: "?", Category: CategoryDocument}, {ID: "a", Prompt: "?", Category: CategoryDocument}}},
		{"missing prompt", []Question{{ID: "a", Category: CategoryDocument}}},
		{"unknown category", []Question{{ID: "a", Prompt: "?", Category: "emotional"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateQuestions(tt.questions); !errors.Is(err, ErrInvalidQuestions) {
				t.Errorf("err = %v, want ErrInvalidQuestions", err)
			}
		})
	}

	if err := CheckBindings([]Question{{ID: "a", Field: "ghost"}}, schema.EngineeringWatchLog()); !errors.Is(err, ErrInvalidQuestions) {
		t.Errorf("CheckBindings err = %v", err)
	}
	if err := ValidateQuestions(DefaultQuestions()); err != nil {
		t.Errorf("default questions invalid: %v", err)
	}
}

func TestLoadQuestionsDefault(t *testing.T) {
	qs, err := LoadQuestions("")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 9 {
		t.Errorf("len = %d, want 9", len(qs))
	}
	for i, q := range qs {
		wantCat := CategoryDocument
		if i >= 6 {
			wantCat = CategoryReflective
		}
		if q.Category != wantCat {
			t.Errorf("question %d category = %s", i, q.Category)
		}
	}
}

package llmrunner

import (
	"context"
	"errors"
	"testing"

	"greenwatch-be/pkg/llm"
	"greenwatch-be/pkg/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls   [][]llm.Message
	options []llm.Options
	reply   string
	err     error
}

func (f *fakeProvider) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls = append(f.calls, append([]llm.Message(nil), history...))
	var o llm.Options
	for _, opt := range opts {
		opt(&o)
	}
	f.options = append(f.options, o)
	return f.reply, f.err
}

type healthyProvider struct {
	fakeProvider
	status llm.ModelStatus
	err    error
}

func (h *healthyProvider) Health(context.Context) (llm.ModelStatus, error) {
	return h.status, h.err
}

func TestSendMessageKeepsHistory(t *testing.T) {
	ctx := context.Background()
	p := &fakeProvider{reply: "That sounds like a long watch."}
	r := New(p, 0, WithSystemPrompt("sys"), WithMaxHistory(1))

	s, err := r.StartSession(ctx)
	require.NoError(t, err)

	reply, err := r.SendMessage(ctx, s.SessionID, "first")
	require.NoError(t, err)
	assert.Equal(t, 1, reply.TurnIndex)
	assert.Equal(t, "That sounds like a long watch.", reply.AssistantText)

	_, err = r.SendMessage(ctx, s.SessionID, "second")
	require.NoError(t, err)
	_, err = r.SendMessage(ctx, s.SessionID, "third")
	require.NoError(t, err)

	last := p.calls[len(p.calls)-1]
	// system + one remembered exchange + the new turn
	require.Len(t, last, 4)
	assert.Equal(t, "sys", last[0].Content)
	assert.Equal(t, "second", last[1].Content)
	assert.Equal(t, "third", last[3].Content)
}

func TestSendMessageFailureDoesNotGrowHistory(t *testing.T) {
	ctx := context.Background()
	p := &fakeProvider{err: errors.New("connection refused")}
	r := New(p, 0, WithSystemPrompt(""))

	s, _ := r.StartSession(ctx)
	_, err := r.SendMessage(ctx, s.SessionID, "hello")
	require.Error(t, err)

	p.err = nil
	p.reply = "ok"
	_, err = r.SendMessage(ctx, s.SessionID, "hello again")
	require.NoError(t, err)
	assert.Len(t, p.calls[len(p.calls)-1], 1)
}

func TestSendMessageUnknownSession(t *testing.T) {
	r := New(&fakeProvider{}, 0)
	_, err := r.SendMessage(context.Background(), "ghost", "hi")
	assert.True(t, errors.Is(err, runner.ErrUnknownSession))
}

func TestHealth(t *testing.T) {
	ctx := context.Background()

	h, err := New(&fakeProvider{}, 0).Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.OK)

	hp := &healthyProvider{status: llm.ModelStatus{Model: "llama3", Loaded: true}}
	h, err = New(hp, 0).Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, &runner.Health{OK: true, LLMLoaded: true, LLMModel: "llama3"}, h)

	hp.err = errors.New("down")
	hp.status.Loaded = false
	h, err = New(hp, 0).Health(ctx)
	assert.ErrorIs(t, err, hp.err)
	assert.Nil(t, h)
}

func TestReplyOptions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts []Option
		want llm.Options
	}{
		{name: "defaults", want: llm.Options{MaxTokens: defaultReplyTokens, Temperature: defaultTemperature}},
		{name: "configured", opts: []Option{WithReplyTokens(80), WithTemperature(0.1)}, want: llm.Options{MaxTokens: 80, Temperature: 0.1}},
		{name: "non-positive tokens ignored", opts: []Option{WithReplyTokens(0)}, want: llm.Options{MaxTokens: defaultReplyTokens, Temperature: defaultTemperature}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{reply: "ok"}
			r := New(p, 0, tt.opts...)
			s, err := r.StartSession(ctx)
			require.NoError(t, err)

			_, err = r.SendMessage(ctx, s.SessionID, "hello")
			require.NoError(t, err)
			require.Len(t, p.options, 1)
			assert.Equal(t, tt.want, p.options[0])
		})
	}
}

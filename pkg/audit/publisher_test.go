package audit

import (
	"context"
	"errors"
	"testing"

	"greenwatch-be/internal/pkg/logger"
	"greenwatch-be/pkg/events"
	"greenwatch-be/pkg/intake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	events []events.Event
	err    error
}

func (b *recordingBus) Publish(_ context.Context, evt events.Event) error {
	b.events = append(b.events, evt)
	return b.err
}

func TestNatsPublisher(t *testing.T) {
	ctx := context.Background()
	bus := &recordingBus{}
	p := newPublisher(bus, logger.NewNopLogger())

	p.PublishSessionStarted(ctx, "s-1", "owner", "logging", "watch.pdf")
	p.PublishMessageRecorded(ctx, "s-1", intake.UserMessage("MV Aurora"))
	p.PublishTurnCompleted(ctx, "s-1", Turn{Mode: "logging", Phase: "questions", Progress: 0.5})
	p.PublishLogCompleted(ctx, "s-1", "watch.pdf", map[string]string{"vessel_name": "MV Aurora"})
	p.PublishRunnerFailed(ctx, "s-1", "send-message", errors.New("timeout"))

	require.Len(t, bus.events, 5)
	want := []string{events.SessionStarted, events.MessageRecorded, events.TurnCompleted, events.LogCompleted, events.RunnerFailed}
	for i, evt := range bus.events {
		assert.Equal(t, want[i], evt.EventType())
		assert.Equal(t, "s-1", evt.Payload()["session_id"])
	}
	assert.Equal(t, "MV Aurora", bus.events[1].Payload()["text"])
	assert.Equal(t, "timeout", bus.events[4].Payload()["error"])
}

func TestNatsPublisherWithoutBus(t *testing.T) {
	p := NewNatsPublisher(nil, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishRunnerFailed(context.Background(), "s-1", "health", errors.New("down"))
	})
}

func TestNatsPublisherSwallowsErrors(t *testing.T) {
	bus := &recordingBus{err: errors.New("no responders")}
	p := newPublisher(bus, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishTurnCompleted(context.Background(), "s-1", Turn{})
	})
	assert.Len(t, bus.events, 1)
}

package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitTracerDisabledIsNoop(t *testing.T) {
	shutdown := InitTracer(Config{Enabled: false})
	assert.NoError(t, shutdown(context.Background()))
}

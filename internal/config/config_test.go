package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("RUNNER_PROVIDER", "native")
	t.Setenv("RUNNER_TIMEOUT", "5s")
	t.Setenv("INTAKE_REFLECTIVE_MIN_CHARS", "40")
	t.Setenv("DB_VERBOSE", "true")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv("LLM_REPLY_TOKENS", "120")

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"runner provider", cfg.Runner.Provider, "native"},
		{"runner timeout", cfg.Runner.Timeout, 5 * time.Second},
		{"min chars", cfg.Intake.ReflectiveMinChars, 40},
		{"db verbose", cfg.Database.Verbose, true},
		{"bad duration falls back", cfg.Intake.SessionTTL, time.Hour},
		{"lock lease default", cfg.Intake.LockLease, 45 * time.Second},
		{"completion topic", cfg.Intake.CompletionTopic, "INTAKE_LOG_COMPLETED"},
		{"sample ratio", cfg.Tracing.SampleRatio, 0.25},
		{"reply tokens", cfg.Ai.ReplyTokens, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

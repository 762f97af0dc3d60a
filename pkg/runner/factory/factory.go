package factory

import (
	"fmt"
	"time"

	llmfactory "greenwatch-be/pkg/llm/factory"
	"greenwatch-be/pkg/runner"
	"greenwatch-be/pkg/runner/echo"
	"greenwatch-be/pkg/runner/llmrunner"
	"greenwatch-be/pkg/runner/native"
)

type Config struct {
	Provider string // "native", "ollama", "huggingface" or "echo"
	BaseURL  string
	Timeout  time.Duration
	// SessionTTL bounds in-memory history for model-backed runners.
	SessionTTL time.Duration
	// ReplyTokens caps model replies, zero keeps the runner default.
	ReplyTokens int
	LLM         llmfactory.Config
}

func NewRunner(cfg Config) (runner.Runner, error) {
	switch cfg.Provider {
	case "native":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("native runner requires a base URL")
		}
		return native.NewClient(cfg.BaseURL, cfg.Timeout), nil
	case "ollama", "huggingface":
		llmCfg := cfg.LLM
		llmCfg.Provider = cfg.Provider
		if llmCfg.BaseURL == "" {
			llmCfg.BaseURL = cfg.BaseURL
		}
		provider, err := llmfactory.NewLLMProvider(llmCfg)
		if err != nil {
			return nil, err
		}
		return llmrunner.New(provider, cfg.SessionTTL, llmrunner.WithReplyTokens(cfg.ReplyTokens)), nil
	case "echo", "":
		return echo.New(), nil
	default:
		return nil, fmt.Errorf("unsupported runner provider: %s", cfg.Provider)
	}
}

package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"greenwatch-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatAndHealth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		require.NotNil(t, req.Options)
		assert.Equal(t, 64, req.Options.NumPredict)
		assert.Equal(t, 0.2, req.Options.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "assistant", req.Messages[0].Role)
		json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3",
			"message": map[string]string{"role": "assistant", "content": "Noted."},
			"done":    true,
		})
	})
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]string{{"name": "llama3:latest"}},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	ctx := context.Background()

	out, err := p.Chat(ctx, []llm.Message{
		{Role: "model", Content: "Hello"},
		{Role: "user", Content: "Long night."},
	}, llm.WithMaxTokens(64), llm.WithTemperature(0.2))
	require.NoError(t, err)
	assert.Equal(t, "Noted.", out)

	status, err := p.Health(ctx)
	require.NoError(t, err)
	assert.True(t, status.Loaded)

	p.ModelName = "mistral"
	status, err = p.Health(ctx)
	require.NoError(t, err)
	assert.False(t, status.Loaded)
}

func TestChatErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

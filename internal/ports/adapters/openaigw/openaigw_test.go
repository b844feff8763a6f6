package openaigw

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqclip/sqclip/internal/types"
)

func TestComplete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "Transcript:")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": "Clip Start time: 00:10.500\nClip End time: 00:59.200",
					},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer srv.Close()

	a := New("test-key", "", srv.URL+"/v1", 0)
	got, err := a.Complete(context.Background(), "prompt with Transcript: inside")
	require.NoError(t, err)
	assert.Contains(t, got, "Clip Start time: 00:10.500")
}

func TestComplete_ProviderDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := New("test-key", "", srv.URL+"/v1", 0)
	_, err := a.Complete(context.Background(), "prompt")
	require.ErrorIs(t, err, types.ErrCompletionUnavailable)
}

func TestComplete_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"choices": []any{},
		})
	}))
	defer srv.Close()

	a := New("test-key", "", srv.URL+"/v1", 0)
	_, err := a.Complete(context.Background(), "prompt")
	require.ErrorIs(t, err, types.ErrCompletionUnavailable)
}

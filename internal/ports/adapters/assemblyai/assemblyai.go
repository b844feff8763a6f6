package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sqclip/sqclip/internal/types"
)

const defaultBaseURL = "https://api.assemblyai.com"

// Adapter drives transcription jobs against the AssemblyAI v2 API.
type Adapter struct {
	key     string
	baseURL string
	client  *http.Client
	log     zerolog.Logger

	pollInterval time.Duration
	pollTimeout  time.Duration
}

// Option tweaks adapter policy; used by tests to shrink polling times.
type Option func(*Adapter)

func WithPolling(interval, timeout time.Duration) Option {
	return func(a *Adapter) {
		a.pollInterval = interval
		a.pollTimeout = timeout
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.client = c }
}

func New(apiKey, baseURL string, log zerolog.Logger, opts ...Option) *Adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	a := &Adapter{
		key:          apiKey,
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 2 * time.Minute},
		log:          log.With().Str("component", "assemblyai").Logger(),
		pollInterval: 5 * time.Second,
		pollTimeout:  30 * time.Minute,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

type transcriptStatus struct {
	ID       string          `json:"id"`
	Status   types.JobStatus `json:"status"`
	Error    string          `json:"error"`
	Chapters []types.Chapter `json:"chapters"`
}

// Submit enqueues a transcription job for the media at mediaURL with
// automatic chaptering, returning the opaque job id.
func (a *Adapter) Submit(ctx context.Context, mediaURL string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"audio_url":     mediaURL,
		"auto_chapters": true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal submit request: %w", err)
	}

	var st transcriptStatus
	if err := a.do(ctx, http.MethodPost, "/v2/transcript", body, &st); err != nil {
		return "", fmt.Errorf("submit transcription: %w", err)
	}
	if st.ID == "" {
		return "", errors.New("submit transcription: response carried no job id")
	}
	a.log.Info().Str("job", st.ID).Msg("transcription submitted")
	return st.ID, nil
}

// Await polls the job at a fixed interval until it reaches a terminal state
// or the overall timeout elapses. Every non-terminal status simply re-polls;
// exhausting the timeout is a typed error, never an unbounded wait.
func (a *Adapter) Await(ctx context.Context, jobID string) (types.TranscriptionResult, error) {
	deadline := time.Now().Add(a.pollTimeout)
	for {
		var st transcriptStatus
		if err := a.do(ctx, http.MethodGet, "/v2/transcript/"+jobID, nil, &st); err != nil {
			return types.TranscriptionResult{}, fmt.Errorf("poll transcription: %w", err)
		}

		switch st.Status {
		case types.StatusCompleted:
			a.log.Info().Str("job", jobID).Int("chapters", len(st.Chapters)).Msg("transcription completed")
			return types.TranscriptionResult{ID: st.ID, Chapters: st.Chapters}, nil
		case types.StatusError:
			return types.TranscriptionResult{}, fmt.Errorf("%w: %s", types.ErrTranscriptionFailed, st.Error)
		}

		if time.Now().After(deadline) {
			return types.TranscriptionResult{}, fmt.Errorf("%w: job %s still %s after %s",
				types.ErrTranscriptionTimedOut, jobID, st.Status, a.pollTimeout)
		}
		a.log.Debug().Str("job", jobID).Str("status", string(st.Status)).Msg("transcription pending")

		select {
		case <-ctx.Done():
			return types.TranscriptionResult{}, ctx.Err()
		case <-time.After(a.pollInterval):
		}
	}
}

// CaptionTrack fetches the caption track of a completed job as text.
func (a *Adapter) CaptionTrack(ctx context.Context, jobID string) (string, error) {
	req, err := a.newRequest(ctx, http.MethodGet, "/v2/transcript/"+jobID+"/vtt", nil)
	if err != nil {
		return "", err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch caption track: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch caption track: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch caption track: %w", err)
	}
	return string(b), nil
}

func (a *Adapter) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", a.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (a *Adapter) do(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := a.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(rb), 400))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

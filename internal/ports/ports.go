package ports

import (
	"context"
	"time"

	"github.com/sqclip/sqclip/internal/types"
)

// ObjectStore is the durable object store consumed at its documented
// contract: put, existence check, and time-limited retrieval URLs.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body []byte) error
	Exists(ctx context.Context, bucket, key string) bool
	SignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// Transcriber is the asynchronous transcription job queue. Submit enqueues a
// job for the media at mediaURL with automatic chaptering; Await drives the
// job to a terminal state via bounded polling; CaptionTrack fetches the
// caption track of a completed job.
type Transcriber interface {
	Submit(ctx context.Context, mediaURL string) (string, error)
	Await(ctx context.Context, jobID string) (types.TranscriptionResult, error)
	CaptionTrack(ctx context.Context, jobID string) (string, error)
}

// Completer is a single request/response text-completion call. Retries are
// the caller's responsibility.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VideoTool is the external transcoder. Start and end for Cut are the
// original caption timestamp strings, not seconds.
type VideoTool interface {
	Cut(ctx context.Context, inPath, start, end, outPath string) error
	ResizeSquare(ctx context.Context, inPath, outPath string, size int) error
}

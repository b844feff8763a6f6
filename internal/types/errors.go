package types

import "errors"

// Error kinds surfaced by the pipeline. Per-chapter kinds (completion,
// extraction, cut, resize, confirmation) exclude only that chapter from the
// remaining stages; run-level kinds (upload, transcription) abort the whole
// run for that video. Callers classify with errors.Is.
var (
	ErrUploadFailed          = errors.New("object store upload failed")
	ErrConfirmationTimedOut  = errors.New("object visibility confirmation timed out")
	ErrTranscriptionFailed   = errors.New("transcription job failed")
	ErrTranscriptionTimedOut = errors.New("transcription job polling timed out")
	ErrMalformedTimestamp    = errors.New("malformed caption timestamp")
	ErrCompletionUnavailable = errors.New("completion service unavailable")
	ErrExtractionFailed      = errors.New("clip times not found in completion text")
	ErrClipExtractionFailed  = errors.New("clip cut failed")
	ErrResizeFailed          = errors.New("clip resize failed")
)

package types

// CaptionBlock is one timed block of a caption track. Timecodes are in
// seconds; block ordering matches the source track.
type CaptionBlock struct {
	Start float64
	End   float64
	Lines []string
}

// ClipSpan is a sub-interval of a chapter in caption-timestamp form
// (MM:SS.mmm), kept as the provider's strings so the transcoder receives
// exactly what the model returned.
type ClipSpan struct {
	Start string
	End   string
}

// Chapter is a provider-identified topical span of the source video. The
// orchestrator threads it through the stages in order; each stage populates
// the next field or the chapter drops out of the remaining stages.
type Chapter struct {
	StartMs  int64  `json:"start"`
	EndMs    int64  `json:"end"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Gist     string `json:"gist"`

	// Populated by the segmenter: the caption fragment overlapping
	// [StartMs, EndMs).
	Transcript string `json:"-"`
	// Populated by the prompt builder.
	Prompt string `json:"-"`
	// Populated after the completion call.
	Completion string `json:"-"`
	// Populated by the timestamp extractor; nil means extraction failed or
	// was never attempted, and no clip is produced.
	Span *ClipSpan `json:"-"`
}

func (c Chapter) DurationMs() int64 { return c.EndMs - c.StartMs }

// JobStatus is the transcription provider's job state. The pipeline only
// observes it via polling.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusError      JobStatus = "error"
)

// TranscriptionResult is the terminal-success payload of a transcription job.
type TranscriptionResult struct {
	ID       string
	Chapters []Chapter
}

// ClipArtifact records the local and published forms of one produced clip.
type ClipArtifact struct {
	Chapter      Chapter
	CutPath      string
	ResizedPath  string
	PublishedURL string
}

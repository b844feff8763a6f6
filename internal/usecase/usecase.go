package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sqclip/sqclip/internal/domain/captions"
	"github.com/sqclip/sqclip/internal/domain/chapters"
	"github.com/sqclip/sqclip/internal/ports"
	"github.com/sqclip/sqclip/internal/types"
)

type Deps struct {
	Store       ports.ObjectStore
	Transcriber ports.Transcriber
	Completer   ports.Completer
	Video       ports.VideoTool
}

// Options are the fixed policy knobs of a pipeline instance, shared by every
// run it executes.
type Options struct {
	InputBucket  string
	OutputBucket string
	SignedURLTTL time.Duration

	// Confirmation polling: existence checks after an upload, at
	// ConfirmInterval, up to ConfirmTimeout total.
	ConfirmInterval time.Duration
	ConfirmTimeout  time.Duration

	CeilingMs  int64
	SquareSize int
}

func (o Options) withDefaults() Options {
	if o.SignedURLTTL <= 0 {
		o.SignedURLTTL = 15 * time.Minute
	}
	if o.ConfirmInterval <= 0 {
		o.ConfirmInterval = 5 * time.Second
	}
	if o.ConfirmTimeout <= 0 {
		o.ConfirmTimeout = 5 * time.Minute
	}
	if o.CeilingMs <= 0 {
		o.CeilingMs = chapters.DefaultCeilingMs
	}
	if o.SquareSize <= 0 {
		o.SquareSize = 1080
	}
	return o
}

type Usecase struct {
	d    Deps
	opts Options
	log  zerolog.Logger
}

func New(d Deps, opts Options, log zerolog.Logger) Usecase {
	return Usecase{d: d, opts: opts.withDefaults(), log: log}
}

// Input identifies one video to push through the pipeline.
type Input struct {
	UserID     string
	SourcePath string
	ScratchDir string
}

// Result carries the published clip URLs in chapter order. The list may be
// shorter than the admitted chapter count when individual chapters failed
// completion, extraction, or confirmation.
type Result struct {
	RunID string
	Clips []string
}

// Run drives one video end to end: upload source, transcribe with automatic
// chaptering, segment the caption track per chapter, admit by duration, ask
// the completion model for a clip span per chapter, cut/resize/publish each
// extracted span. Per-chapter failures drop only that chapter; upload and
// transcription failures abort the run.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	runID := uuid.NewString()
	log := u.log.With().
		Str("run", runID).
		Str("user", in.UserID).
		Str("source", filepath.Base(in.SourcePath)).
		Logger()

	srcKey := in.UserID + "/" + filepath.Base(in.SourcePath)
	srcURL, err := u.publish(ctx, u.opts.InputBucket, srcKey, in.SourcePath, log)
	if err != nil {
		return Result{}, fmt.Errorf("upload source: %w", err)
	}
	log.Info().Str("key", srcKey).Msg("source uploaded and confirmed")

	jobID, err := u.d.Transcriber.Submit(ctx, srcURL)
	if err != nil {
		return Result{}, err
	}
	tr, err := u.d.Transcriber.Await(ctx, jobID)
	if err != nil {
		return Result{}, err
	}
	track, err := u.d.Transcriber.CaptionTrack(ctx, jobID)
	if err != nil {
		return Result{}, err
	}
	log.Info().
		Int("chapters", len(tr.Chapters)).
		Int("caption_blocks", len(captions.ParseBlocks(track))).
		Msg("transcription ready")

	segmented := captions.SegmentChapters(tr.Chapters, track)

	// Admission must precede any per-chapter completion work: no chapter over
	// the ceiling may reach the completion gateway.
	admitted := chapters.Admit(segmented, u.opts.CeilingMs)
	if dropped := len(segmented) - len(admitted); dropped > 0 {
		log.Info().Int("dropped", dropped).Int64("ceiling_ms", u.opts.CeilingMs).Msg("long chapters excluded")
	}

	for i := range admitted {
		admitted[i].Prompt = chapters.BuildPrompt(admitted[i])
	}

	// Chapters are processed sequentially; a completion or extraction failure
	// skips that chapter and the run continues.
	for i := range admitted {
		clog := log.With().Int("chapter", i).Str("headline", admitted[i].Headline).Logger()

		text, err := u.d.Completer.Complete(ctx, admitted[i].Prompt)
		if err != nil {
			clog.Warn().Err(err).Msg("completion failed, chapter skipped")
			continue
		}
		admitted[i].Completion = text

		span, err := chapters.ExtractSpan(text)
		if err != nil {
			clog.Warn().Err(err).Msg("no clip span extracted, chapter skipped")
			continue
		}
		admitted[i].Span = &span
		clog.Debug().Str("start", span.Start).Str("end", span.End).Msg("clip span extracted")
	}

	var urls []string
	for i := range admitted {
		if admitted[i].Span == nil {
			continue
		}
		clog := log.With().Int("chapter", i).Logger()
		artifact, err := u.produceClip(ctx, admitted[i], in, clog)
		if err != nil {
			if errors.Is(err, types.ErrConfirmationTimedOut) {
				clog.Warn().Err(err).Msg("clip published but never confirmed visible")
			} else {
				clog.Warn().Err(err).Msg("clip production failed, chapter skipped")
			}
			continue
		}
		urls = append(urls, artifact.PublishedURL)
	}

	log.Info().Int("clips", len(urls)).Msg("run finished")
	return Result{RunID: runID, Clips: urls}, nil
}

// produceClip runs the cut -> resize -> publish+confirm sequence for one
// chapter carrying an extracted span.
func (u Usecase) produceClip(ctx context.Context, ch types.Chapter, in Input, log zerolog.Logger) (types.ClipArtifact, error) {
	token := clipToken(in.SourcePath, in.UserID, *ch.Span)
	cutPath := filepath.Join(in.ScratchDir, token+".mp4")
	resizedPath := filepath.Join(in.ScratchDir, token+"-resized.mp4")

	if err := u.d.Video.Cut(ctx, in.SourcePath, ch.Span.Start, ch.Span.End, cutPath); err != nil {
		return types.ClipArtifact{}, err
	}
	log.Debug().Str("path", cutPath).Msg("clip cut")

	if err := u.d.Video.ResizeSquare(ctx, cutPath, resizedPath, u.opts.SquareSize); err != nil {
		return types.ClipArtifact{}, err
	}
	log.Debug().Str("path", resizedPath).Msg("clip resized")

	key := publishKey(in.UserID, *ch.Span)
	url, err := u.publish(ctx, u.opts.OutputBucket, key, resizedPath, log)
	if err != nil {
		return types.ClipArtifact{}, err
	}
	log.Info().Str("key", key).Msg("clip published")

	return types.ClipArtifact{
		Chapter:      ch,
		CutPath:      cutPath,
		ResizedPath:  resizedPath,
		PublishedURL: url,
	}, nil
}

// publish uploads a local file and polls for its visibility before handing
// back a retrieval URL. The upload acknowledgment alone is not treated as
// authoritative for read-after-write visibility.
func (u Usecase) publish(ctx context.Context, bucket, key, path string, log zerolog.Logger) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if err := u.d.Store.Put(ctx, bucket, key, body); err != nil {
		return "", err
	}

	deadline := time.Now().Add(u.opts.ConfirmTimeout)
	for {
		if u.d.Store.Exists(ctx, bucket, key) {
			return u.d.Store.SignedGetURL(ctx, bucket, key, u.opts.SignedURLTTL)
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w: %s/%s after %s", types.ErrConfirmationTimedOut, bucket, key, u.opts.ConfirmTimeout)
		}
		log.Debug().Str("bucket", bucket).Str("key", key).Msg("object not visible yet, waiting")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(u.opts.ConfirmInterval):
		}
	}
}

// clipToken builds the deterministic local filename stem for one chapter's
// clip. Repeated runs for the same chapter and user collide on purpose so the
// files overwrite rather than accumulate.
func clipToken(sourcePath, userID string, span types.ClipSpan) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%s-%s-clipped-%s_%s",
		base, userID,
		captions.StripSeparators(span.Start),
		captions.StripSeparators(span.End),
	)
}

// publishKey namespaces the published clip by user id and the clip's
// timestamp suffix.
func publishKey(userID string, span types.ClipSpan) string {
	return fmt.Sprintf("%s/%s_%s-resized.mp4",
		userID,
		captions.StripSeparators(span.Start),
		captions.StripSeparators(span.End),
	)
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sqclip/sqclip/internal/config"
	"github.com/sqclip/sqclip/internal/ports"
	"github.com/sqclip/sqclip/internal/ports/adapters/assemblyai"
	"github.com/sqclip/sqclip/internal/ports/adapters/ffmpeg"
	"github.com/sqclip/sqclip/internal/ports/adapters/openaigw"
	"github.com/sqclip/sqclip/internal/ports/adapters/s3store"
	"github.com/sqclip/sqclip/internal/usecase"
)

// VideoResult is the per-video outcome of a batch run.
type VideoResult struct {
	Input string
	Clips []string
	Err   error
}

func Validate(cfg *config.Config, userID string, inputs []string) error {
	if userID == "" {
		return errors.New("user id is empty")
	}
	if len(inputs) == 0 {
		return errors.New("no inputs given")
	}
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
	}
	if cfg.InputBucket == "" || cfg.OutputBucket == "" {
		return errors.New("input and output buckets are required")
	}
	if cfg.MaxConcurrent <= 0 {
		return errors.New("max concurrent videos must be > 0")
	}
	return nil
}

// Run wires the adapters and pushes each input video through its own
// pipeline, at most cfg.MaxConcurrent at a time. A failing video never
// cancels the others; its error is reported in its VideoResult and in the
// joined return error.
func Run(ctx context.Context, cfg *config.Config, userID string, inputs []string, log zerolog.Logger) ([]VideoResult, error) {
	if err := os.MkdirAll(cfg.ScratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	store, err := s3store.New(ctx, s3store.Config{
		Region:    cfg.AWSRegion,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
		Endpoint:  cfg.S3Endpoint,
	}, log)
	if err != nil {
		return nil, err
	}

	transcriber := assemblyai.New(cfg.AssemblyAIKey, cfg.AssemblyAIBaseURL, log,
		assemblyai.WithPolling(cfg.PollInterval, cfg.PollTimeout))
	completer := openaigw.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.CompletionRPM)
	video := ffmpeg.New(cfg.FFmpegPath)

	uc := usecase.New(usecase.Deps{
		Store:       store,
		Transcriber: transcriber,
		Completer:   completer,
		Video:       video,
	}, usecase.Options{
		InputBucket:     cfg.InputBucket,
		OutputBucket:    cfg.OutputBucket,
		SignedURLTTL:    cfg.SignedURLTTL,
		ConfirmInterval: cfg.ConfirmInterval,
		ConfirmTimeout:  cfg.ConfirmTimeout,
		SquareSize:      cfg.SquareSize,
	}, log)

	results := make([]VideoResult, len(inputs))
	var mu sync.Mutex

	// Plain group, not WithContext: one video's failure must not cancel the
	// in-flight runs of its siblings.
	var g errgroup.Group
	g.SetLimit(cfg.MaxConcurrent)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			res, err := uc.Run(ctx, usecase.Input{
				UserID:     userID,
				SourcePath: input,
				ScratchDir: cfg.ScratchDir,
			})
			mu.Lock()
			results[i] = VideoResult{Input: input, Clips: res.Clips, Err: err}
			mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("input", input).Msg("video run failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Input, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

// ensure adapters implement ports
var (
	_ ports.ObjectStore = (*s3store.Store)(nil)
	_ ports.Transcriber = (*assemblyai.Adapter)(nil)
	_ ports.Completer   = (*openaigw.Adapter)(nil)
	_ ports.VideoTool   = (*ffmpeg.Adapter)(nil)
)

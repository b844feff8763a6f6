package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/sqclip/sqclip/internal/types"
)

type Adapter struct {
	ffmpeg string
}

func New(ffmpegPath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{ffmpeg: ffmpegPath}
}

// Cut stream-copies the [start, end] span of inPath into outPath without
// re-encoding. Start and end are caption timestamp strings passed through to
// the transcoder verbatim.
func (a *Adapter) Cut(ctx context.Context, inPath, start, end, outPath string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inPath,
		"-ss", start,
		"-to", end,
		"-c", "copy",
		"-map", "0",
		outPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: ffmpeg: %v\n%s", types.ErrClipExtractionFailed, err, string(b))
	}
	return verifyOutput(outPath, types.ErrClipExtractionFailed)
}

// ResizeSquare scales inPath to fit inside a size x size box and pads it to
// exactly size x size, centered, writing the result to outPath.
func (a *Adapter) ResizeSquare(ctx context.Context, inPath, outPath string, size int) error {
	filter := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		size, size, size, size,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inPath,
		"-map", "0",
		"-vf", filter,
		outPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: ffmpeg: %v\n%s", types.ErrResizeFailed, err, string(b))
	}
	return verifyOutput(outPath, types.ErrResizeFailed)
}

// verifyOutput guards against the transcoder exiting zero without producing a
// usable file. Process exit alone is not a success signal.
func verifyOutput(path string, kind error) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: output missing: %v", kind, err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("%w: output empty: %s", kind, path)
	}
	return nil
}

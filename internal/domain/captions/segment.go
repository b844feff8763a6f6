package captions

import (
	"strings"

	"github.com/sqclip/sqclip/internal/types"
)

// Fragment returns the caption blocks of track that overlap the chapter
// window [startMs, endMs), re-serialized as a caption fragment. The track is
// expected to be a header line followed by blank-line-separated blocks, each
// a "start --> end" timecode line plus text lines.
//
// Overlap is inclusive on both ends (blockStart <= chapterEnd &&
// blockEnd >= chapterStart), so a caption block straddling a chapter boundary
// appears in both adjacent chapters' fragments. Captions are coarse relative
// to chapter boundaries; keep this rather than tightening it.
func Fragment(track string, startMs, endMs int64) string {
	body := stripHeader(track)

	chapterStart := float64(startMs) / 1000
	chapterEnd := float64(endMs) / 1000

	var b strings.Builder
	for _, block := range strings.Split(body, "\n\n") {
		lines := strings.Split(block, "\n")
		timecode := lines[0]
		startRaw, endRaw, ok := strings.Cut(timecode, " --> ")
		if !ok || startRaw == "" || endRaw == "" {
			continue
		}
		start, err := ParseTimestamp(startRaw)
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(endRaw)
		if err != nil {
			continue
		}
		if start <= chapterEnd && end >= chapterStart {
			b.WriteString(timecode)
			b.WriteByte('\n')
			for _, line := range lines[1:] {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// SegmentChapters populates each chapter's Transcript with its overlapping
// caption fragment. A track with zero parseable blocks yields empty
// fragments, not an error.
func SegmentChapters(chapters []types.Chapter, track string) []types.Chapter {
	out := make([]types.Chapter, len(chapters))
	copy(out, chapters)
	for i := range out {
		out[i].Transcript = Fragment(track, out[i].StartMs, out[i].EndMs)
	}
	return out
}

// stripHeader drops the track's header line and the blank separator that
// follows it, so the first caption block starts clean.
func stripHeader(track string) string {
	_, body, _ := strings.Cut(track, "\n")
	return strings.TrimLeft(body, "\n")
}

// ParseBlocks decodes a caption track into structured blocks. Blocks whose
// timecode fails to parse are dropped.
func ParseBlocks(track string) []types.CaptionBlock {
	body := stripHeader(track)

	var out []types.CaptionBlock
	for _, block := range strings.Split(body, "\n\n") {
		lines := strings.Split(block, "\n")
		startRaw, endRaw, ok := strings.Cut(lines[0], " --> ")
		if !ok || startRaw == "" || endRaw == "" {
			continue
		}
		start, err := ParseTimestamp(startRaw)
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(endRaw)
		if err != nil {
			continue
		}
		out = append(out, types.CaptionBlock{Start: start, End: end, Lines: lines[1:]})
	}
	return out
}

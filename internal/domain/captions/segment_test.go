package captions

import (
	"strings"
	"testing"

	"github.com/sqclip/sqclip/internal/types"
)

const sampleTrack = `WEBVTT

00:00.000 --> 00:05.000
Hello world.

00:05.000 --> 00:10.000
Second block
on two lines.

00:10.000 --> 00:15.000
Third block.
`

func TestFragment_OverlapSelection(t *testing.T) {
	tests := []struct {
		name        string
		startMs     int64
		endMs       int64
		wantBlocks  []string
		rejectLines []string
	}{
		{
			name:       "first chapter",
			startMs:    0,
			endMs:      4000,
			wantBlocks: []string{"Hello world."},
			rejectLines: []string{
				"Third block.",
			},
		},
		{
			name:       "middle window spans two blocks",
			startMs:    4000,
			endMs:      9000,
			wantBlocks: []string{"Hello world.", "Second block", "on two lines."},
			rejectLines: []string{
				"Third block.",
			},
		},
		{
			name:       "window past the track",
			startMs:    60000,
			endMs:      90000,
			wantBlocks: nil,
			rejectLines: []string{
				"Hello world.", "Second block", "Third block.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fragment(sampleTrack, tt.startMs, tt.endMs)
			for _, want := range tt.wantBlocks {
				if !strings.Contains(got, want) {
					t.Fatalf("fragment missing %q:\n%s", want, got)
				}
			}
			for _, reject := range tt.rejectLines {
				if strings.Contains(got, reject) {
					t.Fatalf("fragment should not contain %q:\n%s", reject, got)
				}
			}
		})
	}
}

func TestFragment_BoundaryBlockSharedByAdjacentChapters(t *testing.T) {
	// The overlap rule is inclusive on both ends, so the block ending exactly
	// at one chapter's start appears in both chapters' fragments.
	left := Fragment(sampleTrack, 0, 5000)
	right := Fragment(sampleTrack, 5000, 10000)
	if !strings.Contains(left, "Second block") {
		t.Fatalf("left chapter missing boundary block:\n%s", left)
	}
	if !strings.Contains(right, "Hello world.") {
		t.Fatalf("right chapter missing boundary block:\n%s", right)
	}
}

func TestFragment_KeepsTimecodeLines(t *testing.T) {
	got := Fragment(sampleTrack, 0, 4000)
	if !strings.Contains(got, "00:00.000 --> 00:05.000") {
		t.Fatalf("fragment should keep the timecode line:\n%s", got)
	}
}

func TestFragment_EmptyAndMalformedTracks(t *testing.T) {
	if got := Fragment("WEBVTT\n", 0, 10000); got != "" {
		t.Fatalf("zero-block track should yield an empty fragment, got %q", got)
	}

	// Blocks with empty or unparseable timecode fields are silently skipped.
	track := "WEBVTT\n\n --> \nLost line.\n\nbad --> worse\nAlso lost.\n\n00:01.000 --> 00:02.000\nKept.\n"
	got := Fragment(track, 0, 10000)
	if strings.Contains(got, "Lost line.") || strings.Contains(got, "Also lost.") {
		t.Fatalf("malformed blocks should be skipped:\n%s", got)
	}
	if !strings.Contains(got, "Kept.") {
		t.Fatalf("well-formed block should survive:\n%s", got)
	}
}

func TestSegmentChapters(t *testing.T) {
	chapters := []types.Chapter{
		{StartMs: 0, EndMs: 4000, Headline: "a"},
		{StartMs: 10000, EndMs: 15000, Headline: "b"},
	}
	got := SegmentChapters(chapters, sampleTrack)
	if len(got) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(got))
	}
	if !strings.Contains(got[0].Transcript, "Hello world.") {
		t.Fatalf("chapter 0 fragment wrong:\n%s", got[0].Transcript)
	}
	if !strings.Contains(got[1].Transcript, "Third block.") {
		t.Fatalf("chapter 1 fragment wrong:\n%s", got[1].Transcript)
	}
	// input slice is not mutated
	if chapters[0].Transcript != "" {
		t.Fatalf("SegmentChapters mutated its input")
	}
}

func TestParseBlocks(t *testing.T) {
	blocks := ParseBlocks(sampleTrack)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[1].Start != 5 || blocks[1].End != 10 {
		t.Fatalf("unexpected block timecodes: %+v", blocks[1])
	}
	if len(blocks[1].Lines) != 2 {
		t.Fatalf("expected 2 text lines, got %v", blocks[1].Lines)
	}
}

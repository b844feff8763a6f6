package chapters

import (
	"testing"

	"github.com/sqclip/sqclip/internal/types"
)

func TestAdmit(t *testing.T) {
	in := []types.Chapter{
		{StartMs: 0, EndMs: 360_000, Headline: "exactly at the ceiling"},
		{StartMs: 0, EndMs: 360_001, Headline: "one past the ceiling"},
		{StartMs: 1000, EndMs: 61_000, Headline: "one minute"},
		{StartMs: 0, EndMs: 900_000, Headline: "fifteen minutes"},
	}

	got := Admit(in, DefaultCeilingMs)
	if len(got) != 2 {
		t.Fatalf("expected 2 admitted chapters, got %d", len(got))
	}
	if got[0].Headline != "exactly at the ceiling" || got[1].Headline != "one minute" {
		t.Fatalf("admission should preserve order, got %q then %q", got[0].Headline, got[1].Headline)
	}
	for _, ch := range got {
		if ch.DurationMs() > DefaultCeilingMs {
			t.Fatalf("retained chapter over ceiling: %+v", ch)
		}
	}
}

func TestAdmit_Idempotent(t *testing.T) {
	in := []types.Chapter{
		{StartMs: 0, EndMs: 10_000},
		{StartMs: 0, EndMs: 500_000},
		{StartMs: 20_000, EndMs: 90_000},
	}
	once := Admit(in, DefaultCeilingMs)
	twice := Admit(once, DefaultCeilingMs)
	if len(once) != len(twice) {
		t.Fatalf("admission is not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("admission changed chapter %d on second pass", i)
		}
	}
}

func TestAdmit_NeverGrows(t *testing.T) {
	in := []types.Chapter{
		{StartMs: 0, EndMs: 1},
		{StartMs: 0, EndMs: 360_000},
		{StartMs: 0, EndMs: 360_001},
	}
	for _, ceiling := range []int64{0, 1, 360_000, 1 << 40} {
		got := Admit(in, ceiling)
		if len(got) > len(in) {
			t.Fatalf("ceiling %d: output longer than input", ceiling)
		}
		for _, ch := range got {
			if ch.DurationMs() > ceiling {
				t.Fatalf("ceiling %d: retained chapter with duration %d", ceiling, ch.DurationMs())
			}
		}
	}
}

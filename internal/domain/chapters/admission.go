package chapters

import "github.com/sqclip/sqclip/internal/types"

// DefaultCeilingMs is the chapter duration ceiling: six minutes. Longer
// chapters produce prompts that blow the completion model's context budget,
// so they are rejected outright rather than truncated.
const DefaultCeilingMs int64 = 360_000

// Admit keeps chapters whose duration fits under ceilingMs. Order-preserving,
// no other side effects; applying it twice yields the same result.
func Admit(in []types.Chapter, ceilingMs int64) []types.Chapter {
	out := make([]types.Chapter, 0, len(in))
	for _, ch := range in {
		if ch.DurationMs() <= ceilingMs {
			out = append(out, ch)
		}
	}
	return out
}

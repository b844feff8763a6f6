package chapters

import (
	"fmt"
	"regexp"

	"github.com/sqclip/sqclip/internal/types"
)

var (
	startTimeRe = regexp.MustCompile(`Start time: (\d{2}:\d{2}\.\d{3})`)
	endTimeRe   = regexp.MustCompile(`End time: (\d{2}:\d{2}\.\d{3})`)
)

// ExtractSpan pulls the two labeled timestamps out of a completion response.
// Model output is untrusted free text: either both labels match and the span
// is returned whole, or extraction fails. Missing labels are never retried
// and never defaulted to a synthetic span.
func ExtractSpan(completion string) (types.ClipSpan, error) {
	start := startTimeRe.FindStringSubmatch(completion)
	end := endTimeRe.FindStringSubmatch(completion)
	if start == nil && end == nil {
		return types.ClipSpan{}, fmt.Errorf("%w: neither label matched", types.ErrExtractionFailed)
	}
	if start == nil {
		return types.ClipSpan{}, fmt.Errorf("%w: no start time label", types.ErrExtractionFailed)
	}
	if end == nil {
		return types.ClipSpan{}, fmt.Errorf("%w: no end time label", types.ErrExtractionFailed)
	}
	return types.ClipSpan{Start: start[1], End: end[1]}, nil
}

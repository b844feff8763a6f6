package captions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqclip/sqclip/internal/types"
)

// ParseTimestamp converts a caption timestamp of the form "MM:SS.mmm" to
// seconds. A missing millisecond part defaults to zero; anything other than
// two colon-separated numeric fields before the dot is malformed.
func ParseTimestamp(ts string) (float64, error) {
	mmss, msPart, _ := strings.Cut(ts, ".")
	mmField, ssField, ok := strings.Cut(mmss, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrMalformedTimestamp, ts)
	}
	mm, err := strconv.ParseFloat(mmField, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrMalformedTimestamp, ts)
	}
	ss, err := strconv.ParseFloat(ssField, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrMalformedTimestamp, ts)
	}
	// Unparseable millisecond part counts as zero, matching the lenient
	// handling of tracks that omit it entirely.
	ms, err := strconv.ParseFloat(msPart, 64)
	if err != nil {
		ms = 0
	}
	return mm*60 + ss + ms/1000, nil
}

// StripSeparators removes ':' and '.' from a timestamp, producing a
// filesystem-safe token for clip filenames.
func StripSeparators(ts string) string {
	return strings.Map(func(r rune) rune {
		if r == ':' || r == '.' {
			return -1
		}
		return r
	}, ts)
}

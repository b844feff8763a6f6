package captions

import (
	"errors"
	"testing"

	"github.com/sqclip/sqclip/internal/types"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"zero", "00:00.000", 0},
		{"seconds only", "00:07.000", 7},
		{"minutes carry", "02:30.000", 150},
		{"milliseconds", "00:10.500", 10.5},
		{"missing millis", "01:15", 75},
		{"unparseable millis default to zero", "01:15.abc", 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	for _, in := range []string{"", "10", "aa:bb.000", "10.500", "xx:10", "10:"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseTimestamp(in); !errors.Is(err, types.ErrMalformedTimestamp) {
				t.Fatalf("ParseTimestamp(%q) err = %v, want ErrMalformedTimestamp", in, err)
			}
		})
	}
}

func TestStripSeparators(t *testing.T) {
	tests := map[string]string{
		"00:10.500": "0010500",
		"59:59.999": "5959999",
		"0010500":   "0010500",
		"":          "",
	}
	for in, want := range tests {
		if got := StripSeparators(in); got != want {
			t.Fatalf("StripSeparators(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripSeparators_RoundTripDigits(t *testing.T) {
	// Any valid timestamp strips to a pure digit string.
	for _, in := range []string{"00:00.000", "12:34.567", "01:15"} {
		got := StripSeparators(in)
		for _, r := range got {
			if r < '0' || r > '9' {
				t.Fatalf("StripSeparators(%q) = %q contains non-digit %q", in, got, r)
			}
		}
	}
}

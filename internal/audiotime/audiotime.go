// Package audiotime provides the absolute time offset used to address
// positions within a recording
package audiotime

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ayoisaiah/setsplit/internal/apperr"
)

var errParseTime = &apperr.Error{
	Message: "invalid time %q: expected seconds, mm:ss, hh:mm:ss or a duration such as 3m12.5s",
}

// AudioTime is a non-negative offset from the start of a recording.
// It is a value type: operations return new values and never mutate.
type AudioTime struct {
	d time.Duration
}

// Zero is the start of the recording.
var Zero = AudioTime{}

// New returns an AudioTime for d. Negative durations are clamped to zero.
func New(d time.Duration) AudioTime {
	if d < 0 {
		d = 0
	}

	return AudioTime{d: d}
}

// FromSeconds converts fractional seconds to an AudioTime, rounding to the
// nearest nanosecond.
func FromSeconds(secs float64) AudioTime {
	if math.IsNaN(secs) || secs < 0 {
		return Zero
	}

	return New(time.Duration(math.Round(secs * float64(time.Second))))
}

// Duration returns the offset as a duration.
func (t AudioTime) Duration() time.Duration {
	return t.d
}

// Seconds returns the offset in fractional seconds.
func (t AudioTime) Seconds() float64 {
	return t.d.Seconds()
}

// Add returns t shifted by d, clamped at zero.
func (t AudioTime) Add(d time.Duration) AudioTime {
	return New(t.d + d)
}

// Sub returns the signed distance t - u.
func (t AudioTime) Sub(u AudioTime) time.Duration {
	return t.d - u.d
}

func (t AudioTime) Compare(u AudioTime) int {
	return cmp.Compare(t.d, u.d)
}

func (t AudioTime) Before(u AudioTime) bool {
	return t.d < u.d
}

func (t AudioTime) After(u AudioTime) bool {
	return t.d > u.d
}

func (t AudioTime) IsZero() bool {
	return t.d == 0
}

// String formats the offset as h:mm:ss.mmm, omitting the hours when zero.
func (t AudioTime) String() string {
	ms := t.d.Milliseconds()

	h := ms / int64(time.Hour/time.Millisecond)
	ms -= h * int64(time.Hour/time.Millisecond)

	m := ms / int64(time.Minute/time.Millisecond)
	ms -= m * int64(time.Minute/time.Millisecond)

	s := ms / 1000
	ms -= s * 1000

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
	}

	return fmt.Sprintf("%d:%02d.%03d", m, s, ms)
}

// SecondsString formats the offset as seconds with microsecond precision,
// the form handed to the extractor.
func (t AudioTime) SecondsString() string {
	return FormatSeconds(t.d)
}

// FormatSeconds formats d as fractional seconds with microsecond precision.
func FormatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}

// MarshalJSON encodes the offset as fractional seconds.
func (t AudioTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(t.d.Seconds(), 'f', -1, 64)), nil
}

func (t *AudioTime) UnmarshalJSON(b []byte) error {
	secs, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return errParseTime.Fmt(string(b))
	}

	*t = FromSeconds(secs)

	return nil
}

// Parse reads an offset written as plain seconds ("190.5"), a clock value
// ("3:10.5", "1:03:10") or a Go duration ("3m10.5s").
func Parse(s string) (AudioTime, error) {
	d, err := ParseDuration(s)
	if err != nil {
		return Zero, err
	}

	return New(d), nil
}

// ParseDuration is Parse for lengths. Negative values are rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errParseTime.Fmt(s)
	}

	var (
		d   time.Duration
		err error
	)

	switch {
	case strings.Contains(s, ":"):
		d, err = parseClock(s)
	default:
		var secs float64

		secs, err = strconv.ParseFloat(s, 64)
		if err == nil {
			var ok bool

			d, ok = secondsToDuration(secs)
			if !ok {
				return 0, errParseTime.Fmt(s)
			}
		} else {
			d, err = time.ParseDuration(s)
		}
	}

	if err != nil || d < 0 {
		return 0, errParseTime.Fmt(s)
	}

	return d, nil
}

func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, errParseTime.Fmt(s)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || math.IsNaN(secs) || secs < 0 || secs >= 60 {
		return 0, errParseTime.Fmt(s)
	}

	total := secs

	multiplier := 60.0

	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, errParseTime.Fmt(s)
		}

		total += float64(n) * multiplier
		multiplier *= 60
	}

	d, ok := secondsToDuration(total)
	if !ok {
		return 0, errParseTime.Fmt(s)
	}

	return d, nil
}

// secondsToDuration converts secs to a duration. It fails for NaN, infinite,
// negative and out of range values.
func secondsToDuration(secs float64) (time.Duration, bool) {
	ns := math.Round(secs * float64(time.Second))

	if math.IsNaN(ns) || math.IsInf(ns, 0) || ns < 0 || ns >= math.MaxInt64 {
		return 0, false
	}

	return time.Duration(ns), true
}

package chord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/hovertone/model"
)

var ErrInvalidDuration = errors.New("invalid duration")

var ErrEmptyDurations = errors.New("duration set is empty")

// DefaultDurations are short, triplet-flavoured lengths for a disjointed feel.
func DefaultDurations() []model.Duration {
	return []model.Duration{"16n", "32n", "8t"}
}

// DurationSeconds converts a token such as "8n", "8t", "4n." or "1m" to
// seconds at the given tempo.
func DurationSeconds(d model.Duration, bpm float64) (float64, error) {
	if bpm <= 0 {
		return 0, fmt.Errorf("%w: tempo %v", ErrInvalidDuration, bpm)
	}
	whole := 4 * 60 / bpm

	token := d
	dotted := strings.HasSuffix(token, ".")
	if dotted {
		token = strings.TrimSuffix(token, ".")
	}
	if len(token) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, d)
	}
	kind := token[len(token)-1]
	n, err := strconv.Atoi(token[:len(token)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, d)
	}

	var secs float64
	switch kind {
	case 'n':
		secs = whole / float64(n)
	case 't':
		secs = whole / float64(n) * 2 / 3
	case 'm':
		secs = whole * float64(n)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, d)
	}
	if dotted {
		secs *= 1.5
	}
	return secs, nil
}

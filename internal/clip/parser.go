package clip

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/veranemoloko/clipbot/internal/domain"
	errpkg "github.com/veranemoloko/clipbot/internal/errors"
)

// ParseTimestamp converts a timestamp token into a duration. Accepted forms
// are HH:MM:SS, MM:SS and bare seconds ("90"). Colon-separated fields must be
// one or two digits each.
func ParseTimestamp(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty timestamp", errpkg.ErrInvalidTimestamp)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", errpkg.ErrInvalidTimestamp, s)
	}

	total := 0
	for _, part := range parts {
		n, err := parseField(part, len(parts) > 1)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errpkg.ErrInvalidTimestamp, s)
		}
		total = total*60 + n
	}

	return time.Duration(total) * time.Second, nil
}

func parseField(s string, twoDigits bool) (int, error) {
	if s == "" || (twoDigits && len(s) > 2) {
		return 0, fmt.Errorf("bad field %q", s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("bad field %q", s)
		}
	}
	return strconv.Atoi(s)
}

// ParseRange builds a clip range from optional start and end tokens. Both
// empty means no clipping; a start without an end clips to the end of the
// video. Use "0" as the start when only an end offset is wanted.
func ParseRange(startStr, endStr string) (*domain.ClipRange, error) {
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" {
		return nil, fmt.Errorf("%w: end time given without a start time", errpkg.ErrInvalidRange)
	}

	start, err := ParseTimestamp(startStr)
	if err != nil {
		return nil, err
	}

	r := &domain.ClipRange{Start: start}
	if endStr == "" {
		return r, nil
	}

	end, err := ParseTimestamp(endStr)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: start %s is not before end %s", errpkg.ErrInvalidRange, startStr, endStr)
	}
	r.End = end

	return r, nil
}

package moderation

import (
	"strconv"
	"time"

	"github.com/wasilibs/go-re2"
)

// windowPattern accepts one or more digits followed by exactly one unit
// character: s, m, h or d. Nothing else.
var windowPattern = re2.MustCompile(`(?i)^(\d+)([smhd])$`)

// ParseWindow converts a compact duration token like "30s", "10m", "6h" or
// "7d" into a time.Duration. Any deviation from the grammar yields
// ErrBadWindow.
func ParseWindow(token string) (time.Duration, error) {
	match := windowPattern.FindStringSubmatch(token)
	if match == nil {
		return 0, ErrBadWindow
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		// Digit runs too long for int64 are rejected rather than truncated.
		return 0, ErrBadWindow
	}

	switch match[2] {
	case "s", "S":
		return time.Duration(value) * time.Second, nil
	case "m", "M":
		return time.Duration(value) * time.Minute, nil
	case "h", "H":
		return time.Duration(value) * time.Hour, nil
	case "d", "D":
		return time.Duration(value) * 24 * time.Hour, nil
	}

	return 0, ErrBadWindow
}

package domain

import (
	"fmt"
	"strconv"
)

// Clock is a wall-clock time expressed as minutes since midnight.
type Clock int

// ParseClock parses a strict 24-hour "HH:MM" string.
func ParseClock(value string) (Clock, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, Invalid("time", fmt.Sprintf("%q is not in HH:MM format", value))
	}
	// strconv.Atoi tolerates a leading sign, so require plain digits first.
	for _, i := range [...]int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return 0, Invalid("time", fmt.Sprintf("%q is not in HH:MM format", value))
		}
	}
	hours, _ := strconv.Atoi(value[:2])
	if hours > 23 {
		return 0, Invalid("time", fmt.Sprintf("%q has an invalid hour", value))
	}
	minutes, _ := strconv.Atoi(value[3:])
	if minutes > 59 {
		return 0, Invalid("time", fmt.Sprintf("%q has an invalid minute", value))
	}
	return Clock(hours*60 + minutes), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is an organization's operating window on a single day.
// Windows crossing midnight are unsupported.
type Window struct {
	Open  Clock
	Close Clock
}

// NewWindow parses an opening/closing pair. A window whose opening is later
// than its closing is rejected rather than silently misevaluated.
func NewWindow(opening, closing string) (Window, error) {
	open, err := ParseClock(opening)
	if err != nil {
		return Window{}, err
	}
	closeAt, err := ParseClock(closing)
	if err != nil {
		return Window{}, err
	}
	if open > closeAt {
		return Window{}, Invalid("opening_time", "windows crossing midnight are not supported")
	}
	return Window{Open: open, Close: closeAt}, nil
}

// Contains reports whether t falls inside the window, inclusive at both ends.
func (w Window) Contains(t Clock) bool {
	return w.Open <= t && t <= w.Close
}

// Elapsed reports whether t is strictly past closing. At the exact closing
// minute the window has not elapsed.
func (w Window) Elapsed(t Clock) bool {
	return t > w.Close
}

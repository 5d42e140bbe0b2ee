package courses

import (
	"fmt"
	"time"

	"github.com/five82/notedeck/internal/backend"
)

// CountdownKind classifies a countdown for display.
type CountdownKind int

const (
	// CountdownNone means the course has no end date.
	CountdownNone CountdownKind = iota
	// CountdownExpired means the end date has passed.
	CountdownExpired
	// CountdownEnding means less than a week remains.
	CountdownEnding
	// CountdownRemaining means a week or more remains.
	CountdownRemaining
)

const endingWindow = 7 * 24 * time.Hour

// Labels used for the fixed countdown states.
const (
	LabelNoTimer  = "No end date"
	LabelExpired  = "Expired"
	LabelUnderMin = "Less than a minute left"
)

// Countdown is a derived time-remaining label. It is never stored.
type Countdown struct {
	Kind  CountdownKind
	Label string
}

// HasTimer reports whether the countdown came from an end date.
func (c Countdown) HasTimer() bool {
	return c.Kind != CountdownNone
}

// TimeRemaining formats the time left until end, showing only the largest
// non-zero unit. A nil end yields the no-timer countdown.
func TimeRemaining(end *time.Time, now time.Time) Countdown {
	if end == nil {
		return Countdown{Kind: CountdownNone, Label: LabelNoTimer}
	}
	if end.Before(now) {
		return Countdown{Kind: CountdownExpired, Label: LabelExpired}
	}

	diff := end.Sub(now)
	kind := CountdownRemaining
	if diff < endingWindow {
		kind = CountdownEnding
	}

	days := int64(diff / (24 * time.Hour))
	hours := int64(diff / time.Hour)
	minutes := int64(diff / time.Minute)

	var label string
	switch {
	case days > 0:
		label = plural(days, "day") + " left"
	case hours > 0:
		label = plural(hours, "hour") + " left"
	case minutes > 0:
		label = plural(minutes, "minute") + " left"
	default:
		label = LabelUnderMin
	}
	return Countdown{Kind: kind, Label: label}
}

// Expired reports whether end is strictly before now. A nil end never expires.
func Expired(end *time.Time, now time.Time) bool {
	return end != nil && end.Before(now)
}

func courseEnd(course backend.Course) *time.Time {
	end, ok := course.EndTime()
	if !ok {
		return nil
	}
	return &end
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

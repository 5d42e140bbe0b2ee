package courses

import (
	"fmt"
	"time"

	"github.com/five82/notedeck/internal/backend"
)

// FilterCourses derives the visible courses for mode. The result keeps the
// collection order.
func FilterCourses(all []backend.Course, hidden HiddenSet, mode Mode, now time.Time) []backend.Course {
	out := make([]backend.Course, 0, len(all))
	for _, course := range all {
		expired := Expired(courseEnd(course), now)
		switch ParseMode(string(mode)) {
		case ModeHidden:
			if !hidden.Has(course.ID) {
				continue
			}
		case ModePast:
			if !expired {
				continue
			}
		case ModeAll:
		default:
			if hidden.Has(course.ID) || expired {
				continue
			}
		}
		out = append(out, course)
	}
	return out
}

// StatusSummary describes the current view in one line.
func StatusSummary(total, hiddenCount, filtered int, mode Mode) string {
	switch ParseMode(string(mode)) {
	case ModeHidden:
		return countNoun(hiddenCount, "hidden course")
	case ModePast:
		return countNoun(filtered, "past course")
	case ModeAll:
		return "Showing all " + countNoun(total, "course")
	default:
		return fmt.Sprintf("Showing %d of %s (%d hidden)", filtered, countNoun(total, "course"), hiddenCount)
	}
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

package courses

import "strings"

// Mode selects which lens the course list is viewed through.
type Mode string

const (
	ModeActive Mode = "active"
	ModeHidden Mode = "hidden"
	ModePast   Mode = "past"
	ModeAll    Mode = "all"
)

var modeOrder = []Mode{ModeActive, ModePast, ModeHidden, ModeAll}

// Modes returns the view modes in display order.
func Modes() []Mode {
	out := make([]Mode, len(modeOrder))
	copy(out, modeOrder)
	return out
}

// ParseMode maps user input to a Mode. Anything unrecognized is ModeActive.
func ParseMode(value string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeHidden:
		return ModeHidden
	case ModePast:
		return ModePast
	case ModeAll:
		return ModeAll
	default:
		return ModeActive
	}
}

// Next returns the following mode in display order.
func (m Mode) Next() Mode {
	current := ParseMode(string(m))
	for i, mode := range modeOrder {
		if mode == current {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return ModeActive
}

// Label is the title-cased name shown in the UI.
func (m Mode) Label() string {
	switch ParseMode(string(m)) {
	case ModeHidden:
		return "Hidden"
	case ModePast:
		return "Past"
	case ModeAll:
		return "All"
	default:
		return "Active"
	}
}

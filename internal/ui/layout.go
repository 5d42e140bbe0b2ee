package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is hidden.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Log viewer limits.
const (
	// LogViewLines is the number of log lines loaded into the log viewer.
	LogViewLines = 500
)

// Timing constants.
const (
	// RequestTimeout bounds one backend round trip issued from the UI.
	RequestTimeout = 10 * time.Second

	// FlashDuration is how long transient status messages stay visible.
	FlashDuration = 4 * time.Second
)

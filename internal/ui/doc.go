// Package ui implements the notedeck terminal interface with Bubble Tea.
//
// The Model owns every piece of view state and is driven entirely by
// messages: key presses, window resizes, countdown ticks sent by the
// courses controller's timer, update notices from the version checker, and
// the results of backend requests. Backend calls run inside tea.Cmd
// functions and never touch the model directly, so all state changes happen
// on the Bubble Tea event loop.
//
// Views:
//
//   - Courses: filtered course table, detail pane and countdowns
//   - Notes: per-course file list, textarea editor and markdown preview
//   - Settings: Canvas URL and token form
//   - Logs: tail of the notedeck log file
//
// The courses controller renders into a courseView shared by pointer, so
// filtering and hidden-course rules stay in package courses and this package
// only draws what it is handed.
package ui

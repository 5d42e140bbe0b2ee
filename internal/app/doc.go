// Package app is the composition root for notedeck.
//
// Run loads the TOML config, opens the log file and the local bbolt state
// database, builds the backend client, and runs the course controller's
// startup sequence (hidden set, config, courses, ready) before handing
// everything to the Bubble Tea UI. Only config errors are fatal; a missing
// backend or unwritable state database degrades to an empty catalog or an
// in-memory hidden set.
package app

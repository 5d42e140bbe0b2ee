// Package config loads notedeck's TOML configuration.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/notedeck/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Blank or missing fields keep their defaults
//
// # Format
//
//	server = "127.0.0.1:8080"
//	data_dir = "~/.local/share/notedeck"
//	version_url = "https://raw.githubusercontent.com/five82/notedeck/main/version.txt"
//	download_url = "https://github.com/five82/notedeck/releases/latest"
//	countdown_seconds = 60
//
// Tilde expansion is applied to the config path and data_dir. The state
// database (state.db) and log file (notedeck.log) live in data_dir.
//
// Load returns an error for unreadable files and invalid TOML; a missing file
// is not an error.
package config

// Package config loads kiln settings.
//
// Settings come from three layers, later layers winning:
//
//  1. built-in defaults
//  2. the config file (TOML, YAML or JSON, chosen by extension)
//  3. KILN_ environment variables (KILN_EDITOR_TAB_STOP sets editor.tab_stop)
//
// A config file looks like:
//
//	[editor]
//	tab_stop = 4
//	quit_times = 3
//	status_timeout = "5s"
//
//	[logging]
//	level = "info"
//	file = "/tmp/kiln.log"
//
//	[theme]
//	name = "monokai"
//	keyword1 = "#ff8800"
//
//	[[filetypes]]
//	name = "rust"
//	match = [".rs"]
//	keywords = ["fn", "let", "match"]
//	types = ["i32", "u8"]
//	line_comment = "//"
//	block_comment_start = "/*"
//	block_comment_end = "*/"
//
//	scripts = ["filetypes.lua"]
//
// Load returns a validated snapshot. Reloading means calling Load again;
// a Config is never modified after it is returned.
package config

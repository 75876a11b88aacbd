// Package config handles configuration loading and merging for the printer CLI.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--no-color, --width, --theme, -v)
//  2. Environment variables (PRINTER_NO_COLOR, NO_COLOR, PRINTER_WIDTH, PRINTER_THEME, PRINTER_DEBUG)
//  3. YAML config file (.printer.yaml in the working directory or ~/.config/printer/.printer.yaml)
//  4. Hardcoded defaults
//
// # Example
//
//	colors: true
//	width_limit: 100        # or true (terminal width) / false (no wrapping)
//	fallback_width: 80
//	theme: classic
//	styles:
//	  key: bold+purple
//	table:
//	  column_limit: 30 # 0 means no limit
//	  align: right
//	progress:
//	  width: 30
package config

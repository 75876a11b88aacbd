package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/dkoosis/printer/pkg/design"
	"github.com/dkoosis/printer/pkg/table"
	"github.com/dkoosis/printer/printer"
)

// Sources recorded on ResolvedConfig, for debugging.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Theme *design.Theme

	// NoColor disables escapes. When false the printer detects color support.
	NoColor bool

	WidthLimit    WidthLimit
	FallbackWidth int
	Indent        int
	AlignColumn   int

	TableColumnLimit int
	TableAlign       design.Alignment
	ProgressWidth    int

	Debug bool

	ThemeSource  string
	ColorsSource string
	WidthSource  string
	ConfigPath   string
}

// ResolveConfig resolves configuration from all sources. CLI flags win over
// environment variables, which win over the config file, which wins over defaults.
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	appCfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		WidthLimit:       appCfg.WidthLimit,
		FallbackWidth:    appCfg.FallbackWidth,
		Indent:           appCfg.Indent,
		AlignColumn:      appCfg.AlignColumn,
		TableColumnLimit: DefaultTableColumnLimit,
		ProgressWidth:    appCfg.Progress.Width,
		Debug:            appCfg.Debug,
		ColorsSource:     SourceDefault,
		WidthSource:      SourceDefault,
		ConfigPath:       appCfg.Path,
	}
	if appCfg.Table.ColumnLimit != nil {
		resolved.TableColumnLimit = *appCfg.Table.ColumnLimit
	}
	if appCfg.WidthLimit != (WidthLimit{}) {
		resolved.WidthSource = SourceFile
	}

	resolved.Theme, resolved.ThemeSource, err = resolveTheme(cliFlags, appCfg)
	if err != nil {
		return nil, err
	}
	appCfg.Styles.apply(resolved.Theme)

	align, ok := design.ParseAlignment(appCfg.Table.Align)
	if !ok {
		return nil, fmt.Errorf("config validation failed: invalid table.align value: %q (must be: left, center, right)", appCfg.Table.Align)
	}
	resolved.TableAlign = align

	// Colors: CLI > ENV > file > detection
	switch {
	case cliFlags.NoColorSet:
		resolved.NoColor = cliFlags.NoColor
		resolved.ColorsSource = SourceCLI
	case noColorEnv() != nil:
		resolved.NoColor = *noColorEnv()
		resolved.ColorsSource = SourceEnv
	case appCfg.Colors != nil && !*appCfg.Colors:
		resolved.NoColor = true
		resolved.ColorsSource = SourceFile
	}

	// Width: CLI > ENV > file > default
	if cliFlags.WidthSet {
		if err := resolved.WidthLimit.setColumns(cliFlags.Width); err != nil {
			return nil, fmt.Errorf("--width: %w", err)
		}
		resolved.WidthSource = SourceCLI
	} else if env := os.Getenv("PRINTER_WIDTH"); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil {
			return nil, fmt.Errorf("PRINTER_WIDTH: %q is not an integer", env)
		}
		if err := resolved.WidthLimit.setColumns(n); err != nil {
			return nil, fmt.Errorf("PRINTER_WIDTH: %w", err)
		}
		resolved.WidthSource = SourceEnv
	}

	// Debug: CLI > ENV > file > default
	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
	} else if os.Getenv("PRINTER_DEBUG") != "" {
		resolved.Debug = true
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Debug().
		Str("component", "config").
		Str("theme", resolved.Theme.Name).
		Str("theme_source", resolved.ThemeSource).
		Str("colors_source", resolved.ColorsSource).
		Str("width_source", resolved.WidthSource).
		Msg("Resolved config")
	return resolved, nil
}

// resolveTheme picks the theme name by priority and looks it up. An unknown name is an
// error naming the available themes.
func resolveTheme(cliFlags CliFlags, appCfg *AppConfig) (*design.Theme, string, error) {
	name, source := appCfg.Theme, SourceFile
	switch {
	case cliFlags.ThemeName != "":
		name, source = cliFlags.ThemeName, SourceCLI
	case os.Getenv("PRINTER_THEME") != "":
		name, source = os.Getenv("PRINTER_THEME"), SourceEnv
	case appCfg.Path == "" || appCfg.Theme == DefaultThemeName:
		source = SourceDefault
	}

	theme, err := design.ThemeByName(name)
	if err != nil {
		return nil, "", fmt.Errorf("%s theme: %w", source, err)
	}
	return theme, source, nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	if cfg.Theme == nil {
		return fmt.Errorf("theme cannot be nil")
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got: %d", cfg.Indent)
	}
	if cfg.AlignColumn < 0 {
		return fmt.Errorf("align_column must not be negative, got: %d", cfg.AlignColumn)
	}
	if cfg.TableColumnLimit < 0 {
		return fmt.Errorf("table.column_limit must not be negative, got: %d", cfg.TableColumnLimit)
	}
	if cfg.ProgressWidth <= 0 {
		return fmt.Errorf("progress.width must be positive, got: %d", cfg.ProgressWidth)
	}
	return nil
}

// PrinterConfig builds the printer configuration for out.
func (r *ResolvedConfig) PrinterConfig(out io.Writer) printer.Config {
	return printer.Config{
		Out:       out,
		ColorsSet: r.NoColor,
		WidthLimit: printer.WidthLimit{
			Disabled: r.WidthLimit.Disabled,
			Columns:  r.WidthLimit.Columns,
		},
		FallbackWidth: r.FallbackWidth,
		Theme:         r.Theme,
		Indent:        r.Indent,
		AlignColumn:   r.AlignColumn,
	}
}

// RenderOptions returns the table rendering options for the resolved theme.
func (r *ResolvedConfig) RenderOptions() table.RenderOptions {
	opts := table.DefaultRenderOptions()
	opts.Theme = r.Theme
	opts.Align = r.TableAlign
	return opts
}

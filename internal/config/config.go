package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/printer/pkg/design"
)

// FileName is the configuration file looked up in the working directory and then in
// the user config directory under "printer".
const FileName = ".printer.yaml"

// Constants for default values.
const (
	DefaultThemeName        = "default"
	DefaultFallbackWidth    = 80
	DefaultIndent           = 4
	DefaultTableColumnLimit = 40
	DefaultProgressWidth    = 20
)

// FsFactory supplies the file system configuration is read from. Tests swap it for an
// in-memory file system.
var FsFactory = func() afero.Fs { return afero.NewOsFs() }

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	NoColor   bool
	Width     int
	ThemeName string
	Debug     bool

	// Flags to track if they were explicitly set by the user
	NoColorSet bool
	WidthSet   bool
	DebugSet   bool
}

// WidthLimit is the width_limit key. In YAML it is either a bool (true wraps at the
// detected width, false disables wrapping) or an int (wrap at that many columns).
type WidthLimit struct {
	Disabled bool
	Columns  int
}

// UnmarshalYAML accepts a bool or a non-negative int. Zero columns disables wrapping.
func (w *WidthLimit) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("width_limit: line %d: expected bool or int", node.Line)
	}
	var b bool
	if node.ShortTag() == "!!bool" {
		if err := node.Decode(&b); err != nil {
			return err
		}
		*w = WidthLimit{Disabled: !b}
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("width_limit: line %d: expected bool or int, got %q", node.Line, node.Value)
	}
	return w.setColumns(n)
}

// MarshalYAML writes the bool form unless a column count is fixed.
func (w WidthLimit) MarshalYAML() (any, error) {
	if w.Columns > 0 {
		return w.Columns, nil
	}
	return !w.Disabled, nil
}

func (w *WidthLimit) setColumns(n int) error {
	if n < 0 {
		return fmt.Errorf("width_limit: must not be negative, got %d", n)
	}
	*w = WidthLimit{Columns: n, Disabled: n == 0}
	return nil
}

// TableConfig holds the table section.
type TableConfig struct {
	ColumnLimit *int   `yaml:"column_limit"` // 0 means no limit
	Align       string `yaml:"align"`
}

// ProgressConfig holds the progress section.
type ProgressConfig struct {
	Width int `yaml:"width"`
}

// StyleOverrides replaces individual theme styles. Unset keys keep the theme's style.
type StyleOverrides struct {
	Key         *design.Style `yaml:"key"`
	Value       *design.Style `yaml:"value"`
	Title       *design.Style `yaml:"title"`
	Rule        *design.Style `yaml:"rule"`
	TableName   *design.Style `yaml:"table_name"`
	TableHeader *design.Style `yaml:"table_header"`
	Border      *design.Style `yaml:"border"`
	Progress    *design.Style `yaml:"progress"`
	Error       *design.Style `yaml:"error"`
}

func (s StyleOverrides) apply(t *design.Theme) {
	set := func(dst *design.Style, src *design.Style) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.Key, s.Key)
	set(&t.Value, s.Value)
	set(&t.Title, s.Title)
	set(&t.Rule, s.Rule)
	set(&t.TableName, s.TableName)
	set(&t.TableHeader, s.TableHeader)
	set(&t.Border, s.Border)
	set(&t.Progress, s.Progress)
	set(&t.Error, s.Error)
}

// AppConfig represents the contents of .printer.yaml.
type AppConfig struct {
	// Colors false disables escapes. true leaves the decision to terminal detection.
	Colors        *bool          `yaml:"colors"`
	WidthLimit    WidthLimit     `yaml:"width_limit"`
	FallbackWidth int            `yaml:"fallback_width"`
	Theme         string         `yaml:"theme"`
	Styles        StyleOverrides `yaml:"styles"`
	Indent        int            `yaml:"indent"`
	AlignColumn   int            `yaml:"align_column"`
	Table         TableConfig    `yaml:"table"`
	Progress      ProgressConfig `yaml:"progress"`
	Debug         bool           `yaml:"debug"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// DefaultAppConfig returns the configuration used when no file is found.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		FallbackWidth: DefaultFallbackWidth,
		Theme:         DefaultThemeName,
		Indent:        DefaultIndent,
		Table:         TableConfig{ColumnLimit: intPtr(DefaultTableColumnLimit), Align: "left"},
		Progress:      ProgressConfig{Width: DefaultProgressWidth},
	}
}

// LoadConfig reads .printer.yaml from the first location that has one and merges it over
// the defaults. A missing file is not an error. A file that cannot be read or parsed is.
func LoadConfig() (*AppConfig, error) {
	fsys := FsFactory()
	appCfg := DefaultAppConfig()
	logger := log.With().Str("component", "config").Logger()

	configPath := getConfigPath(fsys)
	if configPath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return appCfg, nil
	}

	data, err := afero.ReadFile(fsys, configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
	}

	merge(appCfg, &fileCfg)
	appCfg.Path = configPath
	logger.Debug().Str("path", configPath).Str("theme", appCfg.Theme).Msg("Loaded config")
	return appCfg, nil
}

// merge copies the settings present in the file onto the defaults.
func merge(dst, src *AppConfig) {
	if src.Colors != nil {
		c := *src.Colors
		dst.Colors = &c
	}
	dst.WidthLimit = src.WidthLimit
	if src.FallbackWidth != 0 {
		dst.FallbackWidth = src.FallbackWidth
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	dst.Styles = src.Styles
	if src.Indent != 0 {
		dst.Indent = src.Indent
	}
	if src.AlignColumn != 0 {
		dst.AlignColumn = src.AlignColumn
	}
	if src.Table.ColumnLimit != nil {
		dst.Table.ColumnLimit = intPtr(*src.Table.ColumnLimit)
	}
	if src.Table.Align != "" {
		dst.Table.Align = src.Table.Align
	}
	if src.Progress.Width != 0 {
		dst.Progress.Width = src.Progress.Width
	}
	dst.Debug = src.Debug
}

func intPtr(v int) *int { return &v }

// getConfigPath returns the local .printer.yaml if present, then the one under
// $XDG_CONFIG_HOME (or the platform user config dir), or "" when neither exists.
func getConfigPath(fsys afero.Fs) string {
	if exists(fsys, FileName) {
		return FileName
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		configHome = dir
	}
	if configHome == "" || configHome == "/" {
		return ""
	}

	xdgPath := filepath.Join(configHome, "printer", FileName)
	if exists(fsys, xdgPath) {
		return xdgPath
	}
	return ""
}

func exists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debug().Err(err).Str("path", path).Msg("Cannot stat config file")
		}
		return false
	}
	return !info.IsDir()
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// noColorEnv follows the NO_COLOR convention: any non-empty value disables colors.
// PRINTER_NO_COLOR is parsed as a bool and takes precedence.
func noColorEnv() *bool {
	if b := getEnvBool("PRINTER_NO_COLOR"); b != nil {
		return b
	}
	if os.Getenv("NO_COLOR") != "" {
		t := true
		return &t
	}
	return nil
}

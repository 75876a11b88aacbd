package config

import (
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/printer/pkg/design"
)

// useFs points config loading at an in-memory file system holding files, and isolates the
// environment variables config reads.
func useFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fsys })
	t.Cleanup(stubs.Reset)

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	for _, key := range []string{"PRINTER_NO_COLOR", "NO_COLOR", "PRINTER_WIDTH", "PRINTER_THEME", "PRINTER_DEBUG"} {
		t.Setenv(key, "")
	}
	return fsys
}

func TestGetConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	xdgPath := filepath.Join("/xdg", "printer", FileName)
	fsys := useFs(t, map[string]string{
		FileName: "theme: ascii\n",
		xdgPath:  "theme: classic\n",
	})

	assert.Equal(t, FileName, getConfigPath(fsys))
}

func TestGetConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	xdgPath := filepath.Join("/xdg", "printer", FileName)
	fsys := useFs(t, map[string]string{xdgPath: "theme: classic\n"})

	assert.Equal(t, xdgPath, getConfigPath(fsys))
}

func TestGetConfigPath_ReturnsEmpty_When_NoConfigAvailable(t *testing.T) {
	fsys := useFs(t, nil)
	require.NoError(t, fsys.MkdirAll(FileName, 0o755))

	assert.Empty(t, getConfigPath(fsys), "a directory named like the file is ignored")
}

func TestLoadConfig_ReturnsDefaults_When_NoConfigFound(t *testing.T) {
	useFs(t, nil)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
	assert.Empty(t, cfg.Path)
}

func TestLoadConfig_MergesYAMLOverrides_When_FilePresent(t *testing.T) {
	useFs(t, map[string]string{FileName: `
colors: false
width_limit: 100
theme: classic
indent: 2
styles:
  key: bold+red
table:
  align: right
progress:
  width: 30
`})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.NotNil(t, cfg.Colors)
	assert.False(t, *cfg.Colors)
	assert.Equal(t, WidthLimit{Columns: 100}, cfg.WidthLimit)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, 2, cfg.Indent)
	require.NotNil(t, cfg.Styles.Key)
	assert.Equal(t, design.Bold.With(design.Red), *cfg.Styles.Key)
	assert.Equal(t, "right", cfg.Table.Align)
	require.NotNil(t, cfg.Table.ColumnLimit)
	assert.Equal(t, DefaultTableColumnLimit, *cfg.Table.ColumnLimit, "unset keys keep defaults")
	assert.Equal(t, 30, cfg.Progress.Width)
	assert.Equal(t, DefaultFallbackWidth, cfg.FallbackWidth)
	assert.Equal(t, FileName, cfg.Path)
}

func TestLoadConfig_Fails_When_FileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not yaml", content: "theme: [unclosed\n"},
		{name: "unknown style", content: "styles:\n  key: magenta\n"},
		{name: "width limit map", content: "width_limit:\n  columns: 3\n"},
		{name: "negative width limit", content: "width_limit: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useFs(t, map[string]string{FileName: tt.content})

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), FileName)
		})
	}
}

func TestWidthLimit_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want WidthLimit
	}{
		{in: "true", want: WidthLimit{}},
		{in: "false", want: WidthLimit{Disabled: true}},
		{in: "72", want: WidthLimit{Columns: 72}},
		{in: "0", want: WidthLimit{Disabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			var got struct {
				W WidthLimit `yaml:"width_limit"`
			}
			require.NoError(t, yaml.Unmarshal([]byte("width_limit: "+tt.in), &got))
			assert.Equal(t, tt.want, got.W)
		})
	}
}

func TestWidthLimit_MarshalYAML(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(map[string]WidthLimit{
		"a": {},
		"b": {Disabled: true},
		"c": {Columns: 60},
	})
	require.NoError(t, err)
	assert.Equal(t, "a: true\nb: false\nc: 60\n", string(out))
}

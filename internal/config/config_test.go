package config

import (
	"os"
	"path/filepath"
	"testing"

	"easyExcel/internal/host"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config should be written")

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfig_FillsMissingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[host]
visible = true
enable_events = true

[sheets]
strict_names = true

[format]
max_color = "#0000FF"
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "excelize", cfg.Host.Backend)
	assert.Equal(t, host.Flags{Visible: true, EnableEvents: true}, cfg.Flags())
	assert.True(t, cfg.Sheets.StrictNames)
	assert.False(t, cfg.Sheets.RollbackInvalidSheet)
	assert.True(t, cfg.Format.CenterMerged)
	assert.Equal(t, 4, cfg.UI.ColumnsPerRow)
	assert.Equal(t, "info", cfg.Log.Level)

	scale := cfg.ColorScale()
	assert.Equal(t, "#0000FF", scale.Max.Color)
	assert.Equal(t, host.DefaultColorScale().Min, scale.Min)
	assert.Equal(t, host.DefaultColorScale().Mid, scale.Mid)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"backend": "[host]\nbackend = \"libreoffice\"\n",
		"color":   "[format]\nmin_color = \"crimson\"\n",
		"level":   "[log]\nlevel = \"chatty\"\n",
		"syntax":  "[host\n",
		"grid":    "[ui]\ncolumns_per_row = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfig_RoundTripsEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Host.Backend = "com"
	cfg.Sheets.RollbackInvalidSheet = true
	cfg.Format.CenterMerged = false
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "com", loaded.Host.Backend)
	assert.True(t, loaded.Sheets.RollbackInvalidSheet)
	assert.False(t, loaded.Format.CenterMerged)
}

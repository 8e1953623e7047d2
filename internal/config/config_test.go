package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masterplan/internal/canvas"
)

func load(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg, err := Load(NewFlagSet("test"), args)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := load(t)
	opts, err := cfg.CanvasOptions()
	require.NoError(t, err)
	assert.Equal(t, canvas.DefaultOptions(), opts)
	assert.Empty(t, cfg.Plan())
	assert.False(t, cfg.Debug())
	assert.Equal(t, "masterplan-debug.log", cfg.DebugLog())
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MASTERPLAN_MAX_ZOOM", "4")
	t.Setenv("MASTERPLAN_MIN_ZOOM", "0.5")
	t.Setenv("MASTERPLAN_BOUNDS", "none")

	cfg := load(t, "--max-zoom", "6", "--fine-wheel", "plots.json")
	opts, err := cfg.CanvasOptions()
	require.NoError(t, err)
	assert.Equal(t, 6.0, opts.MaxZoom)
	assert.Equal(t, 0.5, opts.MinZoom)
	assert.Equal(t, canvas.BoundsNone, opts.Bounds.Mode)
	assert.True(t, opts.FineWheel)
	assert.Equal(t, "plots.json", cfg.Plan())
}

func TestPlanFlagWinsOverPositional(t *testing.T) {
	cfg := load(t, "--plan", "a.svg", "b.svg")
	assert.Equal(t, "a.svg", cfg.Plan())

	_, err := Load(NewFlagSet("test"), []string{"a.svg", "b.svg"})
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "viewer.env")
	body := "MIN_ZOOM=0.2\nBOUNDS=-100,100,-50,50\nROWS=rows.json\nDEBUG=true\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg := load(t, "--config", p)
	opts, err := cfg.CanvasOptions()
	require.NoError(t, err)
	assert.Equal(t, 0.2, opts.MinZoom)
	assert.Equal(t, canvas.Bounds{Mode: canvas.BoundsExplicit, Left: -100, Right: 100, Top: -50, Bottom: 50}, opts.Bounds)
	assert.Equal(t, "rows.json", cfg.Rows())
	assert.True(t, cfg.Debug())

	_, err = Load(NewFlagSet("test"), []string{"--config", filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestInvalidOptions(t *testing.T) {
	cfg := load(t, "--min-zoom", "3", "--max-zoom", "2")
	_, err := cfg.CanvasOptions()
	assert.ErrorIs(t, err, canvas.ErrInvalidOptions)

	cfg = load(t, "--bounds", "1,2")
	_, err = cfg.CanvasOptions()
	assert.ErrorIs(t, err, canvas.ErrInvalidOptions)

	_, err = Load(NewFlagSet("test"), []string{"--margin", "lots"})
	assert.Error(t, err)
}

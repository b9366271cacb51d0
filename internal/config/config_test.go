package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"metallic": 1,
		"roughness": 0.3,
		"tone_map": "unreal",
		"render_size": 128
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Resolve(Flags{Metallic: -1, Roughness: -1})

	assert.Equal(t, 1.0, cfg.Metallic)
	assert.Equal(t, 0.3, cfg.Roughness)
	assert.Equal(t, "unreal", cfg.ToneMap)
	assert.Equal(t, 128, cfg.RenderSize)

	// Defaults fill whatever the file left unset.
	assert.Equal(t, [3]float64{0.8, 0.8, 0.8}, cfg.Albedo)
	assert.Equal(t, 1.0, cfg.Exposure)
	assert.Equal(t, 1.0, cfg.EnergyCompensation)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, "render.webp", cfg.Output)
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{Metallic: 1, RenderSize: 256, ToneMap: "aces"}
	cfg.Resolve(Flags{Metallic: 0, Roughness: 0.75, Size: 64, ToneMap: "linear", Output: "out.png"})

	assert.Equal(t, 0.0, cfg.Metallic)
	assert.Equal(t, 0.75, cfg.Roughness)
	assert.Equal(t, 64, cfg.RenderSize)
	assert.Equal(t, "linear", cfg.ToneMap)
	assert.Equal(t, "out.png", cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable material, lighting, and render settings.
type Config struct {
	// Material
	Albedo             [3]float64 `json:"albedo"`
	Metallic           float64    `json:"metallic"`
	Roughness          float64    `json:"roughness"`
	ClearCoat          float64    `json:"clear_coat"`
	ClearCoatRoughness float64    `json:"clear_coat_roughness"`
	Anisotropy         float64    `json:"anisotropy"`
	Emissive           [3]float64 `json:"emissive"`
	EnergyCompensation float64    `json:"energy_compensation"` // enable factor in [0,1]
	ExactVisibility    bool       `json:"exact_visibility"`

	// Lighting. LightDir/LightColor configure the primary directional
	// light; ExtraLights appends more.
	LightDir         [3]float64         `json:"light_dir"`
	LightColor       [3]float64         `json:"light_color"`
	ExtraLights      []DirectionalLight `json:"extra_lights"`
	PointLights      []PointLight       `json:"point_lights"`
	IndirectDiffuse  float64            `json:"indirect_diffuse"`
	IndirectSpecular float64            `json:"indirect_specular"`
	Exposure         float64            `json:"exposure"`
	ToneMap          string             `json:"tone_map"`

	// Assets
	EnvMap string `json:"env_map"` // equirectangular image path, empty = gradient sky
	Mesh   string `json:"mesh"`    // glTF path, empty = built-in UV sphere

	// Render settings
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	Workers     int    `json:"workers"`
	DFGSize     int    `json:"dfg_size"` // 0 = analytic approximation
	Output      string `json:"output"`
}

// DirectionalLight is an authored light at infinity. Direction is in view
// space and points from the surface toward the light.
type DirectionalLight struct {
	Direction [3]float64 `json:"direction"`
	Color     [3]float64 `json:"color"`
}

// PointLight is an authored punctual light. Position is in view space,
// matching the directional light convention.
type PointLight struct {
	Position [3]float64 `json:"position"`
	Color    [3]float64 `json:"color"`
	Range    float64    `json:"range"`
}

// Default returns the starting configuration. Unmarshal overlays file
// values on top of it, so keys absent from the file keep these values
// rather than Go zeros.
func Default() Config {
	return Config{EnergyCompensation: 1}
}

// Load reads a JSON config file and returns Config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Metallic  float64
	Roughness float64
	EnvMap    string
	Mesh      string
	ToneMap   string
	Size      int
	Workers   int
	Output    string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Metallic >= 0 {
		c.Metallic = flags.Metallic
	}
	if flags.Roughness >= 0 {
		c.Roughness = flags.Roughness
	}
	if flags.EnvMap != "" {
		c.EnvMap = flags.EnvMap
	}
	if flags.Mesh != "" {
		c.Mesh = flags.Mesh
	}
	if flags.ToneMap != "" {
		c.ToneMap = flags.ToneMap
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}

	if c.Albedo == ([3]float64{}) {
		c.Albedo = [3]float64{0.8, 0.8, 0.8}
	}
	if c.LightDir == ([3]float64{}) {
		c.LightDir = [3]float64{0.5, 0.7, 0.5}
	}
	if c.LightColor == ([3]float64{}) {
		c.LightColor = [3]float64{3, 3, 3}
	}
	if c.IndirectDiffuse <= 0 {
		c.IndirectDiffuse = 1
	}
	if c.IndirectSpecular <= 0 {
		c.IndirectSpecular = 1
	}
	if c.Exposure <= 0 {
		c.Exposure = 1
	}
	if c.ToneMap == "" {
		c.ToneMap = "aces"
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Output == "" {
		c.Output = "render.webp"
	}
}

// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration: the per-tick parameter block
// delivered to every kernel as a uniform, plus the environment-init record
// consumed once at startup.
type Config struct {
	Params      Params          `yaml:"params"`
	Environment EnvironmentInit `yaml:"environment"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// Params is the flat parameter record (spec §6): physics coefficients,
// diffusion rates, mutation rates, rendering toggles, camera, epoch, seed.
// Every field here is immutable for the duration of a tick.
type Params struct {
	// Physics
	DT                  float64 `yaml:"dt"` // currently unused: model is dt-independent
	Drag                float64 `yaml:"drag"`
	EnergyCost          float64 `yaml:"energy_cost"`
	AminoMaintenanceCost float64 `yaml:"amino_maintenance_cost"`
	FoodPower           float64 `yaml:"food_power"`
	PoisonPower         float64 `yaml:"poison_power"`
	RepulsionStrength   float64 `yaml:"repulsion_strength"`
	GammaStrength       float64 `yaml:"gamma_strength"`
	PropWashStrength    float64 `yaml:"prop_wash_strength"`
	VMax                float64 `yaml:"vmax"`
	OmegaMax            float64 `yaml:"omega_max"`
	DeltaMax            float64 `yaml:"delta_max"`

	// Rates
	SpawnProbability float64 `yaml:"spawn_probability"`
	DeathProbability float64 `yaml:"death_probability"`
	MutationRate     float64 `yaml:"mutation_rate"`
	PairingCost      float64 `yaml:"pairing_cost"`

	// Counts
	MaxAgents     int   `yaml:"max_agents"`
	AgentCount    int   `yaml:"agent_count"`
	CPUSpawnCount int   `yaml:"cpu_spawn_count"`
	RandomSeed    int64 `yaml:"random_seed"`
	Epoch         int64 `yaml:"epoch"`

	// Grid
	GridSize                float64 `yaml:"grid_size"` // world-space span covered by the grid
	GridResolution          int     `yaml:"grid_resolution"`
	AlphaBlur               float64 `yaml:"alpha_blur"`
	BetaBlur                float64 `yaml:"beta_blur"`
	GammaBlur               float64 `yaml:"gamma_blur"`
	AlphaSlopeBias          float64 `yaml:"alpha_slope_bias"`
	BetaSlopeBias           float64 `yaml:"beta_slope_bias"`
	AlphaMultiplier         float64 `yaml:"alpha_multiplier"`
	BetaMultiplier          float64 `yaml:"beta_multiplier"`
	ChemicalSlopeScaleAlpha float64 `yaml:"chemical_slope_scale_alpha"`
	ChemicalSlopeScaleBeta  float64 `yaml:"chemical_slope_scale_beta"`

	// Trail
	TrailDiffusion float64 `yaml:"trail_diffusion"`
	TrailDecay     float64 `yaml:"trail_decay"`
	TrailOpacity   float64 `yaml:"trail_opacity"`
	TrailShow      bool    `yaml:"trail_show"`

	// Rendering
	DebugMode           bool    `yaml:"debug_mode"`
	VisualStride        int     `yaml:"visual_stride"`
	CameraZoom          float64 `yaml:"camera_zoom"`
	CameraPanX          float64 `yaml:"camera_pan_x"`
	CameraPanY          float64 `yaml:"camera_pan_y"`
	WindowWidth         int     `yaml:"window_width"`
	WindowHeight        int     `yaml:"window_height"`
	SelectedAgentIndex  int32   `yaml:"selected_agent_index"`
	ShowAlpha           bool    `yaml:"show_alpha"`
	ShowBeta            bool    `yaml:"show_beta"`
	ShowGamma           bool    `yaml:"show_gamma"`
	AlphaTint           [3]float64 `yaml:"alpha_tint"`
	BetaTint            [3]float64 `yaml:"beta_tint"`
	GammaTint           [3]float64 `yaml:"gamma_tint"`
	ChannelGamma        float64 `yaml:"channel_gamma"`
	SlopeLightDirX      float64 `yaml:"slope_light_dir_x"`
	SlopeLightDirY      float64 `yaml:"slope_light_dir_y"`
	SlopeLightStrength  float64 `yaml:"slope_light_strength"`
	AgentBlendMode      string  `yaml:"agent_blend_mode"` // comp | add | subtract | multiply
	AgentTint           [3]float64 `yaml:"agent_tint"`
	BackgroundColor     [3]float64 `yaml:"background_color"`

	// Noise
	PerlinNoiseScale    float64 `yaml:"perlin_noise_scale"`
	PerlinNoiseSpeed    float64 `yaml:"perlin_noise_speed"`
	PerlinNoiseContrast float64 `yaml:"perlin_noise_contrast"`

	// Feature flags
	InteriorIsotropic  bool `yaml:"interior_isotropic"`
	IgnoreStopCodons   bool `yaml:"ignore_stop_codons"`
	RequireStartCodon  bool `yaml:"require_start_codon"`
	AsexualReproduction bool `yaml:"asexual_reproduction"`
	DrawEnabled        bool `yaml:"draw_enabled"`
	GammaHidden        bool `yaml:"gamma_hidden"`
	SlopeDebug         bool `yaml:"slope_debug"`
	SlopeLighting      bool `yaml:"slope_lighting"`
	GammaDebug         bool `yaml:"gamma_debug"`
}

// GenParams describes one generator for an environment-init field: a flat
// value, or layered noise, applied to one or all channels.
type GenParams struct {
	Mode      int   `yaml:"mode"` // 0=all 1=alpha 2=beta 3=gamma
	Type      int   `yaml:"type"` // 0=flat 1=noise
	ValueBits uint32 `yaml:"value_bits"`
	Seed      int64 `yaml:"seed"`
}

// EnvironmentInit is the startup record consumed once to seed the
// environment grids (spec §6).
type EnvironmentInit struct {
	Resolution int   `yaml:"resolution"`
	Seed       int64 `yaml:"seed"`

	AlphaOctaves int `yaml:"alpha_octaves"`
	BetaOctaves  int `yaml:"beta_octaves"`
	GammaOctaves int `yaml:"gamma_octaves"`

	AlphaScale float64 `yaml:"alpha_scale"`
	BetaScale  float64 `yaml:"beta_scale"`
	GammaScale float64 `yaml:"gamma_scale"`

	AlphaContrast float64 `yaml:"alpha_contrast"`
	BetaContrast  float64 `yaml:"beta_contrast"`
	GammaContrast float64 `yaml:"gamma_contrast"`

	NoisePower float64 `yaml:"noise_power"`

	AlphaRange [2]float64 `yaml:"alpha_range"`
	BetaRange  [2]float64 `yaml:"beta_range"`
	GammaRange [2]float64 `yaml:"gamma_range"`

	TrailInitialColor [3]float64 `yaml:"trail_initial_color"`

	Generators []GenParams `yaml:"generators"` // gen_params triples, applied in order
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32
	MaxPartsF32 float32
	WorldSize   float64 // W, the fixed simulation-world span (not grid-space)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// WriteYAML writes the config back out as YAML, used to record the
// effective configuration alongside a run's telemetry output.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Params.DT)
	c.Derived.MaxPartsF32 = 64
	c.Derived.WorldSize = 30720
}

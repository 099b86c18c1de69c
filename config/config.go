// Package config provides configuration loading and access for the cloner
// demo: screen and camera settings, grid parameters, the effector stack, the
// template child set and the physics attachment mode.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/cloner/cloner"
	"github.com/pthm-cable/cloner/effectors"
	"github.com/pthm-cable/cloner/physics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Cloner    ClonerConfig    `yaml:"cloner"`
	Fracture  FractureConfig  `yaml:"fracture"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds the initial orbit camera pose.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Yaw      float32 `yaml:"yaw"`   // radians
	Pitch    float32 `yaml:"pitch"` // radians
	FOVY     float32 `yaml:"fovy"`  // degrees
}

// ClonerConfig configures the grid cloner instance.
type ClonerConfig struct {
	Enabled   bool                 `yaml:"enabled"`
	Grid      cloner.GridParams    `yaml:"grid"`
	Physics   PhysicsConfig        `yaml:"physics"`
	Effectors []effectors.Effector `yaml:"effectors"`
	Children  []cloner.ChildSpec   `yaml:"children"`
}

// FractureConfig configures the optional fracture group rendered next to the
// grid.
type FractureConfig struct {
	Enabled   bool                 `yaml:"enabled"`
	Effectors []effectors.Effector `yaml:"effectors"`
	Children  []cloner.ChildSpec   `yaml:"children"`
}

// TelemetryConfig holds stats and CSV output settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
	OutputDir   string  `yaml:"output_dir"`
}

// PhysicsConfig is either a bare mode string or a full body spec. In YAML:
//
//	physics: kinematicUntilTouch
//
// or
//
//	physics: {type: dynamic, mass: 2, friction: 0.5, lock_rotations: true}
type PhysicsConfig struct {
	Type          string  `yaml:"type"`
	Mass          float32 `yaml:"mass"`
	Friction      float32 `yaml:"friction"`
	LockRotations bool    `yaml:"lock_rotations"`
}

// UnmarshalYAML accepts the scalar shorthand or the mapping form.
func (p *PhysicsConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&p.Type)
	}
	type raw PhysicsConfig
	var r raw
	if err := value.Decode(&r); err != nil {
		return fmt.Errorf("decoding physics config: %w", err)
	}
	*p = PhysicsConfig(r)
	return nil
}

// Mode resolves the configured physics mode tag.
func (p *PhysicsConfig) Mode() (physics.Mode, error) {
	return physics.ParseMode(p.Type)
}

// Body returns the per-body physics properties.
func (p *PhysicsConfig) Body() physics.BodyParams {
	return physics.BodyParams{Mass: p.Mass, Friction: p.Friction, LockRotations: p.LockRotations}
}

// Load reads the embedded defaults and overlays the optional user file.
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
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	cfg.normalize()
	return cfg, nil
}

// normalize fills value defaults that YAML zero values would otherwise
// swallow.
func (c *Config) normalize() {
	normalizeEffectors(c.Cloner.Effectors)
	normalizeEffectors(c.Fracture.Effectors)
	if c.Screen.TargetFPS == 0 {
		c.Screen.TargetFPS = 60
	}
	if c.Camera.Distance == 0 {
		c.Camera.Distance = 30
	}
	if c.Camera.FOVY == 0 {
		c.Camera.FOVY = 45
	}
}

func normalizeEffectors(effs []effectors.Effector) {
	for i := range effs {
		if effs[i].Linear.Contour.Multiplier == 0 {
			effs[i].Linear.Contour.Multiplier = 1
		}
	}
}

// Global config instance, initialized once at startup.
var cfg *Config

// Init loads the configuration. Must be called before Cfg.
func Init(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Cfg returns the loaded configuration. Panics if Init was not called.
func Cfg() *Config {
	if cfg == nil {
		panic("config.Init not called")
	}
	return cfg
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bascule/internal/scene"
)

// EnvPrefix is prepended to every environment override, e.g.
// BASCULE_SCENE_OPENHOLD=20.
const EnvPrefix = "BASCULE"

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// WindowConfig holds desktop window settings
type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
	VSync  bool   `json:"vsync" mapstructure:"vsync"`
}

// AudioConfig holds mixer settings
type AudioConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

// SceneConfig holds the simulation values worth tweaking without a rebuild.
// Everything else stays at scene.DefaultTuning.
type SceneConfig struct {
	LiftSpeed     float64 `json:"liftSpeed" mapstructure:"liftSpeed"`
	PreLiftWait   float64 `json:"preLiftWait" mapstructure:"preLiftWait"`
	OpenHold      float64 `json:"openHold" mapstructure:"openHold"`
	PostCloseWait float64 `json:"postCloseWait" mapstructure:"postCloseWait"`
	BlendDuration float64 `json:"blendDuration" mapstructure:"blendDuration"`
	BoatSpeed     float64 `json:"boatSpeed" mapstructure:"boatSpeed"`
	MaxLiftAngle  float64 `json:"maxLiftAngle" mapstructure:"maxLiftAngle"`
	Seed          uint64  `json:"seed" mapstructure:"seed"`
}

// TelemetryConfig toggles the metrics pipeline
type TelemetryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// Settings is the full application configuration.
type Settings struct {
	Log       LogConfig       `json:"log" mapstructure:"log"`
	Window    WindowConfig    `json:"window" mapstructure:"window"`
	Audio     AudioConfig     `json:"audio" mapstructure:"audio"`
	Scene     SceneConfig     `json:"scene" mapstructure:"scene"`
	Telemetry TelemetryConfig `json:"telemetry" mapstructure:"telemetry"`
}

func setDefaults() {
	t := scene.DefaultTuning()

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.title", "Bascule")
	viper.SetDefault("window.vsync", true)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 1.0)

	viper.SetDefault("scene.liftSpeed", t.LiftSpeed)
	viper.SetDefault("scene.preLiftWait", t.PreLiftWait)
	viper.SetDefault("scene.openHold", t.OpenHold)
	viper.SetDefault("scene.postCloseWait", t.PostCloseWait)
	viper.SetDefault("scene.blendDuration", t.BlendDuration)
	viper.SetDefault("scene.boatSpeed", t.BoatSpeed)
	viper.SetDefault("scene.maxLiftAngle", t.MaxLiftAngleDeg)
	viper.SetDefault("scene.seed", t.Seed)

	viper.SetDefault("telemetry.enabled", false)
}

// Load reads configuration from path, if given, and the environment on top
// of the defaults. The file type follows the extension (json, yaml, toml).
func Load(path string) (Settings, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", s.Window.Width, s.Window.Height)
	}
	sc := s.Scene
	for name, v := range map[string]float64{
		"liftSpeed":     sc.LiftSpeed,
		"blendDuration": sc.BlendDuration,
		"boatSpeed":     sc.BoatSpeed,
		"maxLiftAngle":  sc.MaxLiftAngle,
	} {
		if !(v > 0) {
			return fmt.Errorf("config: scene.%s must be positive, got %v", name, v)
		}
	}
	for name, v := range map[string]float64{
		"preLiftWait":   sc.PreLiftWait,
		"openHold":      sc.OpenHold,
		"postCloseWait": sc.PostCloseWait,
	} {
		if v < 0 {
			return fmt.Errorf("config: scene.%s must not be negative, got %v", name, v)
		}
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume %v outside [0,1]", s.Audio.Volume)
	}
	return nil
}

// Tuning overlays the configured scene values onto scene.DefaultTuning.
func (s Settings) Tuning() scene.Tuning {
	t := scene.DefaultTuning()
	t.LiftSpeed = s.Scene.LiftSpeed
	t.PreLiftWait = s.Scene.PreLiftWait
	t.OpenHold = s.Scene.OpenHold
	t.PostCloseWait = s.Scene.PostCloseWait
	t.BlendDuration = s.Scene.BlendDuration
	t.BoatSpeed = s.Scene.BoatSpeed
	t.MaxLiftAngleDeg = s.Scene.MaxLiftAngle
	t.Seed = s.Scene.Seed
	return t
}

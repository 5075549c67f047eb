// Package config handles tool configuration loading and management.
package config

// Config holds all roadgrade settings.
type Config struct {
	Road    RoadConfig    `yaml:"road"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RoadConfig holds default road shape settings. A scene file can
// override any of them per road.
type RoadConfig struct {
	Width        float32         `yaml:"width"`
	Thickness    float32         `yaml:"thickness"`
	HitboxMargin float32         `yaml:"hitbox_margin"`
	Profile      string          `yaml:"profile"`   // basic | extended
	Direction    string          `yaml:"direction"` // averaged | forward
	Smoothing    SmoothingConfig `yaml:"smoothing"`
}

// SmoothingConfig holds default centerline smoothing settings.
type SmoothingConfig struct {
	Policy    string  `yaml:"policy"` // average | simplify | none
	Window    int     `yaml:"window"`
	Tolerance float32 `yaml:"tolerance"`
}

// OutputConfig holds output locations.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Road: RoadConfig{
			Width:        4,
			Thickness:    0.3,
			HitboxMargin: 0.25,
			Profile:      "basic",
			Direction:    "averaged",
			Smoothing: SmoothingConfig{
				Policy: "average",
				Window: 5,
			},
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

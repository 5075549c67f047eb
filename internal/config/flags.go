package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagOut     = flag.String("out", "", "Output directory")
	flagProfile = flag.String("profile", "", "Cross-section profile (basic or extended)")
	flagWidth   = flag.Float64("width", 0, "Road width override")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagProfile != "" {
		cfg.Road.Profile = *flagProfile
	}
	if *flagWidth > 0 {
		cfg.Road.Width = float32(*flagWidth)
	}
}

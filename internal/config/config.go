// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds the geometry pipeline parameters.
type ConvertConfig struct {
	ZScale          float64 `yaml:"z_scale"`          // Elevation multiplier
	SeaLevel        float64 `yaml:"sea_level"`        // Ocean plane height (0-100)
	InsertCentroids bool    `yaml:"insert_centroids"` // Extra vertex per cell center
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Preview     bool   `yaml:"preview"`
	PreviewSize int    `yaml:"preview_size"` // Preview image width in pixels
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			ZScale:   0.1,
			SeaLevel: 10,
		},
		Output: OutputConfig{
			Dir:         ".",
			Preview:     false,
			PreviewSize: 1024,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

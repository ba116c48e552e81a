// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	RPC     RPCConfig     `yaml:"rpc"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// RPCConfig holds the remote-control server settings.
type RPCConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
	Capture bool `yaml:"capture"` // gates the capture_frame method
}

// ViewerConfig holds the initial display toggles.
type ViewerConfig struct {
	Wireframe bool `yaml:"wireframe"`
	Backfaces bool `yaml:"backfaces"`
	ShowUI    bool `yaml:"show_ui"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			VSync:  true,
		},
		RPC: RPCConfig{
			Enabled: true,
			Port:    9001,
			Capture: false,
		},
		Viewer: ViewerConfig{
			Wireframe: true,
			Backfaces: false,
			ShowUI:    true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

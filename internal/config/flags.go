package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagPort    = flag.Int("port", 0, "RPC server port")
	flagNoRPC   = flag.Bool("no-rpc", false, "Disable the RPC server")
	flagCapture = flag.Bool("capture", false, "Enable the capture_frame RPC method")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagMesh    = flag.String("mesh", "", "Mesh name inside a multi-mesh GLB/glTF file")
	flagStats   = flag.Bool("stats", false, "Print mesh statistics and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// MeshName returns the -mesh selector for multi-mesh files.
func MeshName() string {
	return *flagMesh
}

// StatsOnly reports whether -stats was given: load the mesh, print its
// statistics, and exit without opening a window.
func StatsOnly() bool {
	return *flagStats
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPort > 0 {
		cfg.RPC.Port = *flagPort
	}
	if *flagNoRPC {
		cfg.RPC.Enabled = false
	}
	if *flagCapture {
		cfg.RPC.Capture = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}

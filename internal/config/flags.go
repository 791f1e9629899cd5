package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMaxVerts = flag.Int("max-verts", 0, "Maximum vertices per part")
	flagOut      = flag.String("out", "", "Output directory")
	flagPreview  = flag.Bool("preview", false, "Write a WebP preview of each split")
	flagPlane    = flag.String("plane", "", "Preview projection plane (xy, xz, yz)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// CommandFlags returns a flag set for one command that takes the same
// overrides as the global flags, so they may also follow the command name.
// Values already parsed from the global flags are kept as defaults.
func CommandFlags(command string) *flag.FlagSet {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.StringVar(flagConfig, "config", *flagConfig, "Path to config file")
	fs.BoolVar(flagDebug, "debug", *flagDebug, "Enable debug logging")
	fs.IntVar(flagMaxVerts, "max-verts", *flagMaxVerts, "Maximum vertices per part")
	fs.StringVar(flagOut, "out", *flagOut, "Output directory")
	fs.BoolVar(flagPreview, "preview", *flagPreview, "Write a WebP preview of each split")
	fs.StringVar(flagPlane, "plane", *flagPlane, "Preview projection plane (xy, xz, yz)")
	return fs
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
	if *flagMaxVerts > 0 {
		cfg.Split.MaxVerts = *flagMaxVerts
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagPreview {
		cfg.Preview.Enabled = true
	}
	if *flagPlane != "" {
		cfg.Preview.Plane = *flagPlane
	}
}

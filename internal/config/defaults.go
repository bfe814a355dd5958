package config

const (
	defaultWatchDir       = "~/.cache/snapflow/photos"
	defaultLogDir         = "~/.local/share/snapflow/logs"
	defaultExtension      = "jpg"
	defaultFilenameLayout = "dash"
	defaultExiftoolBinary = "exiftool"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir: defaultWatchDir,
			LogDir:   defaultLogDir,
		},
		Capture: Capture{
			Extension:      defaultExtension,
			FilenameLayout: defaultFilenameLayout,
			ExiftoolBinary: defaultExiftoolBinary,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

package config

import (
	"errors"
	"fmt"
)

var validExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"dng":  true,
}

var validLayouts = map[string]bool{
	"dash":       true,
	"underscore": true,
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.WatchDir == "" {
		return errors.New("paths.watch_dir must be set")
	}
	if !validExtensions[c.Capture.Extension] {
		return fmt.Errorf("capture.extension %q is not supported (jpg, jpeg, dng)", c.Capture.Extension)
	}
	if !validLayouts[c.Capture.FilenameLayout] {
		return fmt.Errorf("capture.filename_layout %q is not supported (dash, underscore)", c.Capture.FilenameLayout)
	}
	if c.Capture.ExiftoolBinary == "" {
		return errors.New("capture.exiftool_binary must not be empty")
	}
	switch c.Logging.Format {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format %q is not supported (console, json)", c.Logging.Format)
	}
	return nil
}

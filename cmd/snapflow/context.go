package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"snapflow/internal/config"
	"snapflow/internal/services"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// resolveCatalogPath picks the catalog source from the flag or the config
// default and verifies it is an existing regular file.
func (c *commandContext) resolveCatalogPath(flagValue string) (string, error) {
	path := strings.TrimSpace(flagValue)
	if path == "" {
		cfg, err := c.ensureConfig()
		if err != nil {
			return "", err
		}
		path = cfg.Paths.Catalog
	}
	if path == "" {
		return "", services.Wrap(services.ErrConfiguration, "catalog", "resolve",
			"no catalog given (use --catalog or set paths.catalog)", nil)
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "catalog", "resolve", "", err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrConfiguration, "catalog", "resolve",
				fmt.Sprintf("catalog file %s does not exist", expanded), nil)
		}
		return "", services.Wrap(services.ErrConfiguration, "catalog", "resolve", "", err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrConfiguration, "catalog", "resolve",
			fmt.Sprintf("catalog path %s is a directory", expanded), nil)
	}
	return expanded, nil
}

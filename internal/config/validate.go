package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateQBittorrent(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.BaseDir == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/qbsort/config.toml"
		}
		return fmt.Errorf("paths.base_dir is required. Edit %s (create with 'qbsort config init')", defaultPath)
	}
	// Normalization backfills blank subdirectories, so these only trip on
	// values that trim to nothing.
	if c.Paths.MoviesDir == "" {
		return errors.New("paths.movies_dir must be set")
	}
	if c.Paths.TVDir == "" {
		return errors.New("paths.tv_dir must be set")
	}
	if c.Paths.OtherDir == "" {
		return errors.New("paths.other_dir must be set")
	}
	return nil
}

func (c *Config) validateCategories() error {
	if c.Categories.TV == "" {
		return errors.New("categories.tv must be set")
	}
	if c.Categories.Movie == "" {
		return errors.New("categories.movie must be set")
	}
	if c.Categories.Other == "" {
		return errors.New("categories.other must be set")
	}
	return nil
}

func (c *Config) validateQBittorrent() error {
	if c.QBittorrent.Host == "" {
		return errors.New("qbittorrent.host must be set")
	}
	if c.QBittorrent.Port < 1 || c.QBittorrent.Port > 65535 {
		return fmt.Errorf("qbittorrent.port must be between 1 and 65535, got %d", c.QBittorrent.Port)
	}
	if c.QBittorrent.RequestTimeout <= 0 {
		return errors.New("qbittorrent.request_timeout must be positive (seconds)")
	}
	return nil
}

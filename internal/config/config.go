package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configDir = ".cricsync"

// Models selects which Gemini variant serves each call class.
type Models struct {
	// Search is the stronger model used for web-grounded fixture lookup.
	Search string `yaml:"search"`
	// Fast serves text/image extraction and all content generation.
	Fast string `yaml:"fast"`
	// Image is the image-generation model for posters.
	Image string `yaml:"image"`
}

// Team is the user's team profile, used as search context and as the
// home-team fallback during normalization.
type Team struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
	Captain  string `yaml:"captain"`
}

// Defaults pre-fill the WhatsApp message options.
type Defaults struct {
	Fees      string `yaml:"fees"`
	PayTo     string `yaml:"pay_to"`
	BallColor string `yaml:"ball_color"`
	Header    string `yaml:"header"`
}

// Settings is the YAML configuration structure.
type Settings struct {
	Server struct {
		Addr   string `yaml:"addr"`
		DBPath string `yaml:"db_path"`
	} `yaml:"server"`
	Team     Team     `yaml:"team"`
	Defaults Defaults `yaml:"defaults"`
	Models   Models   `yaml:"models"`
}

// Default returns the settings used when no file exists yet.
func Default() *Settings {
	s := &Settings{}
	s.Server.Addr = ":8080"
	s.Server.DBPath = filepath.Join(configDir, "cricsync.db")
	s.Defaults.BallColor = "White"
	s.Defaults.Header = "Upcoming Match"
	s.Models.Search = "gemini-3-pro-preview"
	s.Models.Fast = "gemini-2.5-flash"
	s.Models.Image = "gemini-2.5-flash-image"
	return s
}

// Load reads settings from path, or from .cricsync/settings.yaml when path
// is empty. A missing default file yields Default(); a missing explicit
// file is an error.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if path == "" {
		path = filepath.Join(configDir, "settings.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings YAML: %w", err)
	}
	return s, nil
}

// EnsureConfigExists writes the default settings file on first run so users
// have something to edit.
func EnsureConfigExists() error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, "settings.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default settings: %w", err)
	}
	return nil
}

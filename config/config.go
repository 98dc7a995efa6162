package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MIDIConfig defines how playback connects to an output port
type MIDIConfig struct {
	PreferredPorts []string `json:"preferredPorts,omitempty"`
	ExcludedPorts  []string `json:"excludedPorts,omitempty"`
	Channel        uint8    `json:"channel,omitempty"`
	NoteMillis     int      `json:"noteMillis,omitempty"`
}

// QueryConfig stores the last computed fingering so a session resumes
// where it left off
type QueryConfig struct {
	Root     int    `json:"root"`
	Scale    string `json:"scale"`
	Mode     int    `json:"mode"`
	Pattern  int    `json:"pattern"`
	Extended bool   `json:"extended,omitempty"`
	Octave   bool   `json:"octave,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Tuning    string      `json:"tuning,omitempty"`
	Palette   string      `json:"palette,omitempty"`
	MIDI      MIDIConfig  `json:"midi,omitempty"`
	LastQuery QueryConfig `json:"lastQuery,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tuning: "standard",
		MIDI: MIDIConfig{
			ExcludedPorts: []string{"Midi Through", "Through Port", "Dummy"},
			Channel:       0,
			NoteMillis:    250,
		},
		LastQuery: QueryConfig{
			Root:    0,
			Scale:   "Major",
			Pattern: 1,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fretwork"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// fillDefaults patches zero values so a hand-edited config can't leave
// playback or lookups silently dead
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Tuning == "" {
		c.Tuning = def.Tuning
	}
	if c.MIDI.NoteMillis <= 0 {
		c.MIDI.NoteMillis = def.MIDI.NoteMillis
	}
	if c.LastQuery.Scale == "" {
		c.LastQuery = def.LastQuery
	}
	if c.LastQuery.Pattern == 0 {
		c.LastQuery.Pattern = 1
	}
}

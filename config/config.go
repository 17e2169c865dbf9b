package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// AudioConfig describes the host block clock
type AudioConfig struct {
	SampleRate uint32 `json:"sampleRate,omitempty"`
	BlockSize  uint32 `json:"blockSize,omitempty"`
}

// TransportConfig stores the startup tempo
type TransportConfig struct {
	Tempo float64 `json:"tempo,omitempty"`
}

// MIDIConfig names the ports used for live thru
type MIDIConfig struct {
	InputPort  string `json:"inputPort,omitempty"`
	OutputPort string `json:"outputPort,omitempty"`
}

// LogConfig controls the debug log
type LogConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"` // empty = ~/.config/go-midifx/debug.log
}

// Config is the main configuration structure
type Config struct {
	Audio       AudioConfig     `json:"audio,omitempty"`
	Transport   TransportConfig `json:"transport,omitempty"`
	MIDI        MIDIConfig      `json:"midi,omitempty"`
	Log         LogConfig       `json:"log,omitempty"`
	ProjectsDir string          `json:"projectsDir,omitempty"`
}

// Defaults
const (
	DefaultSampleRate uint32  = 48000
	DefaultBlockSize  uint32  = 512
	DefaultTempo      float64 = 120
)

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	c := &Config{}
	c.fillDefaults()
	return c
}

// fillDefaults sets zero fields to their defaults
func (c *Config) fillDefaults() {
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = DefaultSampleRate
	}
	if c.Audio.BlockSize == 0 {
		c.Audio.BlockSize = DefaultBlockSize
	}
	if c.Transport.Tempo == 0 {
		c.Transport.Tempo = DefaultTempo
	}
	if c.ProjectsDir == "" {
		if dir, err := ConfigDir(); err == nil {
			c.ProjectsDir = filepath.Join(dir, "projects")
		}
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-midifx"), nil
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
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if not found
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating the directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

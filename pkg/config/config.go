// Package config holds the virtualization settings a grid embedder tunes:
// buffer sizes, update thresholds, and the virtualization switches.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/gridport/pkg/viewport"
)

// Default values applied when a setting is omitted.
const (
	DefaultRowBuffer       = 3
	DefaultColumnBuffer    = 3
	DefaultRowThreshold    = 3
	DefaultColumnThreshold = 3
	DefaultColumnCacheSize = 8
	DefaultRowParamsCache  = 256
)

// Config is the complete gridport configuration.
type Config struct {
	// RowBuffer and ColumnBuffer are extra items rendered beyond the
	// tight window on each side.
	RowBuffer    int `yaml:"row_buffer"`
	ColumnBuffer int `yaml:"column_buffer"`

	// RowThreshold and ColumnThreshold are the minimum index deltas
	// before a new window replaces the committed one.
	RowThreshold    int `yaml:"row_threshold"`
	ColumnThreshold int `yaml:"column_threshold"`

	DisableVirtualization       bool `yaml:"disable_virtualization"`
	DisableColumnVirtualization bool `yaml:"disable_column_virtualization"`
	AutoHeight                  bool `yaml:"auto_height"`
	RightToLeft                 bool `yaml:"right_to_left"`

	ColumnCacheSize    int `yaml:"column_cache_size"`
	RowParamsCacheSize int `yaml:"row_params_cache_size"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		RowBuffer:          DefaultRowBuffer,
		ColumnBuffer:       DefaultColumnBuffer,
		RowThreshold:       DefaultRowThreshold,
		ColumnThreshold:    DefaultColumnThreshold,
		ColumnCacheSize:    DefaultColumnCacheSize,
		RowParamsCacheSize: DefaultRowParamsCache,
	}
}

// Load reads a YAML config file, applies defaults for omitted settings,
// and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Config{
		ColumnCacheSize:    DefaultColumnCacheSize,
		RowParamsCacheSize: DefaultRowParamsCache,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults(data)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults fills settings the file omitted. Zero is a meaningful value
// for buffers and thresholds, so presence is checked against the raw
// document rather than the zero value.
func (c *Config) applyDefaults(data []byte) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		raw = nil
	}
	if _, ok := raw["row_buffer"]; !ok {
		c.RowBuffer = DefaultRowBuffer
	}
	if _, ok := raw["column_buffer"]; !ok {
		c.ColumnBuffer = DefaultColumnBuffer
	}
	if _, ok := raw["row_threshold"]; !ok {
		c.RowThreshold = DefaultRowThreshold
	}
	if _, ok := raw["column_threshold"]; !ok {
		c.ColumnThreshold = DefaultColumnThreshold
	}
}

// Validate rejects settings the engine cannot honor.
func (c Config) Validate() error {
	if c.RowBuffer < 0 {
		return fmt.Errorf("row_buffer must be >= 0, got %d", c.RowBuffer)
	}
	if c.ColumnBuffer < 0 {
		return fmt.Errorf("column_buffer must be >= 0, got %d", c.ColumnBuffer)
	}
	if c.RowThreshold < 0 {
		return fmt.Errorf("row_threshold must be >= 0, got %d", c.RowThreshold)
	}
	if c.ColumnThreshold < 0 {
		return fmt.Errorf("column_threshold must be >= 0, got %d", c.ColumnThreshold)
	}
	if c.ColumnCacheSize <= 0 {
		return fmt.Errorf("column_cache_size must be > 0, got %d", c.ColumnCacheSize)
	}
	if c.RowParamsCacheSize <= 0 {
		return fmt.Errorf("row_params_cache_size must be > 0, got %d", c.RowParamsCacheSize)
	}
	return nil
}

// EngineConfig converts the settings into an engine configuration.
// Collaborators are attached by the caller.
func (c Config) EngineConfig() viewport.EngineConfig {
	return viewport.EngineConfig{
		Buffers: viewport.BufferConfig{
			RowBuffer:    c.RowBuffer,
			ColumnBuffer: c.ColumnBuffer,
		},
		Thresholds: viewport.ThresholdConfig{
			RowThreshold:    c.RowThreshold,
			ColumnThreshold: c.ColumnThreshold,
		},
		AutoHeight:                  c.AutoHeight,
		DisableVirtualization:       c.DisableVirtualization,
		DisableColumnVirtualization: c.DisableColumnVirtualization,
		RightToLeft:                 c.RightToLeft,
		ColumnCacheSize:             c.ColumnCacheSize,
		RowParamsCacheSize:          c.RowParamsCacheSize,
	}
}

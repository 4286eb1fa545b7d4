// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file specified by path. If
// path is empty, it searches default locations ("config.yaml"). If no
// file is found, it uses built-in defaults. After loading defaults or
// from file, it applies environment variable overrides and validates
// the final configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{
			"config.yaml",
		}
		found := false
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				found = true
				break
			}
		}
		if !found {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the engine or its
// collaborators cannot work with.
func (c *Config) Validate() error {
	if c.Brush.Width <= 0 || c.Brush.Width%8 != 0 || c.Brush.Width > MaxWidth {
		return fmt.Errorf("brush.width must be a positive multiple of 8 no larger than %d, got %d",
			MaxWidth, c.Brush.Width)
	}
	if !slices.Contains(Generators, c.Brush.Generator) {
		return fmt.Errorf("brush.generator %q is not one of %v", c.Brush.Generator, Generators)
	}
	if c.Brush.Step <= 0 {
		return fmt.Errorf("brush.step must be positive, got %d", c.Brush.Step)
	}
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("stream.interval must be positive, got %s", c.Stream.Interval)
	}
	if c.Transport.WebSocketEnabled && c.Transport.WebSocketAddr == "" {
		return fmt.Errorf("transport.websocket_addr must be set when WebSocket is enabled")
	}
	if c.Transport.UDPEnabled {
		if c.Transport.UDPTargetAddress == "" {
			return fmt.Errorf("transport.udp_target_address must be set when UDP is enabled")
		}
		if c.Transport.UDPSendInterval <= 0 {
			return fmt.Errorf("transport.udp_send_interval must be positive when UDP is enabled")
		}
	}
	return nil
}

// applyEnvOverrides layers ENV_* variables over whatever the defaults
// and the config file produced.
func (cfg *Config) applyEnvOverrides() {
	// ENV_{...}
	// These are general overrides.

	// ENV_DEBUG
	if val, ok := os.LookupEnv("ENV_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Debug = bVal
		}
	}

	// ENV_BRUSH_{...}
	// These are specific to the pattern engine.

	// ENV_BRUSH_WIDTH
	if val, ok := os.LookupEnv("ENV_BRUSH_WIDTH"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			cfg.Brush.Width = iVal
		}
	}
	// ENV_BRUSH_GENERATOR
	if val, ok := os.LookupEnv("ENV_BRUSH_GENERATOR"); ok {
		cfg.Brush.Generator = val
	}
	// ENV_BRUSH_STEP
	if val, ok := os.LookupEnv("ENV_BRUSH_STEP"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			cfg.Brush.Step = iVal
		}
	}

	// ENV_UDP_{...}
	// These are specific to the transport layer.

	// ENV_UDP_ENABLED
	if val, ok := os.LookupEnv("ENV_UDP_ENABLED"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Transport.UDPEnabled = bVal
		}
	}
	// ENV_UDP_TARGET_ADDRESS
	if val, ok := os.LookupEnv("ENV_UDP_TARGET_ADDRESS"); ok {
		cfg.Transport.UDPTargetAddress = val
	}
	// ENV_UDP_SEND_INTERVAL
	if val, ok := os.LookupEnv("ENV_UDP_SEND_INTERVAL"); ok {
		if dur, err := time.ParseDuration(val); err == nil {
			cfg.Transport.UDPSendInterval = dur
		}
	}
}

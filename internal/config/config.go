package config

import "time"

// Core configuration constants that define the boundaries and defaults
// for the pattern engine and its collaborators.
const (
	// Default values for the pattern engine configuration
	DefaultWidth     = 32            // Bits per pattern
	DefaultGenerator = GenSweepOnes  // Single-bit sweep
	DefaultStep      = 3             // Offset between sparse toggles
	DefaultCommand   = ""            // No one-off command by default
	DefaultVerbosity = false         // Quiet operation

	// Streaming defaults
	DefaultStreamInterval = 100 * time.Millisecond // ~10 frames/s
	DefaultStreamLoop     = true                   // Restart exhausted sequences
	DefaultCapturePath    = ""                     // No capture file

	// Transport defaults
	DefaultWebSocketAddr   = ":8080"           // Frame broadcast endpoint
	DefaultUDPTarget       = "127.0.0.1:9090"  // Binary frame packets
	DefaultUDPSendInterval = 33 * time.Millisecond

	// Engine limits (patterns are carried in a uint64)
	MinWidth = 8
	MaxWidth = 64
)

// Generator names accepted in configuration and on the command line.
const (
	GenSweepOnes    = "sweep-ones"
	GenSweepZeros   = "sweep-zeros"
	GenToggleSparse = "toggle-sparse"
	GenScanPatterns = "scan-patterns"
)

// Generators lists every selectable generator, in display order.
var Generators = []string{GenSweepOnes, GenSweepZeros, GenToggleSparse, GenScanPatterns}

// Config holds all runtime configuration options. It is constructed
// from built-in defaults, an optional YAML file, environment overrides
// and command line flags, in that order.
type Config struct {
	Debug    bool   `yaml:"debug"`             // Verbose logging and debug features.
	LogLevel string `yaml:"log_level"`         // Logging level ("debug", "info", "warn", "error").
	Command  string `yaml:"command,omitempty"` // One-off command instead of stream mode.

	Brush     BrushConfig     `yaml:"brush"`     // Pattern engine settings.
	Stream    StreamConfig    `yaml:"stream"`    // Live streaming settings.
	Transport TransportConfig `yaml:"transport"` // Frame transport settings.

	// Runtime-only state, set by the command line layer.
	Args       []string `yaml:"-"` // Positional arguments for the one-off command.
	StreamMode bool     `yaml:"-"` // Run the live streaming engine.
}

// BrushConfig holds the pattern engine settings.
type BrushConfig struct {
	Width     int    `yaml:"width"`     // Bits per pattern (positive multiple of 8, at most 64).
	Generator string `yaml:"generator"` // Which generator drives the stream.
	Step      int    `yaml:"step"`      // Offset between toggled bits (toggle-sparse only).
}

// StreamConfig holds the live streaming settings.
type StreamConfig struct {
	Interval    time.Duration `yaml:"interval"`     // Time between emitted frames.
	Loop        bool          `yaml:"loop"`         // Restart the sequence when it is exhausted.
	CapturePath string        `yaml:"capture_path"` // Append emitted frames to this file ("" disables).
}

// TransportConfig holds settings for publishing frames to collaborators.
type TransportConfig struct {
	WebSocketEnabled bool          `yaml:"websocket_enabled"` // Broadcast frames as JSON over WebSocket.
	WebSocketAddr    string        `yaml:"websocket_addr"`    // Listen address for the WebSocket server.
	UDPEnabled       bool          `yaml:"udp_enabled"`       // Send binary frame packets over UDP.
	UDPTargetAddress string        `yaml:"udp_target_address"` // Target for UDP packets.
	UDPSendInterval  time.Duration `yaml:"udp_send_interval"` // Interval between UDP packets.
}

// NewConfig creates a Config with default values, the base before any
// file, environment or flag settings are applied.
func NewConfig() *Config {
	return &Config{
		Debug:    false,
		LogLevel: "info",
		Command:  DefaultCommand,
		Brush: BrushConfig{
			Width:     DefaultWidth,
			Generator: DefaultGenerator,
			Step:      DefaultStep,
		},
		Stream: StreamConfig{
			Interval:    DefaultStreamInterval,
			Loop:        DefaultStreamLoop,
			CapturePath: DefaultCapturePath,
		},
		Transport: TransportConfig{
			WebSocketEnabled: false,
			WebSocketAddr:    DefaultWebSocketAddr,
			UDPEnabled:       false,
			UDPTargetAddress: DefaultUDPTarget,
			UDPSendInterval:  DefaultUDPSendInterval,
		},
	}
}

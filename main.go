package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"bitbrush/cmd"
	"bitbrush/internal/analysis"
	"bitbrush/internal/config"
	applog "bitbrush/internal/log"
	"bitbrush/internal/stream"
	"bitbrush/internal/transport"
	"bitbrush/internal/transport/udp"
	"bitbrush/internal/tui"
	"bitbrush/pkg/bitbrush"
	"bitbrush/pkg/build"
)

// main is the entry point for the bit-pattern toolkit.
// The program flow is divided into three distinct phases:
//
// 1. Startup Phase:
//   - Initialize build information
//   - Load configuration and parse command line arguments
//   - Execute one-off commands if requested
//
// 2. Concurrent Phase (stream mode):
//   - Start the pattern streamer
//   - Start the configured transports and publishers
//
// 3. Shutdown Phase:
//   - Handle termination signals
//   - Stop publishers and the streamer
//   - Log a summary of the streamed sequence
func main() {
	// ==================== STARTUP PHASE ====================

	// Initialize build information including version, commit hash, and build time
	if err := build.Initialize(); err != nil {
		applog.Fatalf("%v", err)
	}

	// Parse command line arguments and build configuration
	cfg, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if cfg.Debug {
		applog.SetLevel(applog.LevelDebug)
	} else if level, ok := applog.ParseLevel(cfg.LogLevel); ok {
		applog.SetLevel(level)
	}

	// Handle one-off commands that don't require the streaming engine
	if cfg.Command != "" {
		if err := executeCommand(cfg); err != nil {
			applog.Fatalf("%v", err)
		}
		return
	}

	// Exit if not running in stream mode
	if !cfg.StreamMode {
		return
	}

	// ==================== CONCURRENT PHASE ====================

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Assemble the transports the streamer publishes to
	transports := []transport.Transport{transport.NewLoggingTransport()}
	if cfg.Transport.WebSocketEnabled {
		transports = append(transports, transport.NewWebSocketTransport(cfg.Transport.WebSocketAddr))
	}

	streamer, err := stream.NewStreamer(cfg, transports...)
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if cfg.Stream.CapturePath != "" {
		if err := streamer.StartCapture(cfg.Stream.CapturePath); err != nil {
			applog.Fatalf("%v", err)
		}
	}

	// Optional UDP publisher pulls the latest frame at its own cadence
	var publisher *udp.Publisher
	if cfg.Transport.UDPEnabled {
		sender, err := udp.NewSender(cfg.Transport.UDPTargetAddress)
		if err != nil {
			applog.Fatalf("%v", err)
		}
		defer sender.Close()

		publisher, err = udp.NewPublisher(cfg.Transport.UDPSendInterval, sender, streamer)
		if err != nil {
			applog.Fatalf("%v", err)
		}
		publisher.Start()
	}

	streamer.Start()
	fmt.Printf("Streaming %s patterns (width %d). '%s --help' for usage information.\n",
		cfg.Brush.Generator, cfg.Brush.Width, build.GetBuildFlags().Name)

	// Block until termination signal is received
	<-done

	// ==================== SHUTDOWN PHASE ====================

	if publisher != nil {
		if err := publisher.Stop(); err != nil {
			applog.Errorf("Error stopping UDP publisher: %v", err)
		}
	}

	if err := streamer.Stop(); err != nil {
		applog.Errorf("Error stopping streamer: %v", err)
	}

	sum := streamer.Summary()
	applog.Infof("Sequence summary: %d patterns, density %.3f±%.3f, popcount %d..%d, %d toggles",
		sum.Count, sum.MeanDensity, sum.StdDevDensity, sum.MinPopcount, sum.MaxPopcount, sum.TotalToggles)

	for _, t := range transports {
		if err := t.Close(); err != nil {
			applog.Errorf("Error closing transport: %v", err)
		}
	}
}

// executeCommand handles one-off commands that don't require the
// streaming engine, such as printing a full sequence or mirroring a
// single value.
func executeCommand(cfg *config.Config) error {
	switch cfg.Command {
	case "print":
		return printSequence(cfg)
	case "mirror":
		return runMirror(cfg)
	case "inspect":
		return runInspect(cfg)
	case "tui":
		return tui.Run(cfg)
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

// printSequence renders the configured generator's full run to stdout,
// one pattern per line, followed by a summary.
func printSequence(cfg *config.Config) error {
	brush, err := bitbrush.New(cfg.Brush.Width)
	if err != nil {
		return err
	}
	seq, err := stream.NewSequence(brush, cfg.Brush.Generator, cfg.Brush.Step)
	if err != nil {
		return err
	}

	patterns := seq.Collect()
	hexDigits := brush.Width() / 4
	for _, v := range patterns {
		fmt.Printf("%s  0x%0*x  popcount=%d\n", brush.Visualize(v), hexDigits, v, brush.CountOnes(v))
	}

	sum := analysis.Summarize(brush, patterns)
	fmt.Printf("%d patterns, density %.3f±%.3f, %d toggles\n",
		sum.Count, sum.MeanDensity, sum.StdDevDensity, sum.TotalToggles)
	return nil
}

// parseValue accepts decimal, hex (0x...) and binary (0b...) input.
func parseValue(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pattern value %q: %w", s, err)
	}
	return v, nil
}

// runMirror prints a value and its bit-order reversal.
func runMirror(cfg *config.Config) error {
	brush, err := bitbrush.New(cfg.Brush.Width)
	if err != nil {
		return err
	}
	v, err := parseValue(cfg.Args[0])
	if err != nil {
		return err
	}

	mirrored := brush.Mirror(v)
	fmt.Printf("input:    %s  (%d)\n", brush.Visualize(v), v&brush.Mask())
	fmt.Printf("mirrored: %s  (%d)\n", brush.Visualize(mirrored), mirrored)
	return nil
}

// runInspect prints the binary rendering, popcount and mirror of a value.
func runInspect(cfg *config.Config) error {
	brush, err := bitbrush.New(cfg.Brush.Width)
	if err != nil {
		return err
	}
	v, err := parseValue(cfg.Args[0])
	if err != nil {
		return err
	}

	fmt.Printf("bits:     %s\n", brush.Visualize(v))
	fmt.Printf("popcount: %d\n", brush.CountOnes(v))
	fmt.Printf("mirror:   %s\n", brush.Visualize(brush.Mirror(v)))
	return nil
}

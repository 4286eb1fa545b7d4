package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"bitbrush/internal/config"
	"bitbrush/pkg/build"
)

// ParseArgs builds the runtime configuration from defaults, the
// optional config file, environment overrides and command line flags,
// in that order. Running without a subcommand starts the live stream;
// subcommands run one-off pattern operations and exit.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetBuildFlags()

	options, err := config.LoadConfig("")
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Generate, stream and inspect deterministic bit patterns",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.StreamMode = true
			return nil
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// One-off generator commands: print the full sequence and exit.
	generators := []struct {
		use   string
		short string
		name  string
	}{
		{"sweep", "Print the single-bit sweep sequence", config.GenSweepOnes},
		{"zeros", "Print the single-zero sweep sequence", config.GenSweepZeros},
		{"toggle", "Print the cumulative sparse toggle sequence", config.GenToggleSparse},
		{"scan", "Print the symmetric center-out scan sequence", config.GenScanPatterns},
	}
	for _, g := range generators {
		gen := g.name
		rootCmd.AddCommand(&cobra.Command{
			Use:   g.use,
			Short: g.short,
			Run: func(cmd *cobra.Command, args []string) {
				options.Command = "print"
				options.Brush.Generator = gen
			},
		})
	}

	// Mirror command: reverse the bit order of a single value.
	mirrorCmd := &cobra.Command{
		Use:   "mirror <value>",
		Short: "Reverse the bit order of a value across the configured width",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "mirror"
			options.Args = args
		},
	}
	rootCmd.AddCommand(mirrorCmd)

	// Inspect command: popcount and rendering for a single value.
	inspectCmd := &cobra.Command{
		Use:   "inspect <value>",
		Short: "Show the binary rendering and popcount of a value",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "inspect"
			options.Args = args
		},
	}
	rootCmd.AddCommand(inspectCmd)

	// Interactive terminal demo.
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore the generators interactively in the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "tui"
		},
	}
	rootCmd.AddCommand(tuiCmd)

	// Pattern Engine Configuration
	rootCmd.PersistentFlags().IntVarP(&options.Brush.Width, "width", "w", options.Brush.Width,
		"Bits per pattern (positive multiple of 8, at most 64)")
	rootCmd.PersistentFlags().StringVarP(&options.Brush.Generator, "generator", "g", options.Brush.Generator,
		"Generator driving the stream (sweep-ones, sweep-zeros, toggle-sparse, scan-patterns)")
	rootCmd.PersistentFlags().IntVarP(&options.Brush.Step, "step", "s", options.Brush.Step,
		"Offset between toggled bits (toggle-sparse only)")

	// Streaming Configuration
	rootCmd.PersistentFlags().DurationVarP(&options.Stream.Interval, "interval", "i", options.Stream.Interval,
		"Time between emitted frames in stream mode")
	rootCmd.PersistentFlags().BoolVar(&options.Stream.Loop, "loop", options.Stream.Loop,
		"Restart the sequence when it is exhausted")
	rootCmd.PersistentFlags().StringVarP(&options.Stream.CapturePath, "output", "o", options.Stream.CapturePath,
		"Append emitted frames to this file while streaming")

	// Transport Configuration
	rootCmd.PersistentFlags().BoolVar(&options.Transport.WebSocketEnabled, "websocket", options.Transport.WebSocketEnabled,
		"Broadcast frames as JSON over a WebSocket endpoint")
	rootCmd.PersistentFlags().StringVar(&options.Transport.WebSocketAddr, "websocket-addr", options.Transport.WebSocketAddr,
		"Listen address for the WebSocket server")
	rootCmd.PersistentFlags().BoolVar(&options.Transport.UDPEnabled, "udp", options.Transport.UDPEnabled,
		"Send binary frame packets over UDP")
	rootCmd.PersistentFlags().StringVar(&options.Transport.UDPTargetAddress, "udp-target", options.Transport.UDPTargetAddress,
		"Target address for UDP frame packets")

	// Debug Configuration
	rootCmd.PersistentFlags().BoolVarP(&options.Debug, "verbose", "v", options.Debug,
		"Show verbose output")

	// Execute the CLI
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	// Flags may have broken what the file and env produced.
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return options, nil
}

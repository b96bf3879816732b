package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/adapters/env"
	"github.com/3-lines-studio/vitrine/internal/adapters/logging"
	"github.com/3-lines-studio/vitrine/internal/config"
)

// Version is set at build time with -ldflags.
var Version = "(dev) v0.0.0"

var (
	// Global flags
	verbose    bool
	configPath string
	logFile    string

	cfg    *config.Config
	logger *zap.Logger
)

// errReported is returned after the command already printed why it failed.
var errReported = errors.New("failed")

var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Live preview playground for Go UI components",
	Long: `vitrine edits a Go component and shows it rendered as you type.

Edits are debounced, checked against the widget toolkit's declarations,
loaded in process (or saved for a collaborator to load) and rendered
behind a fault boundary that keeps the playground alive when the
component panics.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv(env.ConfigVar)
		}
		if path == "" {
			path = config.DefaultPath
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		logger, err = newLogger(cmd)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: vitrine.yaml or $VITRINE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveStrategy, "strategy", "", "Compile strategy: interp or save (overrides config)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "Output format: text or json")
	renderCmd.Flags().StringVar(&renderFormat, "format", "html", "Output format: html or text")
	renderCmd.Flags().IntVar(&renderWidth, "width", 80, "Line width for text output")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger logs to stderr unless the command owns the terminal or stdio,
// in which case only --log-file receives logs.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	opts := logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
		Output:  cmd.ErrOrStderr(),
	}

	ownsTerminal := cmd == tuiCmd || cmd == lspCmd
	if logFile != "" || ownsTerminal {
		w, err := logging.OpenFile(logFile)
		if err != nil {
			return nil, err
		}
		opts.Output = w
	}
	return logging.New(opts)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sofmeright/fortwasm/src/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	verbose     bool
	baseDir     string
	runtimeName string
	image       string
	timeout     time.Duration
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fortwasm",
	Short: "Compile Fortran to WebAssembly",
	Long: `fortwasm compiles a Fortran project to WebAssembly by running its makefile
inside the flang-wasm toolchain container, logging everything to build/compile.log.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogger()

		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyOverrides(cmd, cfg)

		warnings, err := config.Validate(cfg)
		for _, w := range warnings {
			slog.Warn(w)
		}
		return err
	},
	Args:          cobra.NoArgs,
	RunE:          runCompile,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .fortwasm.yml, .toml also accepted)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "project root mounted into the container (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&runtimeName, "runtime", "", "container runtime: docker, podman, or a path to a compatible binary")
	rootCmd.PersistentFlags().StringVar(&image, "image", "", "toolchain image reference")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "abort the build after this long (0 = no limit)")
}

// applyOverrides layers explicitly set flags over the loaded config.
func applyOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("base-dir") {
		c.Paths.BaseDir = baseDir
	}
	if flags.Changed("runtime") {
		c.Toolchain.Runtime = runtimeName
	}
	if flags.Changed("image") {
		c.Toolchain.Image = image
	}
	if flags.Changed("timeout") {
		c.Build.Timeout = config.Duration(timeout)
	}
}

// configureLogger installs the diagnostic logger on stderr.
func configureLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("app", "fortwasm"))
}

// reportedError marks an error whose operator message is already printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	return nil
}

package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sofmeright/fortwasm/src/output"
	"github.com/sofmeright/fortwasm/src/session"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Run the containerized build once",
	Long: `Create build/ and cache/, start a fresh compile log, run the build command
in the toolchain container and report the elapsed time.

Exits 1 if the log cannot be created, the runtime is missing, the build
exits non-zero, or the container cannot be started.`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess, err := session.New(cfg.Paths)
	if err != nil {
		return err
	}

	driver := &session.Driver{
		Session: sess,
		Config:  cfg,
		Console: output.NewConsole(),
		Logger:  slog.Default(),
	}
	if err := driver.Run(ctx); err != nil {
		return reportedError{err}
	}
	return nil
}

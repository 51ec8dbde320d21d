package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpkotak/bootstrap/internal/bootstrap"
	"github.com/hpkotak/bootstrap/internal/config"
	"github.com/hpkotak/bootstrap/internal/executor"
	"github.com/hpkotak/bootstrap/internal/platform"
)

var (
	configPath  string
	routineFlag string
	projectDir  string
	interactive bool
	verbose     bool
)

// Package-level function variables for testability.
// Tests override these to avoid running real package managers.
var (
	newExec              = func() executor.Runner { return executor.Exec{} }
	detectHost           = platform.Detect
	ioIn       io.Reader = os.Stdin
	ioOut      io.Writer = os.Stdout
	ioErr      io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Install peregrine's native and Python dependencies",
	Long: `bootstrap detects the host platform and runs the matching installation
routine: system packages, the libswiftnav submodule build, its Python
bindings, and the project itself in development mode.

Routines:
  ubuntu   Ubuntu and other Linux distributions (adds a cmake PPA)
  debian   Debian jessie/stretch (parallel make, ldconfig, bindings via pip)
  macos    macOS with Homebrew

Any failing step stops the run with that step's exit code.`,
	Args:              cobra.NoArgs,
	RunE:              runInstall,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file, .yaml or .toml (default ~/.bootstrap/config.yaml)")
	pf.StringVar(&routineFlag, "routine", "", "use this routine (ubuntu, debian, macos) instead of detecting one")
	pf.StringVarP(&projectDir, "project-dir", "C", ".", "project checkout to install")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log diagnostic detail to stderr")

	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for confirmation before installing")
}

// Execute runs the command line. Errors have already been reported to the
// user when it returns; use ExitCode to map them to a process status.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// ExitCode maps an error from Execute to the process exit status: the
// failing step's own code, or 1.
func ExitCode(err error) int {
	return executor.ExitCode(err)
}

func reportError(err error) {
	var missing *bootstrap.MissingRequirementError
	var stepErr *bootstrap.StepError
	switch {
	case errors.Is(err, bootstrap.ErrUnsupportedPlatform):
		_, _ = fmt.Fprintln(ioOut, bootstrap.UnsupportedMessage)
	case errors.As(err, &missing):
		_, _ = fmt.Fprintln(ioOut, missing.Message)
	case errors.As(err, &stepErr):
		// the runner already reported it and the tool printed its own output
	default:
		_, _ = fmt.Fprintf(ioErr, "Error: %v\n", err)
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	host := detectHost(cfg.ReleaseFile)
	log.WithFields(logrus.Fields{
		"indicator": host.Indicator,
		"kind":      host.Kind,
	}).Debug("platform detected")

	d, err := newDispatcher(cfg, log)
	if err != nil {
		return err
	}

	rt, err := d.Routine(host)
	if err != nil {
		return err
	}

	if interactive {
		if bootstrap.ChangesSystem(rt) {
			_, _ = fmt.Fprintln(ioOut, "  Warning: this routine changes system-wide packages and libraries.")
		}
		prompt := fmt.Sprintf("  Proceed with %s installation?", rt.Name)
		if !executor.Confirm(prompt, true, ioIn, ioOut) {
			_, _ = fmt.Fprintln(ioOut, "  Cancelled.")
			return nil
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return d.Runner.Run(ctx, rt)
}

// loadConfig reads --config when given, else the default file, falling back
// to defaults when the default file does not exist.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
		if errors.Is(err, config.ErrNotFound) {
			return nil, fmt.Errorf("config file %s not found", configPath)
		}
	} else {
		cfg, err = config.Load()
		if errors.Is(err, config.ErrNotFound) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newDispatcher(cfg *config.Config, log *logrus.Logger) (*bootstrap.Dispatcher, error) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project dir: %w", err)
	}

	runner := bootstrap.NewRunner(dir, ioOut, log)
	runner.Exec = newExec()

	return &bootstrap.Dispatcher{
		Codenames: cfg.DebianCodenames,
		Options:   cfg.RoutineOptions(),
		Override:  routineFlag,
		Runner:    runner,
	}, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(ioErr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hpkotak/bootstrap/internal/bootstrap"
	"github.com/hpkotak/bootstrap/internal/platform"
	"github.com/hpkotak/bootstrap/internal/toolchain"
)

var (
	hostInfo        = platform.HostInfo
	gatherToolchain = toolchain.Gather
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show how this host is classified and which tools are available",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host := detectHost(cfg.ReleaseFile)
	_, _ = fmt.Fprintf(ioOut, "Platform indicator: %s\n", host.Indicator)
	_, _ = fmt.Fprintf(ioOut, "Platform kind: %s\n", host.Kind)
	if host.Kind == platform.Linux {
		legacy := "no"
		if platform.IsDebianLegacy(host.Signature, cfg.DebianCodenames) {
			legacy = "yes"
		}
		_, _ = fmt.Fprintf(ioOut, "Release file: %s\n", cfg.ReleaseFile)
		_, _ = fmt.Fprintf(ioOut, "Debian jessie/stretch: %s\n", legacy)
	}

	switch name, err := bootstrap.Select(host, cfg.DebianCodenames); {
	case routineFlag != "":
		_, _ = fmt.Fprintf(ioOut, "Routine: %s (forced by --routine)\n", routineFlag)
	case errors.Is(err, bootstrap.ErrUnsupportedPlatform):
		_, _ = fmt.Fprintln(ioOut, "Routine: none (unsupported platform)")
	default:
		_, _ = fmt.Fprintf(ioOut, "Routine: %s\n", name)
	}

	if info, err := hostInfo(); err == nil {
		_, _ = fmt.Fprintf(ioOut, "Host: %s (family %s, version %s)\n", info.Platform, info.Family, info.Version)
	} else {
		newLogger().WithError(err).Warn("host information unavailable")
	}

	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("resolving project dir: %w", err)
	}
	_, _ = fmt.Fprintln(ioOut)
	_, _ = fmt.Fprint(ioOut, gatherToolchain(dir, cfg.Submodule).Format())
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpkotak/bootstrap/internal/config"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: `Update a configuration value. Supported keys:
  release_file      Release file read on Linux (default /etc/os-release)
  debian_codenames  Comma-separated Debian codenames for the debian routine
  submodule         Native library submodule directory
  build_dir         Build directory created inside the submodule
  bindings_dir      Python bindings directory inside the submodule
  requirements      Top-level pip requirements file
  sudo              Prefix Linux system steps with sudo (true/false)
  jobs              Parallel make jobs on Debian (0 = all processors)
  debian_bindings   Build the Python bindings on Debian too (true/false)
  homebrew_path     Homebrew executable required on macOS`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])
	path := targetConfigPath()

	cfg, err := config.LoadFile(path)
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = config.Default()
	}

	switch key {
	case "release_file":
		cfg.ReleaseFile = value
	case "debian_codenames":
		cfg.DebianCodenames = nil
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.DebianCodenames = append(cfg.DebianCodenames, name)
			}
		}
	case "submodule":
		cfg.Submodule = value
	case "build_dir":
		cfg.BuildDir = value
	case "bindings_dir":
		cfg.BindingsDir = value
	case "requirements":
		cfg.Requirements = value
	case "sudo", "debian_bindings":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for %s", value, key)
		}
		if key == "sudo" {
			cfg.Sudo = b
		} else {
			cfg.DebianBindings = b
		}
	case "jobs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number %q for jobs", value)
		}
		cfg.Jobs = n
	case "homebrew_path":
		cfg.HomebrewPath = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.SaveFile(path, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "Set %s = %s\n", key, value)
	return nil
}

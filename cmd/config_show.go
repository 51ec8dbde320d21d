package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpkotak/bootstrap/internal/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := targetConfigPath()

	cfg, err := config.LoadFile(path)
	source := path
	if errors.Is(err, config.ErrNotFound) {
		cfg, err = config.Default(), nil
		source = path + " (not found, showing defaults)"
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := config.Marshal(cfg, strings.EqualFold(filepath.Ext(path), ".toml"))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "Config file: %s\n\n", source)
	_, _ = fmt.Fprint(ioOut, string(data))
	return nil
}

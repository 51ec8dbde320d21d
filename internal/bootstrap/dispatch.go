// Package bootstrap selects the installation routine for the host and runs
// it step by step, stopping at the first failure.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/hpkotak/bootstrap/internal/platform"
	"github.com/hpkotak/bootstrap/internal/routine"
)

// ErrUnsupportedPlatform is returned when the indicator is neither Linux nor macOS.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// UnsupportedMessage is shown to the user for ErrUnsupportedPlatform.
const UnsupportedMessage = "This script does not support this platform. Please file a Github issue!"

// Select picks the routine name for a detected host. codenames are the
// Debian releases that get the Debian routine.
func Select(h platform.Host, codenames []string) (string, error) {
	switch h.Kind {
	case platform.Linux:
		if platform.IsDebianLegacy(h.Signature, codenames) {
			return routine.Debian, nil
		}
		return routine.Ubuntu, nil
	case platform.Darwin:
		return routine.MacOS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, h.Indicator)
	}
}

// Dispatcher turns a detected host into exactly one routine and runs it.
type Dispatcher struct {
	Codenames []string
	Options   routine.Options
	// Override names a routine to use instead of detecting one.
	Override string
	Runner   *Runner
}

// Routine returns the routine the dispatcher would run for h.
func (d *Dispatcher) Routine(h platform.Host) (routine.Routine, error) {
	name := d.Override
	if name == "" {
		var err error
		name, err = Select(h, d.Codenames)
		if err != nil {
			return routine.Routine{}, err
		}
	}
	return routine.Build(name, d.Options)
}

// Run selects and runs the routine for h.
func (d *Dispatcher) Run(ctx context.Context, h platform.Host) error {
	r, err := d.Routine(h)
	if err != nil {
		return err
	}
	return d.Runner.Run(ctx, r)
}

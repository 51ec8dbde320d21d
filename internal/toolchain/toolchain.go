// Package toolchain probes the external collaborators an installation
// routine shells out to. All probing is best-effort: a failed probe yields
// an empty field, never an error.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hpkotak/bootstrap/internal/platform"
)

const cmdTimeout = 2 * time.Second

// Tools lists the commands probed, in display order.
var Tools = []string{"git", "cmake", "make", "apt-get", "add-apt-repository", "brew", "ldconfig", "pip", "python", "sudo"}

// Tool is the probe result for one command.
type Tool struct {
	Name string
	Path string // empty if not on PATH
}

// Snapshot holds what the host offers to the installation routines.
type Snapshot struct {
	OS        string
	Arch      string
	Shell     string
	Tools     []Tool
	Submodule string // submodule path relative to the project dir
	// SubmoduleStatus is the first line of `git submodule status` for the
	// submodule; empty if git failed.
	SubmoduleStatus string
	Checkout        bool // submodule directory has files
}

// Package-level function variables for testability.
var (
	lookPath      = exec.LookPath
	execCommandFn = defaultExecCommand
)

func defaultExecCommand(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	return string(out), err
}

// Gather probes the tools on PATH and the submodule checkout under projectDir.
func Gather(projectDir, submodule string) Snapshot {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	s := Snapshot{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Shell:     platform.Shell(),
		Submodule: submodule,
	}

	for _, name := range Tools {
		path, _ := lookPath(name)
		s.Tools = append(s.Tools, Tool{Name: name, Path: path})
	}

	s.SubmoduleStatus = gatherSubmoduleStatus(ctx, projectDir, submodule)
	s.Checkout = hasFiles(filepath.Join(projectDir, submodule))
	return s
}

// Missing returns the names of probed tools that are not on PATH.
func (s Snapshot) Missing() []string {
	var out []string
	for _, t := range s.Tools {
		if t.Path == "" {
			out = append(out, t.Name)
		}
	}
	return out
}

// Format renders the snapshot for display.
func (s Snapshot) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "OS: %s (%s)\n", s.OS, s.Arch)
	fmt.Fprintf(&b, "Shell: %s\n", s.Shell)

	fmt.Fprintf(&b, "Tools:\n")
	for _, t := range s.Tools {
		path := t.Path
		if path == "" {
			path = "not found"
		}
		fmt.Fprintf(&b, "  %-20s %s\n", t.Name, path)
	}

	checkout := "missing"
	if s.Checkout {
		checkout = "present"
	}
	fmt.Fprintf(&b, "Submodule %s: %s\n", s.Submodule, checkout)
	if s.SubmoduleStatus != "" {
		fmt.Fprintf(&b, "  %s\n", s.SubmoduleStatus)
	}
	return b.String()
}

func gatherSubmoduleStatus(ctx context.Context, dir, submodule string) string {
	out, err := execCommandFn(ctx, dir, "git", "submodule", "status", "--", submodule)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return line
}

func hasFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

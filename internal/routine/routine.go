// Package routine describes the per-platform installation routines as data:
// ordered lists of external commands plus the preconditions checked before
// the first one runs.
package routine

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Routine names accepted by Build.
const (
	Ubuntu = "ubuntu"
	Debian = "debian"
	MacOS  = "macos"
)

// Names lists every routine in a stable order.
var Names = []string{Ubuntu, Debian, MacOS}

// Step is one external-process invocation.
type Step struct {
	Name string
	// Dir is relative to the project directory; empty means the project dir.
	Dir  string
	Argv []string
	// Disabled steps are listed in plans but never executed.
	Disabled bool
	Note     string
}

// Command renders the step's argv as a single shell-like line.
func (s Step) Command() string {
	return strings.Join(s.Argv, " ")
}

// Requirement is an executable that must exist at an exact path before any
// step runs.
type Requirement struct {
	Path    string
	Message string
}

// Routine is an ordered, non-branching sequence of steps.
type Routine struct {
	Name     string
	Requires []Requirement
	Steps    []Step
}

// Options carries the inputs that vary between hosts and projects.
type Options struct {
	Submodule    string // native library submodule, relative to the project dir
	BuildDir     string // created inside Submodule
	BindingsDir  string // language bindings project inside Submodule
	Requirements string // top-level pip manifest
	Sudo         bool
	// Jobs is the make parallelism on the Debian routine. Zero means one
	// job per available processor.
	Jobs int
	// DebianBindings enables the binding steps on the Debian routine, which
	// are otherwise left disabled.
	DebianBindings bool
	HomebrewPath   string
}

// DefaultOptions returns the options matching the libswiftnav layout.
func DefaultOptions() Options {
	return Options{
		Submodule:    "libswiftnav",
		BuildDir:     "build",
		BindingsDir:  "python",
		Requirements: "requirements.txt",
		Sudo:         true,
		HomebrewPath: "/usr/local/bin/brew",
	}
}

// linuxPackages is installed by apt-get on both Linux routines.
var linuxPackages = []string{
	"build-essential",
	"cmake",
	"libfftw3-3",
	"libfftw3-dev",
	"cython",
	"check",
	"python-dev",
	"swig",
	"python-pip",
}

const debianBindingsNote = "pip install of the top-level requirements is expected to build the bindings"

// Build returns the named routine.
func Build(name string, opts Options) (Routine, error) {
	switch name {
	case Ubuntu:
		return NewUbuntu(opts), nil
	case Debian:
		return NewDebian(opts), nil
	case MacOS:
		return NewMacOS(opts), nil
	default:
		return Routine{}, fmt.Errorf("unknown routine %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}

// NewUbuntu is the routine for Ubuntu and any Linux that is not a
// recognised Debian release. It registers an extra apt repository for a
// newer cmake before installing packages.
func NewUbuntu(opts Options) Routine {
	b := builder{opts: opts}
	b.add("Refresh package index", "", b.sudo("apt-get", "update", "-qq")...)
	b.add("Install repository tooling", "", b.sudo("apt-get", "-y", "install", "python-software-properties")...)
	b.add("Register cmake repository", "", b.sudo("add-apt-repository", "--yes", "ppa:kalakris/cmake")...)
	b.add("Refresh package index", "", b.sudo("apt-get", "update", "-qq")...)
	b.add("Install system packages", "", b.sudo(append([]string{"apt-get", "-y", "install"}, linuxPackages...)...)...)
	b.nativeBuild(0)
	b.bindings(false, "")
	b.project()
	return Routine{Name: Ubuntu, Steps: b.steps}
}

// NewDebian is the routine for Debian jessie and stretch. The native build
// runs in parallel and refreshes the linker cache afterwards.
func NewDebian(opts Options) Routine {
	b := builder{opts: opts}
	b.add("Refresh package index", "", b.sudo("apt-get", "update", "-qq")...)
	b.add("Install system packages", "", b.sudo(append([]string{"apt-get", "-y", "install"}, linuxPackages...)...)...)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	b.nativeBuild(jobs)
	b.add("Refresh linker cache", "", b.sudo("ldconfig")...)

	if opts.DebianBindings {
		b.bindings(false, "")
	} else {
		b.bindings(true, debianBindingsNote)
	}
	b.project()
	return Routine{Name: Debian, Steps: b.steps}
}

// NewMacOS is the routine for macOS. Homebrew must already be installed and
// nothing runs under sudo.
func NewMacOS(opts Options) Routine {
	opts.Sudo = false
	b := builder{opts: opts}
	b.add("Install system packages", "", "brew", "install", "fftw")
	b.nativeBuild(0)
	b.bindings(false, "")
	b.project()
	return Routine{
		Name: MacOS,
		Requires: []Requirement{{
			Path:    opts.HomebrewPath,
			Message: "You're missing Homebrew!",
		}},
		Steps: b.steps,
	}
}

// Enabled returns the steps that will actually execute.
func (r Routine) Enabled() []Step {
	var out []Step
	for _, s := range r.Steps {
		if !s.Disabled {
			out = append(out, s)
		}
	}
	return out
}

type builder struct {
	opts  Options
	steps []Step
}

func (b *builder) add(name, dir string, argv ...string) {
	b.steps = append(b.steps, Step{Name: name, Dir: dir, Argv: argv})
}

func (b *builder) sudo(argv ...string) []string {
	if !b.opts.Sudo {
		return argv
	}
	return append([]string{"sudo"}, argv...)
}

// nativeBuild fetches the submodule and runs the cmake build. A positive
// jobs adds -j to make; zero leaves make serial.
func (b *builder) nativeBuild(jobs int) {
	sub := b.opts.Submodule
	build := filepath.Join(sub, b.opts.BuildDir)

	b.add("Fetch submodules", "", "git", "submodule", "update", "--init")
	b.add("Create build directory", sub, "mkdir", "-p", b.opts.BuildDir)
	b.add("Generate build files", build, "cmake", "../")

	makeArgv := []string{"make"}
	if jobs > 0 {
		makeArgv = append(makeArgv, "-j"+strconv.Itoa(jobs))
	}
	b.add("Build native library", build, makeArgv...)
	b.add("Install native library", build, b.sudo("make", "install")...)
}

func (b *builder) bindings(disabled bool, note string) {
	py := filepath.Join(b.opts.Submodule, b.opts.BindingsDir)
	b.add("Install binding requirements", py, b.sudo("pip", "install", "-r", "requirements.txt")...)
	b.add("Install bindings", py, b.sudo("python", "setup.py", "install")...)
	for i := len(b.steps) - 2; i < len(b.steps); i++ {
		b.steps[i].Disabled = disabled
		b.steps[i].Note = note
	}
}

func (b *builder) project() {
	b.add("Install project requirements", "", b.sudo("pip", "install", "-r", b.opts.Requirements)...)
	b.add("Install project in development mode", "", b.sudo("python", "setup.py", "develop")...)
}

package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// saveFuncVars saves the package-level function vars and returns a restore function.
func saveFuncVars(t *testing.T) func() {
	t.Helper()
	origGetenv := getenv
	origGOOS := goos
	origKernelRelease := kernelRelease
	origReadFile := readFile
	return func() {
		getenv = origGetenv
		goos = origGOOS
		kernelRelease = origKernelRelease
		readFile = origReadFile
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		indicator string
		want      Kind
	}{
		{"linux-gnu", Linux},
		{"linux-musl", Linux},
		{"linux-gnueabihf", Linux},
		{"darwin", Darwin},
		{"darwin19", Darwin},
		{"darwin23.0", Darwin},
		{"linux", Unsupported},
		{"msys", Unsupported},
		{"cygwin", Unsupported},
		{"freebsd13", Unsupported},
		{"windows", Unsupported},
		{"", Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.indicator, func(t *testing.T) {
			if got := Classify(tt.indicator); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.indicator, got, tt.want)
			}
		})
	}
}

func TestIndicator(t *testing.T) {
	tests := []struct {
		name    string
		ostype  string
		goos    string
		release string
		want    string
	}{
		{"OSTYPE exported", "linux-musl", "linux", "6.1.0", "linux-musl"},
		{"OSTYPE whitespace ignored", "  ", "linux", "6.1.0", "linux-gnu"},
		{"linux derived", "", "linux", "6.1.0-13-amd64", "linux-gnu"},
		{"darwin derived", "", "darwin", "19.6.0", "darwin19"},
		{"freebsd derived", "", "freebsd", "13.2-RELEASE", "freebsd13"},
		{"no kernel release", "", "darwin", "", "darwin"},
		{"windows", "", "windows", "", "windows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := saveFuncVars(t)
			defer restore()

			getenv = func(key string) string {
				if key == "OSTYPE" {
					return tt.ostype
				}
				return ""
			}
			goos = tt.goos
			kernelRelease = func() string { return tt.release }

			if got := Indicator(); got != tt.want {
				t.Errorf("Indicator() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsDebianLegacy(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{"bare jessie", "Debian GNU/Linux jessie", true},
		{"bare stretch", "Debian GNU/Linux stretch", true},
		{"os-release stretch", `PRETTY_NAME="Debian GNU/Linux 9 (stretch)"`, true},
		{"os-release jessie", "NAME=\"Debian GNU/Linux\"\nPRETTY_NAME=\"Debian GNU/Linux 8 (jessie)\"\n", true},
		{"buster", `PRETTY_NAME="Debian GNU/Linux 10 (buster)"`, false},
		{"bookworm", `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"`, false},
		{"issue file form", "Debian GNU/Linux 9 \\n \\l", false},
		{"ubuntu", `PRETTY_NAME="Ubuntu 16.04.7 LTS"`, false},
		{"codename prefix only", "Debian GNU/Linux stretchy", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDebianLegacy(tt.signature, DefaultDebianCodenames); got != tt.want {
				t.Errorf("IsDebianLegacy(%q) = %v, want %v", tt.signature, got, tt.want)
			}
		})
	}
}

func TestIsDebianLegacyCustomCodenames(t *testing.T) {
	sig := `PRETTY_NAME="Debian GNU/Linux 10 (buster)"`
	if !IsDebianLegacy(sig, []string{"buster"}) {
		t.Error("expected buster to match when configured")
	}
	if IsDebianLegacy(sig, nil) {
		t.Error("expected no match with empty codename list")
	}
}

func TestReadSignature(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "os-release")
	if err := os.WriteFile(path, []byte("Debian GNU/Linux 9 (stretch)\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := ReadSignature(path); got != "Debian GNU/Linux 9 (stretch)\n" {
		t.Errorf("ReadSignature() = %q", got)
	}
	if got := ReadSignature(filepath.Join(dir, "missing")); got != "" {
		t.Errorf("ReadSignature(missing) = %q, want empty", got)
	}
}

func TestDetect(t *testing.T) {
	t.Run("linux reads release file", func(t *testing.T) {
		restore := saveFuncVars(t)
		defer restore()

		getenv = func(string) string { return "linux-gnu" }
		var readPath string
		readFile = func(path string) ([]byte, error) {
			readPath = path
			return []byte("Debian GNU/Linux 9 (stretch)"), nil
		}

		h := Detect("/etc/os-release")
		if h.Kind != Linux {
			t.Errorf("Kind = %q, want %q", h.Kind, Linux)
		}
		if readPath != "/etc/os-release" {
			t.Errorf("read %q, want /etc/os-release", readPath)
		}
		if h.Signature != "Debian GNU/Linux 9 (stretch)" {
			t.Errorf("Signature = %q", h.Signature)
		}
	})

	t.Run("darwin skips release file", func(t *testing.T) {
		restore := saveFuncVars(t)
		defer restore()

		getenv = func(string) string { return "darwin19" }
		readFile = func(string) ([]byte, error) {
			t.Error("release file read on darwin")
			return nil, errors.New("unexpected")
		}

		h := Detect("/etc/os-release")
		if h.Kind != Darwin || h.Signature != "" {
			t.Errorf("Detect() = %+v", h)
		}
	})
}

func TestShell(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"zsh", "/bin/zsh", "/bin/zsh"},
		{"bash", "/bin/bash", "/bin/bash"},
		{"empty falls back", "", "/bin/sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.env)
			if got := Shell(); got != tt.want {
				t.Errorf("Shell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHostInfo(t *testing.T) {
	orig := platformInformation
	defer func() { platformInformation = orig }()

	platformInformation = func() (string, string, string, error) {
		return "debian", "debian", "9.13", nil
	}
	info, err := HostInfo()
	if err != nil {
		t.Fatalf("HostInfo() error: %v", err)
	}
	if info != (Info{Platform: "debian", Family: "debian", Version: "9.13"}) {
		t.Errorf("HostInfo() = %+v", info)
	}

	platformInformation = func() (string, string, string, error) {
		return "", "", "", errors.New("boom")
	}
	if _, err := HostInfo(); err == nil {
		t.Error("expected error")
	}
}

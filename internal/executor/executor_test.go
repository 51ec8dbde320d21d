package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"enter with default yes", "\n", true, true},
		{"enter with default no", "\n", false, false},
		{"explicit y", "y\n", false, true},
		{"explicit Y", "Y\n", false, true},
		{"explicit yes", "yes\n", false, true},
		{"explicit n", "n\n", true, false},
		{"explicit no", "no\n", true, false},
		{"garbage input", "asdf\n", true, false},
		{"empty input with spaces", "  \n", true, true},
		{"eof", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			got := Confirm("Test?", tt.defaultYes, strings.NewReader(tt.input), out)
			if got != tt.want {
				t.Errorf("Confirm(%q, defaultYes=%v) = %v, want %v",
					tt.input, tt.defaultYes, got, tt.want)
			}
		})
	}
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRun(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name     string
		argv     []string
		wantCode int
		wantOut  string
	}{
		{"success", []string{"sh", "-c", "echo hello"}, 0, "hello\n"},
		{"non-zero exit", []string{"sh", "-c", "exit 3"}, 3, ""},
		{"not found", []string{"definitely-not-a-real-command-xyz"}, 127, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			e := Exec{Stdin: strings.NewReader(""), Stdout: out, Stderr: &bytes.Buffer{}}
			err := e.Run(context.Background(), "", tt.argv)

			if got := ExitCode(err); got != tt.wantCode {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, tt.wantCode)
			}
			if out.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestExecRunDir(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	e := Exec{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if err := e.Run(context.Background(), dir, []string{"mkdir", "-p", "build"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "build")); err != nil {
		t.Errorf("build dir not created in %s: %v", dir, err)
	}
}

func TestExecRunEmpty(t *testing.T) {
	if err := (Exec{}).Run(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestExecRunCancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := Exec{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := e.Run(ctx, "", []string{"sh", "-c", "sleep 5"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Errorf("ExitCode(plain) = %d", got)
	}
	wrapped := errors.Join(errors.New("ctx"), &ExitError{Argv: []string{"make"}, Code: 2})
	if got := ExitCode(wrapped); got != 2 {
		t.Errorf("ExitCode(wrapped) = %d", got)
	}
}

func TestExitErrorMessage(t *testing.T) {
	e := &ExitError{Argv: []string{"make", "install"}, Code: 2}
	if e.Error() != "make: exit status 2" {
		t.Errorf("Error() = %q", e.Error())
	}
}

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hpkotak/bootstrap/internal/executor"
	"github.com/hpkotak/bootstrap/internal/routine"
)

// MissingRequirementError is returned when a routine precondition fails.
// No step has run when it is returned.
type MissingRequirementError struct {
	Path    string
	Message string
}

func (e *MissingRequirementError) Error() string {
	return e.Message
}

// StepError wraps the failure of one step. Later steps have not run.
type StepError struct {
	Index int // 1-based position in the routine
	Step  routine.Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index, e.Step.Name, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes a routine's steps in order with fail-fast semantics.
type Runner struct {
	Exec       executor.Runner
	ProjectDir string
	Out        io.Writer
	Log        *logrus.Logger
}

// NewRunner returns a Runner that executes real processes.
func NewRunner(projectDir string, out io.Writer, log *logrus.Logger) *Runner {
	return &Runner{
		Exec:       executor.Exec{},
		ProjectDir: projectDir,
		Out:        out,
		Log:        log,
	}
}

// Run checks the routine's requirements, then runs every enabled step.
// The first failing step stops the run.
func (r *Runner) Run(ctx context.Context, rt routine.Routine) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	st := newStyles(out)

	log := r.logger().WithFields(logrus.Fields{
		"run_id":  uuid.NewString(),
		"routine": rt.Name,
	})

	for _, req := range rt.Requires {
		if !isExecutable(req.Path) {
			log.WithField("path", req.Path).Debug("requirement missing")
			return &MissingRequirementError{Path: req.Path, Message: req.Message}
		}
	}

	log.Debugf("running %d steps", len(rt.Steps))
	started := time.Now()

	for i, step := range rt.Steps {
		if step.Disabled {
			_, _ = fmt.Fprintf(out, "%s %s skipped: %s\n", st.skip.Render("[--]"), step.Name, step.Note)
			continue
		}

		dir := filepath.Join(r.ProjectDir, step.Dir)
		_, _ = fmt.Fprintf(out, "%s %s\n    %s\n", st.head.Render("==>"), step.Name, step.Command())

		stepLog := log.WithFields(logrus.Fields{"step": i + 1, "dir": dir})
		stepLog.Debugf("exec %q", step.Argv)
		t0 := time.Now()

		if err := r.Exec.Run(ctx, dir, step.Argv); err != nil {
			stepLog.WithField("elapsed", time.Since(t0)).WithError(err).Debug("step failed")
			_, _ = fmt.Fprintf(out, "%s %s failed (exit %d)\n", st.fail.Render("[!!]"), step.Name, executor.ExitCode(err))
			return &StepError{Index: i + 1, Step: step, Err: err}
		}

		stepLog.WithField("elapsed", time.Since(t0)).Debug("step done")
		_, _ = fmt.Fprintf(out, "%s %s\n", st.ok.Render("[ok]"), step.Name)
	}

	log.WithField("elapsed", time.Since(started)).Debug("routine complete")
	return nil
}

func (r *Runner) logger() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

type styles struct {
	head, ok, fail, skip lipgloss.Style
}

// newStyles binds the status styles to out so colour is dropped when out
// is not a terminal.
func newStyles(out io.Writer) styles {
	re := lipgloss.NewRenderer(out)
	return styles{
		head: re.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
		ok:   re.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		fail: re.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		skip: re.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

package bootstrap

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/hpkotak/bootstrap/internal/routine"
	"github.com/hpkotak/bootstrap/internal/safety"
)

// WritePlan prints the routine's steps without running anything.
func WritePlan(out io.Writer, rt routine.Routine, projectDir string) {
	st := newStyles(out)

	_, _ = fmt.Fprintf(out, "Routine: %s\n", st.head.Render(rt.Name))
	for _, req := range rt.Requires {
		_, _ = fmt.Fprintf(out, "Requires: %s\n", req.Path)
	}
	_, _ = fmt.Fprintln(out)

	for i, s := range rt.Steps {
		level := safety.Classify(s.Command())
		tag := st.ok.Render(fmt.Sprintf("[%s]", level))
		if level == safety.System {
			tag = st.fail.Render(fmt.Sprintf("[%s]", level))
		}
		if s.Disabled {
			tag = st.skip.Render("[disabled]")
		}

		_, _ = fmt.Fprintf(out, "%2d. %s %s\n", i+1, s.Name, tag)
		_, _ = fmt.Fprintf(out, "    dir: %s\n", filepath.Join(projectDir, s.Dir))
		_, _ = fmt.Fprintf(out, "    $ %s\n", s.Command())
		if s.Note != "" {
			_, _ = fmt.Fprintf(out, "    note: %s\n", s.Note)
		}
	}
}

// ChangesSystem reports whether any enabled step modifies system-wide state.
func ChangesSystem(rt routine.Routine) bool {
	for _, s := range rt.Enabled() {
		if safety.Classify(s.Command()) == safety.System {
			return true
		}
	}
	return false
}

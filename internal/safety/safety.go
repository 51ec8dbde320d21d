// Package safety classifies installation commands by whether they change
// system-wide state. Classification works on the rendered command line with
// regex rules so it applies equally to built-in and user-configured steps.
package safety

import (
	"regexp"
	"sync"
)

// Level represents the scope of a command's side effects.
type Level int

const (
	// Local commands only touch the project checkout.
	Local Level = iota
	// System commands modify packages, libraries or caches outside the
	// project (usually under sudo).
	System
)

// rule pairs a system-scope pattern with an optional exclusion pattern.
// A command that matches both pattern and exclude is not flagged by this rule.
type rule struct {
	pattern *regexp.Regexp
	exclude *regexp.Regexp // nil means no exclusion
}

var (
	rules     []rule
	rulesOnce sync.Once
)

type rawRule struct {
	pattern string
	exclude string // empty means no exclusion
}

var systemRules = []rawRule{
	{`(^|\s)sudo\s`, ""},
	{`\bapt-get\s+(-\S+\s+)*(install|remove|purge|upgrade|dist-upgrade)\b`, ""},
	{`\badd-apt-repository\b`, ""},
	{`\bbrew\s+(install|upgrade|uninstall)\b`, ""},
	{`\bmake\s+(-\S+\s+)*install\b`, ""},
	{`\bldconfig\b`, ""},
	// pip into the user site or a target dir stays out of system paths.
	{`\bpip[0-9.]*\s+install\b`, `\s(--user|--target|-t)(\s|=|$)`},
	{`\bsetup\.py\s+(install|develop)\b`, `\s--user(\s|$)`},
}

func compileRules() {
	rulesOnce.Do(func() {
		rules = make([]rule, len(systemRules))
		for i, r := range systemRules {
			rules[i].pattern = regexp.MustCompile(r.pattern)
			if r.exclude != "" {
				rules[i].exclude = regexp.MustCompile(r.exclude)
			}
		}
	})
}

// Classify examines a command line and returns its level.
func Classify(command string) Level {
	compileRules()
	for _, r := range rules {
		if r.pattern.MatchString(command) {
			if r.exclude != nil && r.exclude.MatchString(command) {
				continue
			}
			return System
		}
	}
	return Local
}

func (l Level) String() string {
	if l == System {
		return "system"
	}
	return "local"
}

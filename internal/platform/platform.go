// Package platform classifies the host from its OSTYPE-style indicator and,
// on Linux, the contents of the release-identification file.
package platform

import (
	"os"
	"regexp"
	"runtime"
	"strings"
)

// Kind is the coarse platform class used to pick an installation routine.
type Kind string

const (
	Linux       Kind = "linux"
	Darwin      Kind = "darwin"
	Unsupported Kind = "unsupported"
)

// DefaultReleaseFile is read on Linux to obtain the distribution signature.
const DefaultReleaseFile = "/etc/os-release"

// DefaultDebianCodenames are the Debian releases that get the Debian routine.
var DefaultDebianCodenames = []string{"jessie", "stretch"}

// Package-level function variables for testability.
var (
	getenv        = os.Getenv
	goos          = runtime.GOOS
	kernelRelease = unameRelease
	readFile      = os.ReadFile
)

// Host is a one-shot snapshot of the platform indicator and, on Linux, the
// distribution signature. Neither value changes after detection.
type Host struct {
	Indicator string
	Kind      Kind
	Signature string
}

// Detect reads the indicator and classifies it. The release file is only
// read when the indicator is a Linux one.
func Detect(releaseFile string) Host {
	h := Host{Indicator: Indicator()}
	h.Kind = Classify(h.Indicator)
	if h.Kind == Linux {
		h.Signature = ReadSignature(releaseFile)
	}
	return h
}

// Indicator returns the bash-style OSTYPE value for this host. $OSTYPE wins
// when it is exported; otherwise the value is derived from GOOS and the
// kernel release.
func Indicator() string {
	if v := strings.TrimSpace(getenv("OSTYPE")); v != "" {
		return v
	}
	return deriveIndicator(goos, kernelRelease())
}

func deriveIndicator(goos, release string) string {
	if goos == "linux" {
		return "linux-gnu"
	}
	if major := kernelMajor(release); major != "" {
		return goos + major
	}
	return goos
}

// kernelMajor returns the leading digits of a kernel release ("19.6.0" -> "19").
func kernelMajor(release string) string {
	end := 0
	for end < len(release) && release[end] >= '0' && release[end] <= '9' {
		end++
	}
	return release[:end]
}

// Classify maps an indicator to a Kind: "linux-*" is Linux, "darwin*" is
// Darwin, anything else is Unsupported.
func Classify(indicator string) Kind {
	switch {
	case strings.HasPrefix(indicator, "linux-"):
		return Linux
	case strings.HasPrefix(indicator, "darwin"):
		return Darwin
	default:
		return Unsupported
	}
}

// ReadSignature returns the contents of the release file. A missing or
// unreadable file yields an empty signature.
func ReadSignature(path string) string {
	data, err := readFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// IsDebianLegacy reports whether signature names one of the given Debian
// codenames, either bare ("Debian GNU/Linux stretch") or in the numbered
// PRETTY_NAME form ("Debian GNU/Linux 9 (stretch)").
func IsDebianLegacy(signature string, codenames []string) bool {
	if len(codenames) == 0 {
		return false
	}
	return debianPattern(codenames).MatchString(signature)
}

func debianPattern(codenames []string) *regexp.Regexp {
	quoted := make([]string, len(codenames))
	for i, c := range codenames {
		quoted[i] = regexp.QuoteMeta(c)
	}
	return regexp.MustCompile(`Debian GNU/Linux (?:[0-9.]+ )?\(?(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Shell returns the user's shell from $SHELL, defaulting to /bin/sh.
func Shell() string {
	if s := getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

package platform

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// Info is what the OS itself reports about the distribution. It is only
// shown to the user; routine selection never depends on it.
type Info struct {
	Platform string
	Family   string
	Version  string
}

var platformInformation = host.PlatformInformation

// HostInfo queries the OS for platform, family and version.
func HostInfo() (Info, error) {
	p, f, v, err := platformInformation()
	if err != nil {
		return Info{}, fmt.Errorf("reading host platform: %w", err)
	}
	return Info{Platform: p, Family: f, Version: v}, nil
}

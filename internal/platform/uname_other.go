//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly)

package platform

func unameRelease() string {
	return ""
}

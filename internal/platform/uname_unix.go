//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package platform

import "golang.org/x/sys/unix"

// unameRelease returns the kernel release string, or "" if uname fails.
func unameRelease() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Release[:])
}

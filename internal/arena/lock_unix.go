//go:build linux || darwin || freebsd

package arena

import "golang.org/x/sys/unix"

// lockPages pins the given pages with mlock(2).
func lockPages(data []byte) error {
	return unix.Mlock(data)
}

// unlockPages releases pages pinned by lockPages.
func unlockPages(data []byte) error {
	return unix.Munlock(data)
}

//go:build windows

package arena

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// lockPages pins the given pages with VirtualLock.
func lockPages(data []byte) error {
	return windows.VirtualLock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}

// unlockPages releases pages pinned by lockPages.
func unlockPages(data []byte) error {
	return windows.VirtualUnlock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}

//go:build unix

// Package errnox provides lookup helpers between errno numbers, their
// symbolic names ("ENOENT") and their strerror messages. It is Unix-only.
package errnox

import (
	"errors"
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// maxScanErrno bounds the reverse-table scan. Linux errno values top out
// well below this on every supported architecture.
const maxScanErrno = 4096

var (
	reverseOnce sync.Once
	reverse     map[string]syscall.Errno
)

// Name returns the symbolic name of an errno, e.g. "ENOENT", or the empty
// string when the number is not a known errno.
func Name(errno syscall.Errno) string {
	return unix.ErrnoName(errno)
}

// Message returns the strerror text of an errno, e.g. "no such file or
// directory".
func Message(errno syscall.Errno) string {
	return errno.Error()
}

// ByName resolves a symbolic name back to its errno. The reverse table is
// built once, on first use, by scanning the platform's errno range.
func ByName(name string) (syscall.Errno, bool) {
	reverseOnce.Do(func() {
		reverse = make(map[string]syscall.Errno)
		for n := syscall.Errno(1); n < maxScanErrno; n++ {
			if s := unix.ErrnoName(n); s != "" {
				reverse[s] = n
			}
		}
	})
	errno, ok := reverse[name]
	return errno, ok
}

// Describe renders an errno for diagnostics: `ENOENT (2): no such file or
// directory`. Unknown numbers render as `errno <n>: <message>`.
func Describe(errno syscall.Errno) string {
	if name := Name(errno); name != "" {
		return fmt.Sprintf("%s (%d): %s", name, uint(errno), Message(errno))
	}
	return fmt.Sprintf("errno %d: %s", uint(errno), Message(errno))
}

// FromError extracts a syscall.Errno from anywhere in err's unwrap chain.
func FromError(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

package beanstalk

import (
	"errors"
	"fmt"
)

// Sentinel errors for protocol-level outcomes. They are returned verbatim
// so callers can branch with errors.Is.
var (
	// ErrNotFound is returned when the named job or tube does not exist
	// or is not accessible to this connection.
	ErrNotFound = errors.New("beanstalk: not found")

	// ErrTimeout is returned by Reserve when no job became ready within
	// the requested timeout.
	ErrTimeout = errors.New("beanstalk: reserve timed out")

	// ErrDeadlineSoon is returned by Reserve when a job already held by
	// this connection is about to expire its time-to-run.
	ErrDeadlineSoon = errors.New("beanstalk: deadline soon")

	// ErrBuried is returned by Put and Release when the server ran out of
	// memory growing a priority queue and buried the job instead.
	ErrBuried = errors.New("beanstalk: job buried")

	// ErrDraining is returned by Put when the server is in drain mode and
	// not accepting new jobs.
	ErrDraining = errors.New("beanstalk: server is draining")

	// ErrJobTooBig is returned by Put when the body exceeds the server's
	// max-job-size.
	ErrJobTooBig = errors.New("beanstalk: job too big")

	// ErrNotIgnored is returned when ignoring a tube would leave the
	// watch list empty.
	ErrNotIgnored = errors.New("beanstalk: cannot ignore the only watched tube")

	// ErrOutOfMemory, ErrInternal, ErrBadFormat and ErrUnknownCommand map
	// the server's global error replies.
	ErrOutOfMemory    = errors.New("beanstalk: server out of memory")
	ErrInternal       = errors.New("beanstalk: server internal error")
	ErrBadFormat      = errors.New("beanstalk: bad command format")
	ErrUnknownCommand = errors.New("beanstalk: unknown command")
)

// ConnError wraps a transport-level failure. After a ConnError the
// connection is no longer usable; the protocol stream may be mid-reply.
type ConnError struct {
	Op  string // protocol command, e.g. "put"
	Err error
}

// Error implements the error interface.
func (e *ConnError) Error() string {
	return fmt.Sprintf("beanstalk: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *ConnError) Unwrap() error { return e.Err }

// NameError reports an invalid tube name.
type NameError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *NameError) Error() string {
	return fmt.Sprintf("beanstalk: bad tube name %q: %s", e.Name, e.Reason)
}

package beanstalk

import (
	"context"
	"time"
)

// TubeSet scopes consumer-side reserves to a set of tubes. The watch list
// on the connection is synchronized lazily before each reserve, issuing
// only the watch/ignore delta.
type TubeSet struct {
	conn  *Conn
	names map[string]bool
}

// TubeSet returns a consumer handle drawing from the named tubes.
func (c *Conn) TubeSet(names ...string) (*TubeSet, error) {
	if len(names) == 0 {
		names = []string{DefaultTube}
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if err := checkName(name); err != nil {
			return nil, err
		}
		set[name] = true
	}
	return &TubeSet{conn: c, names: set}, nil
}

// Names returns the tubes this set reserves from.
func (ts *TubeSet) Names() []string {
	out := make([]string, 0, len(ts.names))
	for name := range ts.names {
		out = append(out, name)
	}
	return out
}

// Reserve waits up to timeout for a ready job in any watched tube. A zero
// timeout polls. It returns ErrTimeout when nothing became ready and
// ErrDeadlineSoon when a job already held by this connection is close to
// its time-to-run limit.
func (ts *TubeSet) Reserve(ctx context.Context, timeout time.Duration) (*Job, error) {
	c := ts.conn
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.syncWatchedLocked(ctx, ts.names); err != nil {
		return nil, err
	}
	r, err := c.cmdLocked(ctx, "reserve-with-timeout", nil, "reserve-with-timeout %d", durSeconds(timeout))
	if err != nil {
		return nil, err
	}
	switch r.name {
	case "RESERVED":
		id, err := r.arg0("reserve-with-timeout")
		if err != nil {
			return nil, err
		}
		return &Job{ID: id, Body: r.body}, nil
	case "TIMED_OUT":
		return nil, ErrTimeout
	case "DEADLINE_SOON":
		return nil, ErrDeadlineSoon
	}
	return nil, unexpected("reserve-with-timeout", r)
}

// syncWatchedLocked reconciles the connection's watch list with want.
// Watches happen before ignores so the list can never become empty
// mid-sync. Callers hold the connection lock.
func (c *Conn) syncWatchedLocked(ctx context.Context, want map[string]bool) error {
	for name := range want {
		if !c.watched[name] {
			if err := c.watchLocked(ctx, name); err != nil {
				return err
			}
		}
	}
	for name := range c.watched {
		if !want[name] {
			if err := c.ignoreLocked(ctx, name); err != nil {
				return err
			}
		}
	}
	return nil
}

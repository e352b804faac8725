package beanstalk

import (
	"context"
	"time"

	"github.com/valv/kitbag/yamlite"
)

// Tube scopes producer-side commands to one named tube. The underlying
// "use" command is issued lazily, only when the connection is currently
// using a different tube.
type Tube struct {
	conn *Conn
	name string
}

// Tube returns a producer handle for the named tube.
func (c *Conn) Tube(name string) (*Tube, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &Tube{conn: c, name: name}, nil
}

// Name returns the tube's name.
func (t *Tube) Name() string { return t.name }

// Put inserts a job into the tube. pri orders jobs (lower is more urgent),
// delay postpones readiness, ttr is the time a consumer gets to run the
// job before the server releases it again. It returns the job id; on
// ErrBuried the id of the buried job is still returned.
func (t *Tube) Put(ctx context.Context, body []byte, pri uint32, delay, ttr time.Duration) (uint64, error) {
	c := t.conn
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.useLocked(ctx, t.name); err != nil {
		return 0, err
	}
	r, err := c.cmdLocked(ctx, "put", body, "put %d %d %d %d", pri, durSeconds(delay), durSeconds(ttr), len(body))
	if err != nil {
		return 0, err
	}
	switch r.name {
	case "INSERTED":
		return r.arg0("put")
	case "BURIED":
		id, err := r.arg0("put")
		if err != nil {
			return 0, err
		}
		return id, ErrBuried
	case "JOB_TOO_BIG":
		return 0, ErrJobTooBig
	case "DRAINING":
		return 0, ErrDraining
	}
	return 0, unexpected("put", r)
}

// arg0 returns the first reply argument as an id.
func (r reply) arg0(op string) (uint64, error) {
	id, err := r.arg(0)
	if err != nil {
		return 0, &ConnError{Op: op, Err: err}
	}
	return id, nil
}

// PeekReady returns the next ready job in the tube without reserving it.
func (t *Tube) PeekReady(ctx context.Context) (*Job, error) {
	return t.peek(ctx, "peek-ready")
}

// PeekDelayed returns the delayed job with the shortest remaining delay.
func (t *Tube) PeekDelayed(ctx context.Context) (*Job, error) {
	return t.peek(ctx, "peek-delayed")
}

// PeekBuried returns the oldest buried job in the tube.
func (t *Tube) PeekBuried(ctx context.Context) (*Job, error) {
	return t.peek(ctx, "peek-buried")
}

func (t *Tube) peek(ctx context.Context, op string) (*Job, error) {
	c := t.conn
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.useLocked(ctx, t.name); err != nil {
		return nil, err
	}
	r, err := c.cmdLocked(ctx, op, nil, "%s", op)
	if err != nil {
		return nil, err
	}
	return foundJob(op, r)
}

// Kick moves at most bound buried jobs (or, when none are buried, delayed
// jobs) onto the ready queue and returns how many moved.
func (t *Tube) Kick(ctx context.Context, bound int) (int, error) {
	c := t.conn
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.useLocked(ctx, t.name); err != nil {
		return 0, err
	}
	r, err := c.cmdLocked(ctx, "kick", nil, "kick %d", bound)
	if err != nil {
		return 0, err
	}
	if r.name != "KICKED" {
		return 0, unexpected("kick", r)
	}
	n, err := r.arg(0)
	if err != nil {
		return 0, &ConnError{Op: "kick", Err: err}
	}
	return int(n), nil
}

// Pause stops the tube from handing out jobs for the given delay.
func (t *Tube) Pause(ctx context.Context, delay time.Duration) error {
	r, err := t.conn.cmd(ctx, "pause-tube", nil, "pause-tube %s %d", t.name, durSeconds(delay))
	if err != nil {
		return err
	}
	switch r.name {
	case "PAUSED":
		return nil
	case "NOT_FOUND":
		return ErrNotFound
	}
	return unexpected("pause-tube", r)
}

// Stats returns the server's stats for this tube.
func (t *Tube) Stats(ctx context.Context) (yamlite.Dict, error) {
	r, err := t.conn.cmd(ctx, "stats-tube", nil, "stats-tube %s", t.name)
	if err != nil {
		return nil, err
	}
	return okDict("stats-tube", r)
}

package beanstalk

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/valv/kitbag/yamlite"
)

// DefaultTube is the tube every connection uses and watches initially.
const DefaultTube = "default"

// maxChunkSize caps the data-chunk size a reply may announce. beanstalkd
// refuses job bodies above 64 MB, so anything larger is a corrupt or
// hostile reply, not data.
const maxChunkSize = 64 << 20

// Job is a reserved or peeked job. The body is opaque bytes; the protocol
// makes no charset promises.
type Job struct {
	ID   uint64
	Body []byte
}

// Conn is a single connection to a beanstalkd server. It serializes
// commands: one request/reply cycle is on the wire at a time. A Conn is
// safe for concurrent use, but a blocked Reserve blocks other commands on
// the same connection; use one Conn per consumer for busy workers.
type Conn struct {
	mu      sync.Mutex
	conn    net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	used    string
	watched map[string]bool
	broken  bool
}

// Dial connects to a beanstalkd server over TCP.
func Dial(addr string) (*Conn, error) {
	return DialContext(context.Background(), addr)
}

// DialContext connects to a beanstalkd server over TCP, honoring ctx for
// the dial itself.
func DialContext(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnError{Op: "dial", Err: err}
	}
	return NewConn(nc), nil
}

// NewConn wraps an established network connection. Useful for tests and
// for dialing through custom transports.
func NewConn(nc net.Conn) *Conn {
	return &Conn{
		conn:    nc,
		reader:  bufio.NewReader(nc),
		writer:  bufio.NewWriter(nc),
		used:    DefaultTube,
		watched: map[string]bool{DefaultTube: true},
	}
}

// Close tells the server to drop the connection and closes it.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.broken {
		// Best effort; the server closes on "quit" without replying.
		fmt.Fprint(c.writer, "quit\r\n")
		c.writer.Flush()
	}
	c.broken = true
	return c.conn.Close()
}

// reply is one parsed server response line, plus its data chunk when the
// response carries one (RESERVED, FOUND, OK).
type reply struct {
	name string
	args []string
	body []byte
}

// arg returns the i-th reply argument parsed as an unsigned integer.
func (r reply) arg(i int) (uint64, error) {
	if i >= len(r.args) {
		return 0, fmt.Errorf("reply %s: missing argument %d", r.name, i)
	}
	return strconv.ParseUint(r.args[i], 10, 64)
}

// cmd runs one request/reply cycle under the connection lock.
func (c *Conn) cmd(ctx context.Context, op string, body []byte, format string, args ...any) (reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cmdLocked(ctx, op, body, format, args...)
}

// cmdLocked is cmd without locking, for callers that batch several
// commands (use/watch bookkeeping) under one critical section.
func (c *Conn) cmdLocked(ctx context.Context, op string, body []byte, format string, args ...any) (reply, error) {
	if c.broken {
		return reply{}, &ConnError{Op: op, Err: net.ErrClosed}
	}
	if err := ctx.Err(); err != nil {
		return reply{}, &ConnError{Op: op, Err: err}
	}

	// The context maps onto connection deadlines. A cancellation while a
	// read is in flight forces the read to fail, which leaves the stream
	// mid-reply; the connection is marked broken in that case.
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else {
		c.conn.SetDeadline(time.Time{})
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.SetDeadline(time.Unix(1, 0))
		case <-stop:
		}
	}()

	r, err := c.roundTrip(body, format, args...)
	if err != nil {
		c.broken = true
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return reply{}, &ConnError{Op: op, Err: err}
	}

	switch r.name {
	case "OUT_OF_MEMORY":
		return reply{}, ErrOutOfMemory
	case "INTERNAL_ERROR":
		return reply{}, ErrInternal
	case "BAD_FORMAT", "EXPECTED_CRLF":
		return reply{}, ErrBadFormat
	case "UNKNOWN_COMMAND":
		return reply{}, ErrUnknownCommand
	}
	return r, nil
}

// roundTrip writes one command line (plus optional body chunk) and reads
// the full response.
func (c *Conn) roundTrip(body []byte, format string, args ...any) (reply, error) {
	if _, err := fmt.Fprintf(c.writer, format, args...); err != nil {
		return reply{}, err
	}
	if _, err := c.writer.WriteString("\r\n"); err != nil {
		return reply{}, err
	}
	if body != nil {
		if _, err := c.writer.Write(body); err != nil {
			return reply{}, err
		}
		if _, err := c.writer.WriteString("\r\n"); err != nil {
			return reply{}, err
		}
	}
	if err := c.writer.Flush(); err != nil {
		return reply{}, err
	}

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return reply{}, err
	}
	fields := strings.Fields(strings.TrimRight(line, "\r\n"))
	if len(fields) == 0 {
		return reply{}, fmt.Errorf("empty reply line")
	}
	r := reply{name: fields[0], args: fields[1:]}

	// Responses carrying a data chunk state its size as the last argument.
	switch r.name {
	case "RESERVED", "FOUND", "OK":
		size, err := r.arg(len(r.args) - 1)
		if err != nil {
			return reply{}, fmt.Errorf("bad chunk size in %q: %w", line, err)
		}
		if size > maxChunkSize {
			return reply{}, fmt.Errorf("implausible chunk size %d in %q", size, strings.TrimRight(line, "\r\n"))
		}
		chunk := make([]byte, size+2)
		if _, err := io.ReadFull(c.reader, chunk); err != nil {
			return reply{}, err
		}
		if string(chunk[size:]) != "\r\n" {
			return reply{}, fmt.Errorf("data chunk not terminated by CRLF")
		}
		r.body = chunk[:size]
	}
	return r, nil
}

// unexpected wraps a reply word no caller expected for the given command.
func unexpected(op string, r reply) error {
	return &ConnError{Op: op, Err: fmt.Errorf("unexpected reply %q", r.name)}
}

// Delete removes a job from the server entirely.
func (c *Conn) Delete(ctx context.Context, id uint64) error {
	r, err := c.cmd(ctx, "delete", nil, "delete %d", id)
	if err != nil {
		return err
	}
	switch r.name {
	case "DELETED":
		return nil
	case "NOT_FOUND":
		return ErrNotFound
	}
	return unexpected("delete", r)
}

// Release puts a reserved job back onto the ready (or delayed) queue with
// a new priority.
func (c *Conn) Release(ctx context.Context, id uint64, pri uint32, delay time.Duration) error {
	r, err := c.cmd(ctx, "release", nil, "release %d %d %d", id, pri, durSeconds(delay))
	if err != nil {
		return err
	}
	switch r.name {
	case "RELEASED":
		return nil
	case "BURIED":
		return ErrBuried
	case "NOT_FOUND":
		return ErrNotFound
	}
	return unexpected("release", r)
}

// Bury moves a reserved job to the buried list.
func (c *Conn) Bury(ctx context.Context, id uint64, pri uint32) error {
	r, err := c.cmd(ctx, "bury", nil, "bury %d %d", id, pri)
	if err != nil {
		return err
	}
	switch r.name {
	case "BURIED":
		return nil
	case "NOT_FOUND":
		return ErrNotFound
	}
	return unexpected("bury", r)
}

// Touch extends the time-to-run of a reserved job.
func (c *Conn) Touch(ctx context.Context, id uint64) error {
	r, err := c.cmd(ctx, "touch", nil, "touch %d", id)
	if err != nil {
		return err
	}
	switch r.name {
	case "TOUCHED":
		return nil
	case "NOT_FOUND":
		return ErrNotFound
	}
	return unexpected("touch", r)
}

// KickJob moves a single buried or delayed job onto the ready queue.
func (c *Conn) KickJob(ctx context.Context, id uint64) error {
	r, err := c.cmd(ctx, "kick-job", nil, "kick-job %d", id)
	if err != nil {
		return err
	}
	switch r.name {
	case "KICKED":
		return nil
	case "NOT_FOUND":
		return ErrNotFound
	}
	return unexpected("kick-job", r)
}

// Peek fetches a job by id without reserving it.
func (c *Conn) Peek(ctx context.Context, id uint64) (*Job, error) {
	r, err := c.cmd(ctx, "peek", nil, "peek %d", id)
	if err != nil {
		return nil, err
	}
	return foundJob("peek", r)
}

// foundJob interprets a FOUND/NOT_FOUND reply into a Job.
func foundJob(op string, r reply) (*Job, error) {
	switch r.name {
	case "FOUND":
		id, err := r.arg(0)
		if err != nil {
			return nil, &ConnError{Op: op, Err: err}
		}
		return &Job{ID: id, Body: r.body}, nil
	case "NOT_FOUND":
		return nil, ErrNotFound
	}
	return nil, unexpected(op, r)
}

// StatsJob returns the server's stats for a single job.
func (c *Conn) StatsJob(ctx context.Context, id uint64) (yamlite.Dict, error) {
	r, err := c.cmd(ctx, "stats-job", nil, "stats-job %d", id)
	if err != nil {
		return nil, err
	}
	return okDict("stats-job", r)
}

// Stats returns the server-wide stats.
func (c *Conn) Stats(ctx context.Context) (yamlite.Dict, error) {
	r, err := c.cmd(ctx, "stats", nil, "stats")
	if err != nil {
		return nil, err
	}
	return okDict("stats", r)
}

// ListTubes returns the names of all tubes on the server.
func (c *Conn) ListTubes(ctx context.Context) ([]string, error) {
	r, err := c.cmd(ctx, "list-tubes", nil, "list-tubes")
	if err != nil {
		return nil, err
	}
	return okList("list-tubes", r)
}

// ListTubesWatched returns the names this connection's reserve commands
// draw from.
func (c *Conn) ListTubesWatched(ctx context.Context) ([]string, error) {
	r, err := c.cmd(ctx, "list-tubes-watched", nil, "list-tubes-watched")
	if err != nil {
		return nil, err
	}
	return okList("list-tubes-watched", r)
}

// ListTubeUsed returns the tube this connection's puts go to.
func (c *Conn) ListTubeUsed(ctx context.Context) (string, error) {
	r, err := c.cmd(ctx, "list-tube-used", nil, "list-tube-used")
	if err != nil {
		return "", err
	}
	if r.name != "USING" || len(r.args) != 1 {
		return "", unexpected("list-tube-used", r)
	}
	return r.args[0], nil
}

// okDict interprets an OK reply body as a yamlite mapping.
func okDict(op string, r reply) (yamlite.Dict, error) {
	switch r.name {
	case "OK":
		d, err := yamlite.DecodeDict(r.body)
		if err != nil {
			return nil, &ConnError{Op: op, Err: err}
		}
		return d, nil
	case "NOT_FOUND":
		return nil, ErrNotFound
	}
	return nil, unexpected(op, r)
}

// okList interprets an OK reply body as a yamlite list.
func okList(op string, r reply) ([]string, error) {
	if r.name != "OK" {
		return nil, unexpected(op, r)
	}
	l, err := yamlite.DecodeList(r.body)
	if err != nil {
		return nil, &ConnError{Op: op, Err: err}
	}
	return l, nil
}

// useLocked switches the connection's used tube if needed. Callers hold
// the connection lock.
func (c *Conn) useLocked(ctx context.Context, name string) error {
	if c.used == name {
		return nil
	}
	r, err := c.cmdLocked(ctx, "use", nil, "use %s", name)
	if err != nil {
		return err
	}
	if r.name != "USING" {
		return unexpected("use", r)
	}
	c.used = name
	return nil
}

// watchLocked adds a tube to the watch list. Callers hold the lock.
func (c *Conn) watchLocked(ctx context.Context, name string) error {
	r, err := c.cmdLocked(ctx, "watch", nil, "watch %s", name)
	if err != nil {
		return err
	}
	if r.name != "WATCHING" {
		return unexpected("watch", r)
	}
	c.watched[name] = true
	return nil
}

// ignoreLocked removes a tube from the watch list. Callers hold the lock.
func (c *Conn) ignoreLocked(ctx context.Context, name string) error {
	r, err := c.cmdLocked(ctx, "ignore", nil, "ignore %s", name)
	if err != nil {
		return err
	}
	switch r.name {
	case "WATCHING":
		delete(c.watched, name)
		return nil
	case "NOT_IGNORED":
		return ErrNotIgnored
	}
	return unexpected("ignore", r)
}

// durSeconds converts a duration to the whole seconds the protocol wants.
func durSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

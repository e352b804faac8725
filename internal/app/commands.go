package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/valv/kitbag/beanstalk"
	"github.com/valv/kitbag/httpx"
	"github.com/valv/kitbag/internal/ctxlog"
	"github.com/valv/kitbag/yamlite"
)

// dialQueue opens the connection every queue command works on.
func (a *App) dialQueue(ctx context.Context) (*beanstalk.Conn, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Dialing queue server.", "addr", a.file.Server.Addr)

	conn, err := beanstalk.DialContext(ctx, a.file.Server.Addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", a.file.Server.Addr, err)
	}
	return conn, nil
}

// runPut inserts one job: kitbag put <tube> <body>.
func (a *App) runPut(ctx context.Context) error {
	if len(a.config.Args) != 2 {
		return errors.New("usage: put <tube> <body>")
	}
	tubeName, body := a.config.Args[0], a.config.Args[1]

	conn, err := a.dialQueue(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tube, err := conn.Tube(tubeName)
	if err != nil {
		return err
	}

	defaults := a.file.TubeDefaults(tubeName)
	id, err := tube.Put(ctx, []byte(body), defaults.Priority, defaults.Delay, defaults.TTR)
	if err != nil {
		return fmt.Errorf("put into %q: %w", tubeName, err)
	}

	a.logger.Info("Job inserted.", "tube", tubeName, "id", id)
	fmt.Fprintf(a.outW, "inserted job %d into %q\n", id, tubeName)
	return nil
}

// runReserve takes one job, shows it, and releases it back: kitbag
// reserve [tube...]. The release makes the command a non-destructive peek
// at the front of the queue.
func (a *App) runReserve(ctx context.Context) error {
	conn, err := a.dialQueue(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	ts, err := conn.TubeSet(a.config.Args...)
	if err != nil {
		return err
	}

	job, err := ts.Reserve(ctx, a.config.ReserveTimeout)
	if errors.Is(err, beanstalk.ErrTimeout) {
		fmt.Fprintln(a.outW, "no job became ready")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reserve: %w", err)
	}

	fmt.Fprintf(a.outW, "job %d (%d bytes):\n%s\n", job.ID, len(job.Body), job.Body)

	if err := conn.Release(ctx, job.ID, 1024, 0); err != nil {
		return fmt.Errorf("releasing job %d: %w", job.ID, err)
	}
	return nil
}

// runStats prints server-wide or per-tube stats: kitbag stats [tube].
func (a *App) runStats(ctx context.Context) error {
	conn, err := a.dialQueue(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	var stats yamlite.Dict
	switch len(a.config.Args) {
	case 0:
		stats, err = conn.Stats(ctx)
	case 1:
		var tube *beanstalk.Tube
		tube, err = conn.Tube(a.config.Args[0])
		if err != nil {
			return err
		}
		stats, err = tube.Stats(ctx)
	default:
		return errors.New("usage: stats [tube]")
	}
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.outW, "%s: %s\n", k, stats[k])
	}
	return nil
}

// runTubes lists all tubes on the server.
func (a *App) runTubes(ctx context.Context) error {
	conn, err := a.dialQueue(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tubes, err := conn.ListTubes(ctx)
	if err != nil {
		return fmt.Errorf("list-tubes: %w", err)
	}
	for _, name := range tubes {
		fmt.Fprintln(a.outW, name)
	}
	return nil
}

// runFetch performs one traced HTTP GET: kitbag fetch <url>.
func (a *App) runFetch(ctx context.Context) error {
	if len(a.config.Args) != 1 {
		return errors.New("usage: fetch <url>")
	}
	url := a.config.Args[0]

	opts := []httpx.Option{
		httpx.WithTimeout(a.file.HTTP.Timeout),
		httpx.WithUserAgent(a.file.HTTP.UserAgent),
		httpx.WithLogger(a.logger),
	}
	if a.file.HTTP.BaseURL != "" {
		opts = append(opts, httpx.WithBaseURL(a.file.HTTP.BaseURL))
	}
	client := httpx.New(opts...)
	defer client.Close()

	res, err := client.Get(ctx, url)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "%s %s\n", res.Proto(), res.Status())
	fmt.Fprintln(a.outW, res.Transfer().Summary())
	fmt.Fprintf(a.outW, "\n%s\n", res.String())
	return nil
}

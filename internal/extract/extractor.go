package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hmmkit/internal/runutil"
)

// Fetcher copies the model named key out of db into outPath.
// *hmmer.Runner in fetch mode satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, db, key, outPath string) error
}

// Options controls an Extractor.
type Options struct {
	Threads  int       // fetch workers (<=0 = all CPUs)
	TempDir  string    // where fetched models are staged ("" = os.TempDir())
	Progress io.Writer // progress line destination (nil = os.Stdout)
}

// Extractor runs parallel model extractions. It holds no per-call state.
type Extractor struct {
	fetcher  Fetcher
	threads  int
	tempDir  string
	progress io.Writer
	logger   *slog.Logger
}

type task struct {
	id   string
	path string
}

// New returns an Extractor using f for each model. A nil logger discards.
func New(f Fetcher, o Options, logger *slog.Logger) *Extractor {
	o.Threads = runutil.EffectiveThreads(o.Threads)
	if o.TempDir == "" {
		o.TempDir = os.TempDir()
	}
	if o.Progress == nil {
		o.Progress = os.Stdout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{fetcher: f, threads: o.Threads, tempDir: o.TempDir, progress: o.Progress, logger: logger}
}

func (e *Extractor) Threads() int { return e.threads }

// Extract fetches every model in ids from modelDB and writes them, one after
// another, to outPath. When reportProgress is set and the logger is enabled at
// info, a single progress line is rewritten after each model.
//
// The first fetch or write failure stops the remaining work and is returned.
// Staged temporary files are removed whether or not Extract succeeds.
func (e *Extractor) Extract(ctx context.Context, modelDB string, ids []string, outPath string, reportProgress bool) error {
	report := reportProgress && e.logger.Enabled(ctx, slog.LevelInfo)
	if reportProgress {
		e.logger.Info("extracting HMM models", "models", len(ids), "threads", e.threads)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	tasks := make(chan task, len(ids))
	for _, id := range ids {
		tasks <- task{id: id, path: filepath.Join(e.tempDir, "hmmkit-"+uuid.NewString()+".hmm")}
	}
	close(tasks)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan task, e.threads)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < e.threads; w++ {
		g.Go(func() error { return e.work(gctx, modelDB, tasks, done) })
	}

	werr := make(chan error, 1)
	go func() {
		werr <- e.write(out, len(ids), report, done, cancel)
	}()

	ferr := g.Wait()
	close(done)
	wErr := <-werr
	if cerr := out.Close(); cerr != nil && wErr == nil {
		wErr = cerr
	}

	switch {
	case wErr != nil:
		return wErr
	case ferr != nil:
		return ferr
	}
	return nil
}

// work fetches tasks until the queue is drained or ctx is cancelled. A fetched
// task is handed to the writer; one that cannot be handed over is cleaned up
// here.
func (e *Extractor) work(ctx context.Context, db string, tasks <-chan task, done chan<- task) (err error) {
	var cur task
	defer func() {
		if r := recover(); r != nil {
			removeQuiet(cur.path)
			err = fmt.Errorf("fetching %s: panic: %v", cur.id, r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t, ok := <-tasks:
			if !ok {
				return nil
			}
			cur = t
			if err := e.fetcher.Fetch(ctx, db, t.id, t.path); err != nil {
				removeQuiet(t.path)
				return fmt.Errorf("fetching %s: %w", t.id, err)
			}
			select {
			case done <- t:
				cur = task{}
			case <-ctx.Done():
				removeQuiet(t.path)
				return ctx.Err()
			}
		}
	}
}

// write appends each completed task to out until done is closed. After a
// failure it keeps draining done, removing staged files, so no worker blocks.
func (e *Extractor) write(out io.Writer, total int, report bool, done <-chan task, cancel context.CancelFunc) error {
	var (
		n   int
		err error
	)
	for t := range done {
		if err == nil {
			if err = appendFile(out, t.path); err != nil {
				err = fmt.Errorf("writing %s: %w", t.id, err)
				cancel()
			}
		}
		removeQuiet(t.path)
		if err != nil {
			continue
		}
		n++
		if report {
			fmt.Fprintf(e.progress, "\r    Finished extracting %d of %d (%.2f%%) HMM models.", n, total, 100*float64(n)/float64(total))
		}
	}
	if report {
		fmt.Fprintln(e.progress)
	}
	return err
}

func appendFile(dst io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(dst, f)
	return err
}

func removeQuiet(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}

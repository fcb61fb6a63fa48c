// Package controller is the public façade exposing Start/Stop, orchestrating
// the session store, encoder supervisor, input capture, segment watcher, and
// uploader around a single session's lifecycle.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/captureforge/engine/internal/encoder"
	"github.com/captureforge/engine/internal/ingestclient"
	"github.com/captureforge/engine/internal/inputcapture"
	"github.com/captureforge/engine/internal/logging"
	"github.com/captureforge/engine/internal/model"
	"github.com/captureforge/engine/internal/notify"
	"github.com/captureforge/engine/internal/segments"
	"github.com/captureforge/engine/internal/session"
	"github.com/captureforge/engine/internal/uploader"
	"github.com/captureforge/engine/internal/workerpool"
)

var log = logging.L("controller")

// ErrEncoderUnavailable surfaces a fatal spawn failure for the encoder
// subprocess; the session is aborted.
var ErrEncoderUnavailable = errors.New("controller: encoder unavailable")

// state tracks the controller's lifecycle. It is informational —
// Start/Stop's actual contention control is the session store's own slot —
// but it lets Status report something more descriptive than "active/not".
type state int

const (
	stateIdle state = iota
	stateStarting
	stateRunning
	stateAborting
	stateStopping
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateStarting:
		return "starting"
	case stateRunning:
		return "running"
	case stateAborting:
		return "aborting"
	case stateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Options configures a Controller. New fills in defaults for Notifier
// (notify.LogNotifier{}), UploadWorkers (4) and UploadQueue (64) when they
// are left unset.
type Options struct {
	AppDataDir     string
	EncoderBinary  string
	FrameRate      int
	SegmentSeconds int
	BaseURL        string
	AuthToken      string
	UploadWorkers  int
	UploadQueue    int
	Notifier       notify.Notifier
}

// Controller is the C6 façade. One Controller manages exactly one session
// at a time via its embedded session.Store.
type Controller struct {
	opts   Options
	store  *session.Store
	client *ingestclient.Client
	pool   *workerpool.Pool

	mu    sync.Mutex
	state state

	// run holds the live worker handles for the session currently being
	// supervised; nil when idle.
	run *activeRun

	// captureFn runs the Input Capture worker. It defaults to
	// inputcapture.Run; tests override it to avoid depending on a real OS
	// global-input subscription (which capture_test.go's pure classify()
	// tests already exercise without one).
	captureFn func(ctx context.Context, sink inputcapture.Sink, scale inputcapture.ScaleFactorSource)
}

// activeRun bundles everything Stop needs to join the workers spawned by
// the most recent Start.
type activeRun struct {
	session    *session.Session
	stopCh     chan struct{}
	stopOnce   sync.Once
	watcherCtx context.Context
	cancelWatch context.CancelFunc
	wg         sync.WaitGroup
}

// New builds a Controller. opts.UploadWorkers/UploadQueue size the worker
// pool shared by segment uploads and the final event-batch POST, both
// dispatched as fire-and-forget tasks.
func New(opts Options) *Controller {
	if opts.UploadWorkers <= 0 {
		opts.UploadWorkers = 4
	}
	if opts.UploadQueue <= 0 {
		opts.UploadQueue = 64
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.LogNotifier{}
	}

	return &Controller{
		opts:      opts,
		store:     &session.Store{},
		client:    ingestclient.New(opts.BaseURL, opts.AuthToken),
		pool:      workerpool.New(opts.UploadWorkers, opts.UploadQueue),
		captureFn: inputcapture.Run,
	}
}

// Status reports whether a session is active and the controller's current
// state-machine position, without mutating anything — suitable for a CLI
// `status` subcommand.
func (c *Controller) Status() (active bool, st string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, active = c.store.Active()
	return active, c.state.String()
}

// Start occupies the session slot and brings up the encoder, input capture,
// and segment watcher workers for a new recording session. It returns
// session.ErrAlreadyActive if a session is already active, or
// ErrEncoderUnavailable if the encoder subprocess could not be spawned at
// all (the session is aborted in that case).
func (c *Controller) Start(ctx context.Context) error {
	// Best-effort auto-install; failure is logged, never fatal — a
	// subsequent spawn from PATH may still succeed.
	encoder.EnsureInstalled(ctx, encoder.InstallConfig{
		Binary:     c.opts.EncoderBinary,
		BaseURL:    c.opts.BaseURL,
		AuthToken:  c.opts.AuthToken,
		InstallDir: c.opts.AppDataDir,
	})

	// Occupy the session slot.
	// A rejected Create leaves the state of an already-running session as
	// it was.
	sess, err := c.store.Create(c.opts.AppDataDir)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state = stateStarting
	c.mu.Unlock()

	// Spawn the three long-running workers.
	watcherCtx, cancelWatch := context.WithCancel(context.Background())
	run := &activeRun{
		session:     sess,
		stopCh:      make(chan struct{}),
		watcherCtx:  watcherCtx,
		cancelWatch: cancelWatch,
	}

	up := &uploader.Uploader{
		RecordingsDir: sess.Paths.RecordingsDir,
		SegmentsCSV:   sess.Paths.SegmentsCSV,
		SessionID:     sess.ID,
		Client:        c.client,
		Pool:          c.pool,
	}
	watcher := &segments.Watcher{
		RecordingsDir: sess.Paths.RecordingsDir,
		Uploader:      up,
	}

	encCfg := encoder.Config{
		Binary:         c.opts.EncoderBinary,
		FrameRate:      c.opts.FrameRate,
		SegmentSeconds: c.opts.SegmentSeconds,
		Paths: encoder.Paths{
			RecordingsDir: sess.Paths.RecordingsDir,
			SegmentsCSV:   sess.Paths.SegmentsCSV,
			TimestampsTxt: sess.Paths.TimestampsTxt,
		},
	}

	spawnErr := make(chan error, 1)
	run.wg.Add(1)
	go func() {
		defer run.wg.Done()
		var sup encoder.Supervisor
		err := sup.Run(context.Background(), encCfg, run.stopCh)
		spawnErr <- err
	}()

	// The encoder's Run only returns an error synchronously on spawn
	// failure; give it a short window to report that before declaring
	// the session started. A spawn failure is fatal to the session;
	// an exit afterward is not handled here.
	select {
	case err := <-spawnErr:
		if err != nil {
			c.mu.Lock()
			c.state = stateAborting
			c.mu.Unlock()
			run.wg.Wait()
			c.store.Clear()
			c.mu.Lock()
			c.state = stateIdle
			c.mu.Unlock()
			return fmt.Errorf("%w: %v", ErrEncoderUnavailable, err)
		}
	case <-time.After(300 * time.Millisecond):
		// Encoder is still running; proceed to spawn the remaining workers.
	}

	run.wg.Add(2)
	go func() {
		defer run.wg.Done()
		c.captureFn(runCtxFromStop(run.stopCh), inputSink{store: c.store}, inputcapture.DefaultScaleFactorSource())
	}()
	go func() {
		defer run.wg.Done()
		watcher.Run(watcherCtx)
	}()

	c.mu.Lock()
	c.run = run
	c.state = stateRunning
	c.mu.Unlock()

	// Notify the host shell.
	notify.RecordingStarted(c.opts.Notifier)

	return nil
}

// Stop signals every worker spawned by Start to wind down, joins them,
// flushes the buffered input events, and clears the session slot. It
// returns session.ErrNotActive if no session is active.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	run := c.run
	if run == nil {
		c.mu.Unlock()
		return session.ErrNotActive
	}
	c.state = stateStopping
	c.mu.Unlock()

	// Signal the stop flag, then cancel the watcher's own context so its
	// poll loop exits rather than running forever.
	run.stopOnce.Do(func() { close(run.stopCh) })
	run.cancelWatch()

	// Join the encoder supervisor, input capture, and segment watcher
	// workers spawned by Start. Input capture's join is best-effort on
	// platforms where the OS listener can't be externally interrupted; we
	// still wait, since the hook's channel-close path unblocks it normally.
	joined := make(chan struct{})
	go func() {
		run.wg.Wait()
		close(joined)
	}()
	select {
	case <-joined:
	case <-time.After(10 * time.Second):
		log.Warn("worker join timed out, proceeding with drain anyway")
	}

	// Drain the buffered events and POST the batch fire-and-forget — Stop
	// does not block on the POST's completion.
	events, err := c.store.Drain()
	if err != nil {
		log.Warn("failed to drain events", logging.KeyError, err)
		events = nil
	}

	batch := model.DeventBatch{Events: make([]model.DeventRequest, 0, len(events))}
	for _, e := range events {
		batch.Events = append(batch.Events, model.ToDevent(run.session.ID, e))
	}

	client := c.client
	sessionID := run.session.ID
	if ok := c.pool.Submit(func() {
		postCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := client.PostEvents(postCtx, batch); err != nil {
			log.Warn("failed to post event batch", logging.KeyError, err, "session", sessionID, "events", len(batch.Events))
		} else {
			log.Info("posted event batch", "session", sessionID, "events", len(batch.Events))
		}
	}); !ok {
		log.Warn("event batch post rejected, pool full or stopped", "session", sessionID)
	}

	// Notify, clear the slot.
	notify.RecordingComplete(c.opts.Notifier, fmt.Sprintf("stopped session %s with %d events", sessionID, len(batch.Events)))
	c.store.Clear()

	c.mu.Lock()
	c.run = nil
	c.state = stateIdle
	c.mu.Unlock()

	return nil
}

// Shutdown drains the upload/event-post worker pool, waiting up to ctx's
// deadline. Call once when the host process itself is exiting.
func (c *Controller) Shutdown(ctx context.Context) {
	c.pool.StopAccepting()
	c.pool.Drain(ctx)
}

// inputSink adapts session.Store to inputcapture.Sink.
type inputSink struct {
	store *session.Store
}

func (s inputSink) Append(e model.InputEvent) error {
	return s.store.WithEvents(func(append func(model.InputEvent)) {
		append(e)
	})
}

// runCtxFromStop adapts the stop channel used by the encoder supervisor
// (chan struct{}) to the context.Context inputcapture.Run expects, so both
// components share one cancellation signal without inputcapture importing
// the encoder package's channel convention.
func runCtxFromStop(stop <-chan struct{}) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-stop
		cancel()
	}()
	return ctx
}

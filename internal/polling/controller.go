package polling

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/backend"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/prefs"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/state"
)

const (
	// DefaultInterval is the fixed polling period.
	DefaultInterval = time.Second
	// DefaultRequestTimeout bounds a single status request.
	DefaultRequestTimeout = 5 * time.Second
)

// Options configures a Controller.
type Options struct {
	Fetcher        backend.StatusFetcher
	Prefs          prefs.Store
	Interval       time.Duration
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// Controller shares one polling timer between any number of subscribers.
type Controller struct {
	fetcher  backend.StatusFetcher
	prefs    prefs.Store
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	// persistMu orders SetEnabled calls so the stored flag always matches
	// the last in-memory value. Held across prefs I/O, never under mu.
	persistMu sync.Mutex

	mu          sync.Mutex
	subscribers int
	enabled     bool
	closed      bool
	stop        chan struct{}
	gen         uint64 // bumped on every timer start and stop
	issued      uint64 // last probe sequence handed out
	applied     uint64 // sequence of the probe whose result busy reflects

	busy     *state.Value[bool]
	inflight sync.WaitGroup
}

// New builds a Controller and restores the persisted enable flag. A flag that
// cannot be read counts as disabled.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("polling: status fetcher required")
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemoryStore()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Controller{
		fetcher:  opts.Fetcher,
		prefs:    opts.Prefs,
		interval: opts.Interval,
		timeout:  opts.RequestTimeout,
		logger:   opts.Logger,
		busy:     state.NewValue(false),
	}

	raw, ok, err := c.prefs.Get(ctx, prefs.KeyPollingEnabled)
	switch {
	case err != nil:
		c.logger.Warn("read polling flag", zap.Error(err))
	case ok:
		enabled, perr := strconv.ParseBool(raw)
		if perr != nil {
			c.logger.Warn("ignore unparsable polling flag", zap.String("value", raw))
		}
		c.enabled = enabled
	}
	return c, nil
}

// Attach registers a subscriber. The first subscriber starts the timer when
// polling is enabled. Every Attach must be paired with one Detach.
func (c *Controller) Attach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers++
	c.startLocked()
}

// Detach releases a subscriber. The count never drops below zero; the timer
// stops when it reaches zero.
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribers > 0 {
		c.subscribers--
	}
	if c.subscribers == 0 {
		c.stopLocked()
	}
}

// SetEnabled toggles polling and persists the flag. Overlapping calls apply
// and persist in the order they acquire the controller. The toggle takes
// effect even when persisting fails; the persistence error is returned.
func (c *Controller) SetEnabled(ctx context.Context, enabled bool) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	c.enabled = enabled
	if enabled {
		c.startLocked()
	} else {
		c.stopLocked()
	}
	c.mu.Unlock()

	if err := c.prefs.Set(ctx, prefs.KeyPollingEnabled, strconv.FormatBool(enabled)); err != nil {
		c.logger.Warn("persist polling flag", zap.Bool("enabled", enabled), zap.Error(err))
		return fmt.Errorf("persist polling flag: %w", err)
	}
	return nil
}

// Probe requests the scanning status once and blocks until the result has been
// applied or discarded. Failures are logged and leave Busy unchanged.
func (c *Controller) Probe(ctx context.Context) {
	gen, seq := c.issue()
	c.probe(ctx, gen, seq)
}

// Subscribers reports the active subscriber count.
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscribers
}

// Enabled reports the enable flag.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Running reports whether the timer is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Busy exposes the last applied scanning status.
func (c *Controller) Busy() state.Reader[bool] {
	return c.busy
}

// Close stops the timer and waits for background probes to finish. Attach and
// SetEnabled no longer start the timer afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopLocked()
	c.mu.Unlock()
	c.inflight.Wait()
}

func (c *Controller) startLocked() {
	if c.closed || c.stop != nil || c.subscribers == 0 || !c.enabled {
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	c.gen++
	gen := c.gen

	c.logger.Debug("polling started", zap.Int("subscribers", c.subscribers), zap.Duration("interval", c.interval))

	c.goProbeLocked(gen)
	c.inflight.Add(1)
	go c.run(stop, gen)
}

func (c *Controller) stopLocked() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
	c.gen++
	c.logger.Debug("polling stopped", zap.Int("subscribers", c.subscribers))
}

func (c *Controller) run(stop <-chan struct{}, gen uint64) {
	defer c.inflight.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if gen == c.gen {
				c.goProbeLocked(gen)
			}
			c.mu.Unlock()
		}
	}
}

func (c *Controller) goProbeLocked(gen uint64) {
	c.issued++
	seq := c.issued
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.probe(context.Background(), gen, seq)
	}()
}

func (c *Controller) issue() (gen, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.gen, c.issued
}

func (c *Controller) probe(ctx context.Context, gen, seq uint64) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.fetcher.FetchScanningStatus(ctx)
	if err != nil {
		c.logger.Warn("scanning status probe failed", zap.Uint64("seq", seq), zap.Error(err))
		return
	}
	if !c.apply(gen, seq, status.IsRunning) {
		c.logger.Debug("discarded stale probe", zap.Uint64("seq", seq), zap.Uint64("gen", gen))
	}
}

func (c *Controller) apply(gen, seq uint64, running bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || seq <= c.applied {
		return false
	}
	c.applied = seq
	c.busy.Set(running)
	return true
}

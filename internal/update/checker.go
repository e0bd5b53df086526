package update

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/backend"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/state"
)

// DefaultReleaseURL is the published descriptor of the latest release.
const DefaultReleaseURL = "https://cos.yituliu.cn/endfield/endfield-essence-recognizer/version.json"

const defaultTimeout = 5 * time.Second

// Outcome is where a check ended up.
type Outcome int

const (
	OutcomeIdle Outcome = iota
	OutcomePending
	OutcomeUpdateAvailable
	OutcomeLatest
	OutcomeSilentLatest
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomePending:
		return "pending"
	case OutcomeUpdateAvailable:
		return "update-available"
	case OutcomeLatest:
		return "latest"
	case OutcomeSilentLatest:
		return "silent-latest"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Surfaced reports whether the outcome should be shown to the user.
func (o Outcome) Surfaced() bool {
	return o == OutcomeUpdateAvailable || o == OutcomeLatest || o == OutcomeFailed
}

// Terminal reports whether the check has finished.
func (o Outcome) Terminal() bool {
	return o != OutcomeIdle && o != OutcomePending
}

// Result describes one update check. LatestVersion is empty when unknown.
type Result struct {
	CurrentVersion string
	LatestVersion  string
	DownloadURL    string
	Outcome        Outcome
	Message        string
	CheckedAt      time.Time
}

// Checker compares the running backend's version against the latest release.
type Checker struct {
	fetcher    backend.VersionFetcher
	releaseURL string
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time

	mu     sync.Mutex
	gen    uint64
	result *state.Value[Result]
}

// Option configures a Checker.
type Option func(*Checker)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewChecker returns an idle Checker. An empty releaseURL selects
// DefaultReleaseURL.
func NewChecker(fetcher backend.VersionFetcher, releaseURL string, opts ...Option) *Checker {
	if strings.TrimSpace(releaseURL) == "" {
		releaseURL = DefaultReleaseURL
	}
	c := &Checker{
		fetcher:    fetcher,
		releaseURL: releaseURL,
		timeout:    defaultTimeout,
		logger:     zap.NewNop(),
		now:        time.Now,
		result:     state.NewValue(Result{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result exposes the latest published result.
func (c *Checker) Result() state.Reader[Result] {
	return c.result
}

// Check runs one update check and returns its result. When notifyIfLatest is
// false an up-to-date install ends in OutcomeSilentLatest, which is not
// surfaced. A newer Check supersedes this one: only the newest call publishes.
func (c *Checker) Check(ctx context.Context, notifyIfLatest bool) Result {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.result.Set(Result{Outcome: OutcomePending})
	c.mu.Unlock()

	res := c.check(ctx, notifyIfLatest)
	res.CheckedAt = c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("discarded superseded update check", zap.Stringer("outcome", res.Outcome))
		return res
	}
	c.result.Set(res)
	return res
}

func (c *Checker) check(ctx context.Context, notifyIfLatest bool) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	current, err := c.fetcher.FetchVersion(ctx)
	if err != nil {
		return c.fail(Result{}, err.Error(), err)
	}
	res := Result{CurrentVersion: current}
	if current == "" {
		return c.fail(res, "could not determine current version", nil)
	}

	release, err := c.fetcher.FetchLatestRelease(ctx, c.releaseURL)
	if err != nil {
		return c.fail(res, err.Error(), err)
	}
	res.LatestVersion = release.LatestVersion
	res.DownloadURL = release.DownloadURL
	if res.LatestVersion == "" {
		return c.fail(res, "could not determine latest version", nil)
	}

	switch {
	case CompareVersions(res.LatestVersion, res.CurrentVersion) > 0:
		res.Outcome = OutcomeUpdateAvailable
		c.logger.Info("update available",
			zap.String("current", res.CurrentVersion),
			zap.String("latest", res.LatestVersion),
		)
	case notifyIfLatest:
		res.Outcome = OutcomeLatest
	default:
		res.Outcome = OutcomeSilentLatest
	}
	return res
}

func (c *Checker) fail(res Result, msg string, err error) Result {
	res.Outcome = OutcomeFailed
	res.Message = msg
	c.logger.Warn("update check failed", zap.String("reason", msg), zap.Error(err))
	return res
}

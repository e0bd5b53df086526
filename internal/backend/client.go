package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusFetcher is the subset of the API used by the polling controller.
type StatusFetcher interface {
	FetchScanningStatus(ctx context.Context) (ScanningStatus, error)
}

// StaticDataFetcher is the subset of the API used by the static data cache.
type StaticDataFetcher interface {
	FetchWeapons(ctx context.Context) ([]Weapon, error)
	FetchWeaponTypes(ctx context.Context) ([]WeaponType, error)
	FetchEssences(ctx context.Context) ([]Essence, error)
	FetchRarityColors(ctx context.Context) (map[int]string, error)
}

// VersionFetcher is the subset of the API used by the update checker.
type VersionFetcher interface {
	FetchVersion(ctx context.Context) (string, error)
	FetchLatestRelease(ctx context.Context, releaseURL string) (ReleaseInfo, error)
}

// Ensure Client implements the fetcher interfaces at compile time.
var (
	_ StatusFetcher     = (*Client)(nil)
	_ StaticDataFetcher = (*Client)(nil)
	_ VersionFetcher    = (*Client)(nil)
)

// Client talks to the Essence Recognizer HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
	now       func() time.Time
}

const (
	defaultAPIBind   = "localhost:325"
	defaultUserAgent = "eer-client/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 8 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithLogger attaches a logger for per-request debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchScanningStatus reports whether the backend scanner is running.
func (c *Client) FetchScanningStatus(ctx context.Context) (ScanningStatus, error) {
	if c == nil {
		return ScanningStatus{}, fmt.Errorf("client is nil")
	}
	var payload ScanningStatus
	if err := c.do(ctx, "/api/scanning_status", &payload); err != nil {
		return ScanningStatus{}, err
	}
	return payload, nil
}

// FetchVersion returns the backend's own version. The endpoint answers with a
// JSON string or null; an empty string means the backend does not know it.
func (c *Client) FetchVersion(ctx context.Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	body, err := c.get(ctx, &url.URL{Path: "/api/version"})
	if err != nil {
		return "", err
	}
	return parseVersionBody(body), nil
}

// FetchLatestRelease fetches the published release descriptor. A cache-busting
// t parameter is added so intermediaries never serve a stale descriptor.
func (c *Client) FetchLatestRelease(ctx context.Context, releaseURL string) (ReleaseInfo, error) {
	if c == nil {
		return ReleaseInfo{}, fmt.Errorf("client is nil")
	}
	u, err := url.Parse(strings.TrimSpace(releaseURL))
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("parse release url %q: %w", releaseURL, err)
	}
	if !u.IsAbs() {
		return ReleaseInfo{}, fmt.Errorf("release url %q is not absolute", releaseURL)
	}
	values := u.Query()
	values.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = values.Encode()

	var payload ReleaseInfo
	if err := c.doURL(ctx, u, &payload); err != nil {
		return ReleaseInfo{}, err
	}
	return payload, nil
}

// FetchWeapons lists every weapon.
func (c *Client) FetchWeapons(ctx context.Context) ([]Weapon, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload WeaponListResponse
	if err := c.do(ctx, "/api/static/weapons", &payload); err != nil {
		return nil, err
	}
	return payload.Weapons, nil
}

// FetchWeaponTypes lists weapon categories with their member weapon ids.
func (c *Client) FetchWeaponTypes(ctx context.Context) ([]WeaponType, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload WeaponTypeListResponse
	if err := c.do(ctx, "/api/static/weapon_types", &payload); err != nil {
		return nil, err
	}
	return payload.WeaponTypes, nil
}

// FetchEssences lists every essence stat tag.
func (c *Client) FetchEssences(ctx context.Context) ([]Essence, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload EssenceListResponse
	if err := c.do(ctx, "/api/static/essences", &payload); err != nil {
		return nil, err
	}
	return payload.Essences, nil
}

// FetchRarityColors returns the rarity level to hex color mapping.
func (c *Client) FetchRarityColors(ctx context.Context) (map[int]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload RarityColorResponse
	if err := c.do(ctx, "/api/static/rarity_colors", &payload); err != nil {
		return nil, err
	}
	return payload.Colors, nil
}

func (c *Client) do(ctx context.Context, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, rel, dest)
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	body, err := c.get(ctx, rel)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", rel.Path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rel *url.URL) ([]byte, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("path", rel.Path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request complete",
		zap.String("path", rel.Path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// parseVersionBody accepts a JSON string, JSON null, or bare text.
func parseVersionBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var version *string
	if err := json.Unmarshal(trimmed, &version); err == nil {
		if version == nil {
			return ""
		}
		return strings.TrimSpace(*version)
	}
	return strings.TrimSpace(string(trimmed))
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

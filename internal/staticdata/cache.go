package staticdata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/backend"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/state"
)

// DefaultTimeout bounds one batch of four requests.
const DefaultTimeout = 5 * time.Second

// ErrSuperseded reports a load whose result was dropped because the cache was
// invalidated while it ran.
var ErrSuperseded = errors.New("staticdata: load superseded by invalidate")

// Cache holds the reference datasets shared by every consumer.
type Cache struct {
	fetcher backend.StaticDataFetcher
	logger  *zap.Logger
	timeout time.Duration

	mu    sync.Mutex
	gen   uint64
	group singleflight.Group

	data *state.Value[*Dataset]
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger for load diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds each load batch.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New returns an empty, unloaded cache.
func New(fetcher backend.StaticDataFetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher: fetcher,
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
		data:    state.NewValue(&Dataset{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the four datasets unless the cache is already loaded.
// Concurrent callers share one batch. Any failure leaves the cache exactly as
// it was and is returned.
func (c *Cache) Load(ctx context.Context) error {
	if c.data.Get().Loaded() {
		return nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	ch := c.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return nil, c.load(gen)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cache) load(gen uint64) error {
	c.mu.Lock()
	if gen == c.gen && c.data.Get().Loaded() {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var (
		weapons  []backend.Weapon
		types    []backend.WeaponType
		essences []backend.Essence
		colors   map[int]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weapons, err = c.fetcher.FetchWeapons(gctx)
		return wrapFetch("weapons", err)
	})
	g.Go(func() (err error) {
		types, err = c.fetcher.FetchWeaponTypes(gctx)
		return wrapFetch("weapon types", err)
	})
	g.Go(func() (err error) {
		essences, err = c.fetcher.FetchEssences(gctx)
		return wrapFetch("essences", err)
	})
	g.Go(func() (err error) {
		colors, err = c.fetcher.FetchRarityColors(gctx)
		return wrapFetch("rarity colors", err)
	})
	if err := g.Wait(); err != nil {
		c.logger.Warn("static data load failed", zap.Uint64("gen", gen), zap.Error(err))
		return err
	}

	next := newDataset(weapons, types, essences, colors)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("discarded superseded static data", zap.Uint64("gen", gen), zap.Uint64("current", c.gen))
		return ErrSuperseded
	}
	c.data.Set(next)
	c.logger.Info("static data loaded",
		zap.Int("weapons", len(next.weaponOrder)),
		zap.Int("weapon_types", len(next.weaponTypes)),
		zap.Int("essences", len(next.essenceOrder)),
		zap.Int("rarity_colors", len(next.rarityColors)),
	)
	return nil
}

func wrapFetch(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("fetch %s: %w", what, err)
}

// Invalidate marks the cache stale so the next Load fetches again. The current
// collections stay readable until that load succeeds. A load already running
// when Invalidate is called returns ErrSuperseded.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.data.Set(c.data.Get().unloaded())
}

// Loaded reports whether the cache holds a complete, current batch.
func (c *Cache) Loaded() bool {
	return c.data.Get().Loaded()
}

// Snapshot returns the current dataset. It never changes after publication.
func (c *Cache) Snapshot() *Dataset {
	return c.data.Get()
}

// Data lets observers wait for new datasets.
func (c *Cache) Data() state.Reader[*Dataset] {
	return c.data
}

// The lookups and views below read the current Snapshot; see Dataset for
// their semantics.

// Lookup finds an item of kind by id.
func (c *Cache) Lookup(kind Kind, id string) (any, bool) { return c.Snapshot().Lookup(kind, id) }

// Weapon returns the weapon with id.
func (c *Cache) Weapon(id string) (backend.Weapon, bool) { return c.Snapshot().Weapon(id) }

// WeaponType returns the weapon type with id.
func (c *Cache) WeaponType(id string) (backend.WeaponType, bool) {
	return c.Snapshot().WeaponType(id)
}

// Essence returns the essence with id.
func (c *Cache) Essence(id string) (backend.Essence, bool) { return c.Snapshot().Essence(id) }

// RarityColor returns the color for a rarity tier.
func (c *Cache) RarityColor(rarity int) (string, bool) { return c.Snapshot().RarityColor(rarity) }

// Weapons lists every weapon.
func (c *Cache) Weapons() []backend.Weapon { return c.Snapshot().Weapons() }

// WeaponTypes lists weapon types in sort order.
func (c *Cache) WeaponTypes() []backend.WeaponType { return c.Snapshot().WeaponTypes() }

// WeaponsOfType lists the weapons of one type.
func (c *Cache) WeaponsOfType(typeID string) []backend.Weapon {
	return c.Snapshot().WeaponsOfType(typeID)
}

// EssenceIDs lists essence ids of type t.
func (c *Cache) EssenceIDs(t backend.EssenceType) []string { return c.Snapshot().EssenceIDs(t) }

// AttributeStats lists attribute essences.
func (c *Cache) AttributeStats() []backend.Essence { return c.Snapshot().AttributeStats() }

// SecondaryStats lists secondary essences.
func (c *Cache) SecondaryStats() []backend.Essence { return c.Snapshot().SecondaryStats() }

// SkillStats lists skill essences.
func (c *Cache) SkillStats() []backend.Essence { return c.Snapshot().SkillStats() }

// StatsForWeapon returns the essence slots of a weapon.
func (c *Cache) StatsForWeapon(id string) EssenceStat { return c.Snapshot().StatsForWeapon(id) }

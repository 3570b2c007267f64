package surface

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

var _ Loader = (*CachingLoader)(nil)

// CachingLoader loads each reference at most once per process. Concurrent
// loads of the same reference share one call to the wrapped loader. Failed
// loads are not cached.
type CachingLoader struct {
	next  Loader
	group singleflight.Group

	mu      sync.RWMutex
	modules map[string]Module
}

func NewCachingLoader(next Loader) *CachingLoader {
	return &CachingLoader{next: next, modules: make(map[string]Module)}
}

func (c *CachingLoader) Name() string { return c.next.Name() }

func (c *CachingLoader) Load(ctx context.Context, ref string) (Module, error) {
	c.mu.RLock()
	mod, ok := c.modules[ref]
	c.mu.RUnlock()
	if ok {
		return mod, nil
	}

	v, err, _ := c.group.Do(ref, func() (any, error) {
		c.mu.RLock()
		mod, ok := c.modules[ref]
		c.mu.RUnlock()
		if ok {
			return mod, nil
		}

		mod, err := c.next.Load(ctx, ref)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.modules[ref] = mod
		c.mu.Unlock()
		return mod, nil
	})
	if err != nil {
		return nil, err
	}
	mod, _ = v.(Module)
	return mod, nil
}

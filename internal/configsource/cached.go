package configsource

import (
	"context"
	"sync"

	"github.com/eduquiz/backend/internal/domain/assessment"
)

// Cached loads from the wrapped source until the first success and then keeps
// returning that config. Failures are not cached, so a later call tries again.
type Cached struct {
	src Source

	mu     sync.Mutex
	cfg    assessment.AppConfig
	loaded bool
}

var _ Source = (*Cached)(nil)

func NewCached(src Source) *Cached {
	return &Cached{src: src}
}

func (c *Cached) Load(ctx context.Context) (assessment.AppConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.cfg, nil
	}
	cfg, err := c.src.Load(ctx)
	if err != nil {
		return assessment.AppConfig{}, err
	}
	c.cfg = cfg
	c.loaded = true
	return c.cfg, nil
}

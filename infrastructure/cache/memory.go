package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache guarda os resultados em memória com expiração por entrada.
// TTL zero significa que as entradas não expiram. A remoção das entradas
// expiradas fica a cargo de PurgeExpired, chamado pelo cron de limpeza.
type MemoryCache struct {
	items *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	return &MemoryCache{
		items: gocache.New(ttl, 0),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]float64, bool) {
	value, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}

	result, ok := value.([]float64)
	if !ok {
		return nil, false
	}

	return clone(result), true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []float64) error {
	c.items.Set(key, clone(value), gocache.DefaultExpiration)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// PurgeExpired remove as entradas expiradas e retorna quantas foram removidas
func (c *MemoryCache) PurgeExpired() int {
	before := c.items.ItemCount()
	c.items.DeleteExpired()

	return max(before-c.items.ItemCount(), 0)
}

// Len inclui entradas expiradas que ainda não foram removidas
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

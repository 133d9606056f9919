// Package secrets provides a process-wide credential cache. Credentials
// rarely rotate, so each one is fetched lazily once and held for the
// lifetime of the process; a caller that hits an authentication failure
// invalidates the entry so the next Get refetches.
package secrets

import (
	"fmt"
	"os"
	"sync"
)

// FetchFunc retrieves a named credential from the backing source.
type FetchFunc func(name string) (string, error)

// Cache caches fetched credentials by name. Safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	fetch  FetchFunc
	values map[string]string
}

// NewCache builds a cache over the given fetch function.
func NewCache(fetch FetchFunc) *Cache {
	return &Cache{
		fetch:  fetch,
		values: make(map[string]string),
	}
}

// NewEnvCache builds a cache backed by environment variables, the
// default credential source.
func NewEnvCache() *Cache {
	return NewCache(func(name string) (string, error) {
		v := os.Getenv(name)
		if v == "" {
			return "", fmt.Errorf("credential %s is not set", name)
		}
		return v, nil
	})
}

// Get returns the cached credential, fetching it on first use.
func (c *Cache) Get(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.values[name]; ok {
		return v, nil
	}
	v, err := c.fetch(name)
	if err != nil {
		return "", err
	}
	c.values[name] = v
	return v, nil
}

// Invalidate drops a cached credential so the next Get refetches it.
// Called after an authentication failure that suggests a stale value.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, name)
}

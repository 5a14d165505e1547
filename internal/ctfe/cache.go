package ctfe

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache holds parsed modules by path. It is safe for concurrent use;
// concurrent requests for the same uncached module share one read. A cache
// must only be used with one file system.
type Cache struct {
	mu      sync.RWMutex
	modules map[string]*Module
	group   singleflight.Group
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{modules: make(map[string]*Module)}
}

// Get returns the parsed module at name, reading it from fsys on a miss.
// Missing files are not cached.
func (c *Cache) Get(fsys fs.FS, name string) (*Module, error) {
	c.mu.RLock()
	m, ok := c.modules[name]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		m := ParseModule(name, string(data))

		c.mu.Lock()
		c.modules[name] = m
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading module %s: %w", name, err)
	}
	return v.(*Module), nil
}

// Invalidate drops the module at name so the next Get reads it again.
func (c *Cache) Invalidate(name string) {
	c.group.Forget(name)
	c.mu.Lock()
	delete(c.modules, name)
	c.mu.Unlock()
}

// Clear drops every cached module.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name := range c.modules {
		c.group.Forget(name)
	}
	c.modules = make(map[string]*Module)
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.modules)
}

// Resolve loads the module a relative specifier imported from the file
// from refers to, trying each candidate path in order.
func (c *Cache) Resolve(fsys fs.FS, from, spec string) (*Module, error) {
	candidates := Candidates(from, spec)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%q is not a relative module path", spec)
	}
	for _, name := range candidates {
		m, err := c.Get(fsys, name)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("module %q not found", spec)
}

// Package regexcache implements the anchored-regex compile-and-share cache
// used by log metadata queries. Entries are created on first use and never
// evicted; equal pattern text always yields the same compiled *regexp.Regexp
// across callers.
package regexcache

import (
	"fmt"
	"regexp"
	"sync"
)

// Cache maps pattern text to its compiled, anchored form.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*regexp.Regexp
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*regexp.Regexp)}
}

// Get returns the compiled anchored regex for pattern, compiling and
// caching it on first use. The compiled form is pattern wrapped as
// "^pattern$". Compile failures are returned to the caller without being
// cached.
//
// The read lock is released before compiling so compilation — the
// expensive part — never happens while holding the write lock, keeping the
// cache available to concurrent readers on the hot query path. Two
// goroutines racing to compile the same new pattern may both compile; only
// one write wins and every caller still observes a single cached entry
// afterward.
func (c *Cache) Get(pattern string) (*regexp.Regexp, error) {
	c.mu.RLock()
	if re, ok := c.entries[pattern]; ok {
		c.mu.RUnlock()
		return re, nil
	}
	c.mu.RUnlock()

	re, err := regexp.Compile(fmt.Sprintf("^%s$", pattern))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.entries[pattern]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.entries[pattern] = re
	c.mu.Unlock()

	return re, nil
}

// Len reports the number of distinct patterns currently cached. Exposed
// for tests that assert on cache growth.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

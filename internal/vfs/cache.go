// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// cache memoizes decompressed entry buffers keyed by registry path.
// Entries are written once and only ever removed wholesale by clear, so
// total residency never exceeds the sum of all raw sizes. Buffers handed
// out before a clear stay valid for their holders; clear only drops the
// cache's own references.
type cache struct {
	group singleflight.Group

	mu      sync.RWMutex
	buffers map[string][]byte
	size    int64
}

func newCache() *cache {
	return &cache{
		buffers: make(map[string][]byte),
	}
}

// get returns the buffer for key, calling fill exactly once per key even
// under concurrent first reads.
func (c *cache) get(key string, fill func() ([]byte, error)) ([]byte, error) {
	c.mu.RLock()
	buf, exists := c.buffers[key]
	c.mu.RUnlock()

	if exists {
		return buf, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		buf, exists := c.buffers[key]
		c.mu.RUnlock()

		if exists {
			return buf, nil
		}

		buf, err := fill()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.buffers[key] = buf
		c.size += int64(len(buf))
		c.mu.Unlock()

		return buf, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// residency returns the total bytes currently held by the cache.
func (c *cache) residency() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.size
}

// clear drops all buffers.
func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buffers = make(map[string][]byte)
	c.size = 0
}

// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/accounts/key/cache.go
package key

import (
	"container/list"
	"crypto/rand"

	"github.com/minio/highwayhash"
)

// NewPublicKeyCache initializes a new LRU cache holding up to capacity keys.
func NewPublicKeyCache(capacity int) *PublicKeyCache {
	if capacity < 1 {
		capacity = 1
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return &PublicKeyCache{
		capacity: capacity,
		key:      key,
		order:    list.New(),
		entries:  make(map[uint64]*list.Element),
	}
}

// fingerprint maps a key id onto the cache index.
func (c *PublicKeyCache) fingerprint(id string) uint64 {
	return highwayhash.Sum64([]byte(id), c.key)
}

// Get retrieves the public key cached for id.
func (c *PublicKeyCache) Get(id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.entries[c.fingerprint(id)]
	if !found {
		return nil, false
	}
	e := el.Value.(*cacheEntry)
	// Fingerprints may collide
	if e.id != id {
		return nil, false
	}
	c.order.MoveToFront(el)
	return e.publicKey, true
}

// Put inserts or refreshes the public key for id.
func (c *PublicKeyCache) Put(id string, publicKey []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fp := c.fingerprint(id)
	if el, found := c.entries[fp]; found {
		e := el.Value.(*cacheEntry)
		e.id, e.publicKey = id, publicKey
		c.order.MoveToFront(el)
		return
	}

	c.entries[fp] = c.order.PushFront(&cacheEntry{fingerprint: fp, id: id, publicKey: publicKey})
	if c.order.Len() > c.capacity {
		c.evict()
	}
}

// evict removes the least recently used key.
func (c *PublicKeyCache) evict() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cacheEntry).fingerprint)
}

// Len reports the number of cached keys.
func (c *PublicKeyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

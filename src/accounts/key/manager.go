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

// go/src/accounts/key/manager.go
package key

import (
	"crypto/rand"
	"fmt"
	"io"

	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"go.uber.org/zap"
)

// DefaultCacheSize bounds the manager's public key cache.
const DefaultCacheSize = 256

// NewManager initializes a Manager and registers its first key pair.
func NewManager(s Scheme, store *Keystore, l *zap.Logger) (*Manager, error) {
	if l == nil {
		l = zap.NewNop()
	}
	m := &Manager{
		scheme:  s,
		store:   store,
		cache:   NewPublicKeyCache(DefaultCacheSize),
		entropy: rand.Reader,
		log:     l,
	}
	rec, err := m.generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate initial key pair: %w", err)
	}
	m.current = rec.ID
	return m, nil
}

// generate stores a key pair derived from a fresh random seed.
func (m *Manager) generate() (*Record, error) {
	seed := make([]byte, m.scheme.Params().N)
	if _, err := io.ReadFull(m.entropy, seed); err != nil {
		return nil, err
	}
	rec, err := m.store.Generate(m.scheme, seed)
	for i := range seed {
		seed[i] = 0
	}
	if err != nil {
		return nil, err
	}
	m.cache.Put(rec.ID, rec.PublicKey)
	return rec, nil
}

// Current returns the id of the key the next signature will use.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// SignAndRotate signs message with the current key, then installs a new key
// pair. It returns the signature, the public key that verifies it and the
// public key that will sign next. The next key is stored before the current
// one is spent, so a failure on either side leaves the manager usable.
func (m *Manager) SignAndRotate(message []byte) ([]byte, *wots.PublicKey, *wots.PublicKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pk, err := m.publicKey(m.current)
	if err != nil {
		return nil, nil, nil, err
	}

	// Generate new key pair for the next message, unless a failed
	// signature left one waiting
	if m.next == nil {
		next, err := m.generate()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to generate new key pair: %w", err)
		}
		m.next = next
	}
	nextPK, err := wots.PublicKeyFromBytes(m.next.PublicKey, m.scheme.Params().N)
	if err != nil {
		return nil, nil, nil, err
	}

	// Sign with current private key
	sig, err := m.store.Sign(m.scheme, m.current, message)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to sign message: %w", err)
	}

	m.log.Info("rotated one-time key", zap.String("signed", m.current), zap.String("next", m.next.ID))
	m.current, m.next = m.next.ID, nil
	return sig, pk, nextPK, nil
}

// PublicKey returns the public key stored under id.
func (m *Manager) PublicKey(id string) (*wots.PublicKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.publicKey(id)
}

func (m *Manager) publicKey(id string) (*wots.PublicKey, error) {
	encoded, ok := m.cache.Get(id)
	if !ok {
		rec, err := m.store.Get(id)
		if err != nil {
			return nil, err
		}
		encoded = rec.PublicKey
		m.cache.Put(id, encoded)
	}
	return wots.PublicKeyFromBytes(encoded, m.scheme.Params().N)
}

// Verify checks sig over message against the key stored under id.
func (m *Manager) Verify(id string, message, sig []byte) bool {
	pk, err := m.PublicKey(id)
	if err != nil {
		return false
	}
	return m.scheme.Verify(pk.Bytes(), message, sig)
}

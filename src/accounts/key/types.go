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

// go/src/accounts/key/types.go
package key

import (
	"container/list"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"
)

var (
	// ErrKeyNotFound is returned when no record exists for a key id.
	ErrKeyNotFound = errors.New("key: not found")
	// ErrKeySpent is returned when a one-time key has already signed.
	ErrKeySpent = errors.New("key: one-time key already used")
)

// Scheme is the WOTS+ surface the keystore needs. *wots.WOTSPlus and the
// instrumented metrics.Scheme both satisfy it.
type Scheme interface {
	Params() *wots.ParameterSet
	Hash() hashes.Provider
	Backend() string
	GenerateKeyPair(seed []byte) (*wots.PublicKey, []byte, error)
	Sign(sk, msg []byte) ([]byte, error)
	Verify(pk, msg, sig []byte) bool
}

// Record is one stored one-time key. PrivateKey is cleared once the key
// has signed.
type Record struct {
	ID         string    `json:"id"`
	Hash       string    `json:"hash"`
	W          int       `json:"w"`
	PublicKey  []byte    `json:"publicKey"`
	PrivateKey []byte    `json:"privateKey,omitempty"`
	Spent      bool      `json:"spent"`
	Created    time.Time `json:"created"`
	SpentAt    time.Time `json:"spentAt,omitempty"`
}

// Keystore persists one-time keys in LevelDB.
type Keystore struct {
	mu  sync.Mutex // serializes spend transitions
	db  *leveldb.DB
	log *zap.Logger
}

// Manager signs with the current key and rotates to a fresh one.
type Manager struct {
	mu      sync.Mutex
	scheme  Scheme
	store   *Keystore
	cache   *PublicKeyCache
	current string
	next    *Record
	entropy io.Reader
	log     *zap.Logger
}

// PublicKeyCache is an LRU of encoded public keys keyed by the HighwayHash
// fingerprint of their key id.
type PublicKeyCache struct {
	capacity int
	mu       sync.Mutex
	key      []byte
	order    *list.List
	entries  map[uint64]*list.Element
}

type cacheEntry struct {
	fingerprint uint64
	id          string
	publicKey   []byte
}

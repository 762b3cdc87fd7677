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

// go/src/accounts/key/keystore.go
package key

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sphinx-core/wotsplus/src/common"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

var recordPrefix = []byte("wots/key/")

func recordKey(id string) []byte {
	return append(append([]byte{}, recordPrefix...), id...)
}

// OpenKeystore opens or creates the LevelDB keystore at dir.
func OpenKeystore(dir string, l *zap.Logger) (*Keystore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB: %w", err)
	}
	return newKeystore(db, l), nil
}

// NewMemKeystore returns a keystore backed by in-memory LevelDB storage.
func NewMemKeystore(l *zap.Logger) (*Keystore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory LevelDB: %w", err)
	}
	return newKeystore(db, l), nil
}

func newKeystore(db *leveldb.DB, l *zap.Logger) *Keystore {
	if l == nil {
		l = zap.NewNop()
	}
	return &Keystore{db: db, log: l}
}

// Close closes the LevelDB database.
func (k *Keystore) Close() error { return k.db.Close() }

// Generate derives a key pair from seed under s and stores it.
func (k *Keystore) Generate(s Scheme, seed []byte) (*Record, error) {
	pk, sk, err := s.GenerateKeyPair(seed)
	if err != nil {
		return nil, err
	}
	encoded := pk.Bytes()
	rec := &Record{
		ID:         common.KeyID(encoded),
		Hash:       s.Hash().Name(),
		W:          s.Params().W,
		PublicKey:  encoded,
		PrivateKey: sk,
		Created:    time.Now().UTC(),
	}
	if err := k.Put(rec); err != nil {
		return nil, err
	}
	k.log.Debug("stored one-time key", zap.String("id", rec.ID), zap.String("hash", rec.Hash))
	return rec, nil
}

// Put stores rec under its id. A spent record is never overwritten.
func (k *Keystore) Put(rec *Record) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if old, err := k.get(rec.ID); err == nil && old.Spent {
		return fmt.Errorf("%w: %s", ErrKeySpent, rec.ID)
	}
	return k.put(rec)
}

func (k *Keystore) put(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := k.db.Put(recordKey(rec.ID), data, nil); err != nil {
		return fmt.Errorf("failed to save key in LevelDB: %w", err)
	}
	return nil
}

// Get loads the record stored under id.
func (k *Keystore) Get(id string) (*Record, error) {
	return k.get(id)
}

func (k *Keystore) get(id string) (*Record, error) {
	data, err := k.db.Get(recordKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load key from LevelDB: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt key record %s: %w", id, err)
	}
	return &rec, nil
}

// Spend marks id as used and returns its private key. The spent flag is
// persisted before the key is handed out so a crash cannot enable reuse.
func (k *Keystore) Spend(id string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	rec, err := k.get(id)
	if err != nil {
		return nil, err
	}
	if rec.Spent {
		return nil, fmt.Errorf("%w: %s", ErrKeySpent, id)
	}
	sk := rec.PrivateKey
	rec.PrivateKey = nil
	rec.Spent = true
	rec.SpentAt = time.Now().UTC()
	if err := k.put(rec); err != nil {
		return nil, err
	}
	return sk, nil
}

// compatible reports whether rec was generated under the parameters of s.
func compatible(s Scheme, rec *Record) error {
	p := s.Params()
	switch {
	case rec.Hash != s.Hash().Name():
		return &wots.ConfigError{Reason: fmt.Sprintf("key %s uses hash %s, scheme uses %s", rec.ID, rec.Hash, s.Hash().Name())}
	case rec.W != p.W:
		return &wots.ConfigError{Reason: fmt.Sprintf("key %s uses w=%d, scheme uses w=%d", rec.ID, rec.W, p.W)}
	case len(rec.PublicKey) != p.PublicKeySize():
		return &wots.ConfigError{Reason: fmt.Sprintf("key %s has a %d-byte public key, scheme expects %d", rec.ID, len(rec.PublicKey), p.PublicKeySize())}
	}
	return nil
}

// Sign signs msg with the key stored under id and marks it spent. The key is
// left untouched when msg or the scheme parameters do not fit it.
func (k *Keystore) Sign(s Scheme, id string, msg []byte) ([]byte, error) {
	if m := s.Params().M; len(msg) != m {
		return nil, &wots.MalformedInputError{Field: "message", Expected: m, Got: len(msg)}
	}
	rec, err := k.Get(id)
	if err != nil {
		return nil, err
	}
	if err := compatible(s, rec); err != nil {
		return nil, err
	}
	sk, err := k.Spend(id)
	if err != nil {
		return nil, err
	}
	sig, err := s.Sign(sk, msg)
	for i := range sk {
		sk[i] = 0
	}
	if err != nil {
		return nil, err
	}
	k.log.Info("one-time key spent", zap.String("id", id))
	return sig, nil
}

// List returns every stored record in id order.
func (k *Keystore) List() ([]*Record, error) {
	iter := k.db.NewIterator(util.BytesPrefix(recordPrefix), nil)
	defer iter.Release()

	var out []*Record
	for iter.Next() {
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("corrupt key record %q: %w", iter.Key(), err)
		}
		out = append(out, &rec)
	}
	return out, iter.Error()
}

// Delete removes the record stored under id.
func (k *Keystore) Delete(id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.db.Delete(recordKey(id), nil)
}

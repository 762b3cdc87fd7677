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

package key

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sphinx-core/wotsplus/src/common"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newScheme(t testing.TB) *wots.WOTSPlus {
	t.Helper()
	w, err := wots.New(hashes.Keccak256())
	require.NoError(t, err)
	return w
}

func newStore(t testing.TB) *Keystore {
	t.Helper()
	ks, err := NewMemKeystore(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ks.Close() })
	return ks
}

func TestKeystoreGenerateAndGet(t *testing.T) {
	w := newScheme(t)
	ks := newStore(t)

	rec, err := ks.Generate(w, bytes.Repeat([]byte{4}, 32))
	require.NoError(t, err)
	assert.Equal(t, common.KeyID(rec.PublicKey), rec.ID)
	assert.Equal(t, 16, rec.W)
	assert.False(t, rec.Spent)

	got, err := ks.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.PublicKey, got.PublicKey)
	assert.Equal(t, rec.PrivateKey, got.PrivateKey)

	_, err = ks.Get("missing")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestKeystoreSignsOnce(t *testing.T) {
	w := newScheme(t)
	ks := newStore(t)
	rec, err := ks.Generate(w, bytes.Repeat([]byte{5}, 32))
	require.NoError(t, err)

	msg := bytes.Repeat([]byte{6}, 32)
	sig, err := ks.Sign(w, rec.ID, msg)
	require.NoError(t, err)
	assert.True(t, w.Verify(rec.PublicKey, msg, sig))

	_, err = ks.Sign(w, rec.ID, msg)
	assert.True(t, errors.Is(err, ErrKeySpent))

	spent, err := ks.Get(rec.ID)
	require.NoError(t, err)
	assert.True(t, spent.Spent)
	assert.Empty(t, spent.PrivateKey)
	assert.False(t, spent.SpentAt.IsZero())

	// Regenerating the same seed must not resurrect a spent key
	_, err = ks.Generate(w, bytes.Repeat([]byte{5}, 32))
	assert.True(t, errors.Is(err, ErrKeySpent))
}

func TestKeystoreRejectsMismatchedScheme(t *testing.T) {
	ks := newStore(t)
	w4, err := wots.New(hashes.Keccak256(), wots.WithW(4))
	require.NoError(t, err)
	rec, err := ks.Generate(w4, bytes.Repeat([]byte{6}, 32))
	require.NoError(t, err)
	msg := bytes.Repeat([]byte{0x33}, 32)

	sha3w4, err := wots.New(hashes.SHA3_256(), wots.WithW(4))
	require.NoError(t, err)
	short, err := wots.New(hashes.Keccak256(), wots.WithW(4), wots.WithN(16))
	require.NoError(t, err)
	for _, s := range []Scheme{newScheme(t), sha3w4, short} {
		_, err = ks.Sign(s, rec.ID, msg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, wots.ErrConfig))
	}

	stored, err := ks.Get(rec.ID)
	require.NoError(t, err)
	assert.False(t, stored.Spent)
	assert.NotEmpty(t, stored.PrivateKey)

	sig, err := ks.Sign(w4, rec.ID, msg)
	require.NoError(t, err)
	assert.True(t, w4.Verify(rec.PublicKey, msg, sig))
}

func TestKeystoreConcurrentSpend(t *testing.T) {
	w := newScheme(t)
	ks := newStore(t)
	rec, err := ks.Generate(w, bytes.Repeat([]byte{9}, 32))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ks.Spend(rec.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestKeystoreListAndDelete(t *testing.T) {
	w := newScheme(t)
	ks := newStore(t)
	ids := map[string]bool{}
	for i := byte(1); i <= 3; i++ {
		rec, err := ks.Generate(w, bytes.Repeat([]byte{i}, 32))
		require.NoError(t, err)
		ids[rec.ID] = true
	}

	recs, err := ks.List()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.True(t, ids[r.ID])
	}

	require.NoError(t, ks.Delete(recs[0].ID))
	recs, err = ks.List()
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestOpenKeystorePersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keystore")
	w := newScheme(t)

	ks, err := OpenKeystore(dir, nil)
	require.NoError(t, err)
	rec, err := ks.Generate(w, bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)
	_, err = ks.Spend(rec.ID)
	require.NoError(t, err)
	require.NoError(t, ks.Close())

	ks, err = OpenKeystore(dir, nil)
	require.NoError(t, err)
	defer ks.Close()
	got, err := ks.Get(rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Spent)
}

func TestPublicKeyCache(t *testing.T) {
	c := NewPublicKeyCache(2)
	c.Put("a", []byte{1})
	c.Put("b", []byte{2})

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte{1}, v)

	// b is now least recently used
	c.Put("c", []byte{3})
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)

	c.Put("a", []byte{9})
	v, _ = c.Get("a")
	assert.Equal(t, []byte{9}, v)
	assert.Equal(t, 2, c.Len())
}

func TestManagerSignAndRotate(t *testing.T) {
	w := newScheme(t)
	ks := newStore(t)
	m, err := NewManager(w, ks, zaptest.NewLogger(t))
	require.NoError(t, err)

	first := m.Current()
	msg := bytes.Repeat([]byte{0x11}, 32)
	sig, pk, nextPK, err := m.SignAndRotate(msg)
	require.NoError(t, err)

	assert.True(t, w.Verify(pk.Bytes(), msg, sig))
	assert.True(t, m.Verify(first, msg, sig))
	assert.False(t, pk.Equal(nextPK))
	assert.NotEqual(t, first, m.Current())
	assert.Equal(t, common.KeyID(nextPK.Bytes()), m.Current())

	rec, err := ks.Get(first)
	require.NoError(t, err)
	assert.True(t, rec.Spent)

	msg2 := bytes.Repeat([]byte{0x22}, 32)
	sig2, pk2, _, err := m.SignAndRotate(msg2)
	require.NoError(t, err)
	assert.True(t, pk2.Equal(nextPK))
	assert.True(t, w.Verify(pk2.Bytes(), msg2, sig2))
	assert.False(t, w.Verify(pk.Bytes(), msg2, sig2))
}

func TestManagerRejectsMalformedMessage(t *testing.T) {
	w := newScheme(t)
	m, err := NewManager(w, newStore(t), nil)
	require.NoError(t, err)

	cur := m.Current()
	_, _, _, err = m.SignAndRotate([]byte("short"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, wots.ErrMalformedInput))

	// The key was not burnt by the rejected request
	assert.Equal(t, cur, m.Current())
	_, _, _, err = m.SignAndRotate(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)

	assert.False(t, m.Verify("unknown", bytes.Repeat([]byte{1}, 32), make([]byte, w.SignatureSize())))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestManagerSurvivesFailedRotation(t *testing.T) {
	w := newScheme(t)
	ks := newStore(t)
	m, err := NewManager(w, ks, zaptest.NewLogger(t))
	require.NoError(t, err)

	cur := m.Current()
	msg := bytes.Repeat([]byte{0x44}, 32)
	m.entropy = failingReader{}
	_, _, _, err = m.SignAndRotate(msg)
	require.Error(t, err)

	// Nothing was spent and the same key signs once entropy is back
	assert.Equal(t, cur, m.Current())
	rec, err := ks.Get(cur)
	require.NoError(t, err)
	assert.False(t, rec.Spent)

	m.entropy = rand.Reader
	sig, pk, nextPK, err := m.SignAndRotate(msg)
	require.NoError(t, err)
	assert.Equal(t, cur, common.KeyID(pk.Bytes()))
	assert.True(t, w.Verify(pk.Bytes(), msg, sig))
	assert.Equal(t, common.KeyID(nextPK.Bytes()), m.Current())
}

func TestManagerKeepsPendingKeyAfterRejectedSign(t *testing.T) {
	w := newScheme(t)
	m, err := NewManager(w, newStore(t), nil)
	require.NoError(t, err)

	_, _, _, err = m.SignAndRotate([]byte("short"))
	require.Error(t, err)
	pending := m.next
	require.NotNil(t, pending)

	_, _, nextPK, err := m.SignAndRotate(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)
	assert.Equal(t, pending.ID, common.KeyID(nextPK.Bytes()))
	assert.Equal(t, pending.ID, m.Current())
}

func ExampleManager_SignAndRotate() {
	w, _ := wots.New(hashes.Keccak256())
	ks, _ := NewMemKeystore(nil)
	defer ks.Close()
	m, _ := NewManager(w, ks, nil)

	message := hashes.Keccak256().Digest([]byte("Hello, WOTS!"))
	sig, currentPK, nextPK, err := m.SignAndRotate(message)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Signature valid:", w.Verify(currentPK.Bytes(), message, sig))
	fmt.Println("Next public key exists:", nextPK != nil)

	tampered := hashes.Keccak256().Digest([]byte("Hello, WOTS?"))
	fmt.Println("Signature valid for tampered message:", w.Verify(currentPK.Bytes(), tampered, sig))

	sig[0] ^= 0xff
	fmt.Println("Signature valid for modified signature:", w.Verify(currentPK.Bytes(), message, sig))
	// Output:
	// Signature valid: true
	// Next public key exists: true
	// Signature valid for tampered message: false
	// Signature valid for modified signature: false
}

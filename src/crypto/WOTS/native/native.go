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

// Package native is an accelerated WOTS+ backend for the Keccak family. It
// hashes four chains at a time with a 4-way Keccak-f[1600] permutation and
// spreads chain groups across worker goroutines.
//
// It is only reachable when built without the purego tag on a CPU the 4-way
// permutation supports. Otherwise New fails with hashes.ErrUnavailable and the
// caller decides whether the reference backend is acceptable.
package native

import (
	"bytes"
	"runtime"

	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
)

// BackendName is reported by the accelerated backend.
const BackendName = "native"

// Sponge rate in bytes shared by Keccak-256 and SHA3-256.
const rate = 136

// Domain padding bytes of the supported providers.
var paddings = map[string]byte{
	hashes.NameKeccak256: 0x01,
	hashes.NameSHA3_256:  0x06,
}

// Known digests of knownInput, one per supported name. A provider only gets
// the fast path when its own digest agrees.
var knownInput = []byte("wotsplus native self-test")

var knownDigests = map[string][]byte{
	hashes.NameKeccak256: func() []byte {
		d := sha3.NewLegacyKeccak256()
		d.Write(knownInput)
		return d.Sum(nil)
	}(),
	hashes.NameSHA3_256: func() []byte {
		d := sha3.Sum256(knownInput)
		return d[:]
	}(),
}

// Supports reports whether the named provider has an accelerated variant.
func Supports(name string) bool {
	_, ok := paddings[name]
	return ok
}

// Option configures the backend.
type Option func(*config)

type config struct {
	workers int
	log     *zap.Logger
}

// WithWorkers caps the number of goroutines used per operation.
func WithWorkers(n int) Option { return func(c *config) { c.workers = n } }

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *zap.Logger) Option { return func(c *config) { c.log = l } }

func newConfig(opts []Option) config {
	c := config{workers: runtime.GOMAXPROCS(0), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.workers < 1 {
		c.workers = 1
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

func unavailable(name, reason string) error {
	return &hashes.UnavailableError{Name: name, Backend: BackendName, Reason: reason}
}

// check validates that p and h fit the single-block fast path.
func check(p *wots.ParameterSet, h hashes.Provider) (byte, error) {
	pad, ok := paddings[h.Name()]
	if !ok {
		return 0, unavailable(h.Name(), "no accelerated implementation")
	}
	if !bytes.Equal(h.Digest(knownInput), knownDigests[h.Name()]) {
		return 0, unavailable(h.Name(), "digest does not match "+h.Name())
	}
	// PRF inputs are 2n+32 bytes and F inputs 3n bytes; both must leave room
	// for the padding inside one block.
	if 2*p.N+wots.AddressSize >= rate || 3*p.N >= rate {
		return 0, unavailable(h.Name(), "n too large for single-block hashing")
	}
	return pad, nil
}

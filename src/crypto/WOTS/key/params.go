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

package wots

import (
	"fmt"
	"math/bits"
)

const (
	// DefaultW is the Winternitz parameter used when no override is given.
	DefaultW = 16
	// MinW and MaxW bound the accepted Winternitz parameter.
	MinW = 4
	MaxW = 1 << 16
)

// ParameterSet holds the WOTS+ constants. Only W, N and M are chosen; the
// chain counts are always derived from them.
type ParameterSet struct {
	W    int // Winternitz parameter (e.g., 4, 16, 256)
	N    int // Hash output size in bytes (e.g., 32 for Keccak-256)
	M    int // Message digest size in bytes
	LogW int // log2(W)
	Len1 int // Number of message chains
	Len2 int // Number of checksum chains
	Len  int // Len1 + Len2
}

// Option overrides one of the base parameters.
type Option func(*overrides)

type overrides struct {
	w, n, m int
}

// WithW overrides the Winternitz parameter.
func WithW(w int) Option { return func(o *overrides) { o.w = w } }

// WithN overrides the hash output length. The provider digest is truncated to N bytes.
func WithN(n int) Option { return func(o *overrides) { o.n = n } }

// WithM overrides the message length. It defaults to the digest size, not to N.
func WithM(m int) Option { return func(o *overrides) { o.m = m } }

// NewParameterSet validates the overrides against a hash provider whose digests
// are hashSize bytes long and derives the chain counts.
func NewParameterSet(hashSize int, opts ...Option) (*ParameterSet, error) {
	o := overrides{w: DefaultW, n: hashSize, m: hashSize}
	for _, opt := range opts {
		opt(&o)
	}

	if hashSize <= 0 {
		return nil, configErrorf("hash provider digest size %d is not positive", hashSize)
	}
	if o.w < MinW || o.w > MaxW || o.w&(o.w-1) != 0 {
		return nil, configErrorf("w=%d must be a power of two in [%d, %d]", o.w, MinW, MaxW)
	}
	if o.n <= 0 {
		return nil, configErrorf("n=%d must be positive", o.n)
	}
	if o.m <= 0 {
		return nil, configErrorf("m=%d must be positive", o.m)
	}
	if o.n > hashSize {
		return nil, configErrorf("n=%d exceeds the %d-byte digest of the hash provider", o.n, hashSize)
	}

	logW := bits.TrailingZeros(uint(o.w))
	len1 := (8*o.m + logW - 1) / logW
	// floor(log2(len1*(w-1))) / log2(w), computed on integers
	len2 := (bits.Len(uint(len1*(o.w-1)))-1)/logW + 1

	return &ParameterSet{
		W:    o.w,
		N:    o.n,
		M:    o.m,
		LogW: logW,
		Len1: len1,
		Len2: len2,
		Len:  len1 + len2,
	}, nil
}

// SignatureSize is the encoded signature length, Len*N bytes.
func (p *ParameterSet) SignatureSize() int { return p.Len * p.N }

// PublicKeySize is the encoded public key length, 2N bytes.
func (p *ParameterSet) PublicKeySize() int { return 2 * p.N }

// String renders the parameter set for logs.
func (p *ParameterSet) String() string {
	return fmt.Sprintf("w=%d n=%d m=%d len1=%d len2=%d len=%d", p.W, p.N, p.M, p.Len1, p.Len2, p.Len)
}

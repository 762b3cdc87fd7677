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
	"crypto/subtle"
	"fmt"

	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
)

// WOTSPlus signs and verifies with one parameter set, hash provider and
// backend. It holds no per-key state and is safe for concurrent use.
//
// A private key must sign exactly one message. Nothing here tracks that.
type WOTSPlus struct {
	params  *ParameterSet
	hash    hashes.Provider
	backend Backend
}

// New builds a WOTSPlus on the reference backend. Parameters default to
// w=16 and n=m=h.Size().
func New(h hashes.Provider, opts ...Option) (*WOTSPlus, error) {
	if !h.Valid() {
		return nil, configErrorf("hash provider is not initialised")
	}
	p, err := NewParameterSet(h.Size(), opts...)
	if err != nil {
		return nil, err
	}
	return &WOTSPlus{params: p, hash: h, backend: NewReference(p, h)}, nil
}

// NewWithBackend builds a WOTSPlus on an explicit backend.
func NewWithBackend(p *ParameterSet, h hashes.Provider, b Backend) *WOTSPlus {
	return &WOTSPlus{params: p, hash: h, backend: b}
}

// Params returns the parameter set.
func (w *WOTSPlus) Params() *ParameterSet { return w.params }

// Hash returns the hash provider.
func (w *WOTSPlus) Hash() hashes.Provider { return w.hash }

// Backend returns the name of the backend in use.
func (w *WOTSPlus) Backend() string { return w.backend.Name() }

// HashLen is N, the size of seeds and chain elements.
func (w *WOTSPlus) HashLen() int { return w.params.N }

// MessageLen is M, the size of signed messages.
func (w *WOTSPlus) MessageLen() int { return w.params.M }

// ChainLen is Len, the number of chains.
func (w *WOTSPlus) ChainLen() int { return w.params.Len }

// SignatureSize is Len*N.
func (w *WOTSPlus) SignatureSize() int { return w.params.SignatureSize() }

// PublicKeySize is 2N.
func (w *WOTSPlus) PublicKeySize() int { return w.params.PublicKeySize() }

// GenerateKeyPair derives the key pair of an N-byte seed. The returned private
// key is a copy of the seed; every secret chain start is recomputed from it.
func (w *WOTSPlus) GenerateKeyPair(seed []byte) (*PublicKey, []byte, error) {
	pk, err := w.PublicKeyFromPrivate(seed)
	if err != nil {
		return nil, nil, err
	}
	return pk, append([]byte(nil), seed...), nil
}

// PublicKeyFromPrivate recomputes the public key of a private key.
func (w *WOTSPlus) PublicKeyFromPrivate(sk []byte) (*PublicKey, error) {
	if err := checkLen("private key", sk, w.params.N); err != nil {
		return nil, err
	}
	p := w.params
	publicSeed := w.publicSeed(sk)

	// Every chain runs its full w-1 steps from the secret start
	ends := make([]byte, p.SignatureSize())
	w.backend.Expand(ends, sk, Address{})
	w.backend.Chains(ends, ends, make([]int, p.Len), fill(p.Len, p.W-1), Address{}, publicSeed)

	return &PublicKey{PublicSeed: publicSeed, Digest: w.compress(publicSeed, ends)}, nil
}

// Sign signs an M-byte message with an N-byte private key.
func (w *WOTSPlus) Sign(sk, msg []byte) ([]byte, error) {
	if err := checkLen("private key", sk, w.params.N); err != nil {
		return nil, err
	}
	digits, err := Encode(msg, w.params)
	if err != nil {
		return nil, err
	}
	p := w.params
	publicSeed := w.publicSeed(sk)

	// sig_i is the secret start advanced digits[i] steps
	sig := make([]byte, p.SignatureSize())
	w.backend.Expand(sig, sk, Address{})
	w.backend.Chains(sig, sig, make([]int, p.Len), digits, Address{}, publicSeed)
	return sig, nil
}

// Verify reports whether sig is a signature of msg under the encoded public
// key pk. Inputs of the wrong size yield false.
func (w *WOTSPlus) Verify(pk, msg, sig []byte) bool {
	p := w.params
	if len(pk) != p.PublicKeySize() || len(sig) != p.SignatureSize() || len(msg) != p.M {
		return false
	}
	digits := make([]int, p.Len)
	encodeInto(digits, msg, p)

	// Finish each chain: w-1-digits[i] remaining steps from position digits[i]
	steps := make([]int, p.Len)
	for i, d := range digits {
		steps[i] = p.W - 1 - d
	}
	publicSeed := pk[:p.N]
	ends := make([]byte, p.SignatureSize())
	w.backend.Chains(ends, sig, digits, steps, Address{}, publicSeed)

	return subtle.ConstantTimeCompare(w.compress(publicSeed, ends), pk[p.N:]) == 1
}

// VerifyKey is Verify for a decoded public key.
func (w *WOTSPlus) VerifyKey(pk *PublicKey, msg, sig []byte) bool {
	if pk == nil {
		return false
	}
	return w.Verify(pk.Bytes(), msg, sig)
}

// String describes the configuration for logs.
func (w *WOTSPlus) String() string {
	return fmt.Sprintf("wots+ %s/%s %s", w.hash.Name(), w.backend.Name(), w.params)
}

func (w *WOTSPlus) publicSeed(sk []byte) []byte {
	var adrs Address
	adrs.SetType(AddrTypePublicSeed)
	return PRF(sk, adrs, w.params, w.hash)
}

// compress binds all chain ends into one N-byte digest.
func (w *WOTSPlus) compress(publicSeed, ends []byte) []byte {
	buf := make([]byte, 0, len(publicSeed)+len(ends))
	buf = append(buf, publicSeed...)
	buf = append(buf, ends...)
	return w.hash.Digest(buf)[:w.params.N]
}

func fill(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

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

import "github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"

// Backend evaluates the two bulk operations of WOTS+: expanding a private key
// into secret chain starts and running many chains at once. Implementations
// must be byte-for-byte interchangeable; they differ only in speed.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Expand writes PRF(key, adrs{type=secret, chain=i}) into
	// out[i*N:(i+1)*N] for every chain i in [0, Len).
	Expand(out, key []byte, adrs Address)

	// Chains advances chain i from in[i*N:] by steps[i] positions starting at
	// start[i], writing the result to out[i*N:]. out may alias in.
	Chains(out, in []byte, start, steps []int, adrs Address, publicSeed []byte)
}

// BackendReference is the name of the portable backend.
const BackendReference = "reference"

// reference is the portable Backend. It calls the hash provider once per PRF
// or F evaluation and processes chains one after another.
type reference struct {
	params *ParameterSet
	hash   hashes.Provider
}

// NewReference returns the portable backend for p and h.
func NewReference(p *ParameterSet, h hashes.Provider) Backend {
	return &reference{params: p, hash: h}
}

func (r *reference) Name() string { return BackendReference }

func (r *reference) Expand(out, key []byte, adrs Address) {
	n := r.params.N
	t := newThash(r.params, r.hash)
	defer t.wipe()

	adrs.SetType(AddrTypeSecret)
	adrs.SetHash(0)
	adrs.SetKeyAndMask(0)
	for i := 0; i < r.params.Len; i++ {
		adrs.SetChain(uint32(i))
		t.prf(out[i*n:(i+1)*n], key, &adrs)
	}
}

func (r *reference) Chains(out, in []byte, start, steps []int, adrs Address, publicSeed []byte) {
	n := r.params.N
	t := newThash(r.params, r.hash)
	defer t.wipe()

	for i := 0; i < r.params.Len; i++ {
		adrs.SetChain(uint32(i))
		t.chain(out[i*n:(i+1)*n], in[i*n:(i+1)*n], start[i], steps[i], adrs, publicSeed)
	}
}

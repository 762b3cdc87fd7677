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

	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
)

// chain advances in by steps positions starting at step start and writes the
// result to out (which may alias in). Steps past w-2 are not applied, so no
// chain is ever longer than w-1 iterations.
func (t *thash) chain(out, in []byte, start, steps int, adrs Address, publicSeed []byte) {
	n := t.n
	copy(out[:n], in[:n])
	adrs.SetType(AddrTypeChain)
	for j := start; j < start+steps && j < t.w-1; j++ {
		adrs.SetHash(uint32(j))
		adrs.SetKeyAndMask(0)
		t.prf(t.key, publicSeed, &adrs)
		adrs.SetKeyAndMask(1)
		t.prf(t.mask, publicSeed, &adrs)
		for k := 0; k < n; k++ {
			t.mask[k] ^= out[k]
		}
		t.f(out, t.key, t.mask)
	}
}

// Chain applies steps keyed iterations to the n-byte value in, which sits at
// position start of chain chainIndex. Step j hashes x XOR mask under key, both
// derived from publicSeed and (chainIndex, j). Zero steps returns a copy of in.
func Chain(in []byte, start, steps int, chainIndex uint32, publicSeed []byte, p *ParameterSet, h hashes.Provider) []byte {
	var adrs Address
	adrs.SetType(AddrTypeChain)
	adrs.SetChain(chainIndex)
	return ChainAt(in, start, steps, adrs, publicSeed, p, h)
}

// ChainAt is Chain for a caller-supplied address, which carries the chain
// index. Its type, hash and keyAndMask words are overwritten.
//
// Both functions panic on negative positions or when in or publicSeed is
// shorter than N bytes.
func ChainAt(in []byte, start, steps int, adrs Address, publicSeed []byte, p *ParameterSet, h hashes.Provider) []byte {
	if start < 0 || steps < 0 {
		panic("wots: negative chain position")
	}
	if len(in) < p.N || len(publicSeed) < p.N {
		panic(fmt.Sprintf("wots: chain inputs must be %d bytes", p.N))
	}
	out := make([]byte, p.N)
	t := newThash(p, h)
	t.chain(out, in, start, steps, adrs, publicSeed)
	return out
}

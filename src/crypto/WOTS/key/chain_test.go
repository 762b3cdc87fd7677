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
	"encoding/hex"
	"testing"

	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainInputs() (in, publicSeed []byte) {
	in = make([]byte, 32)
	publicSeed = make([]byte, 32)
	for i := range in {
		in[i] = byte(i)
		publicSeed[i] = byte(2 * i)
	}
	return in, publicSeed
}

func TestChainKnownAnswer(t *testing.T) {
	p := mustParams(t)
	in, publicSeed := chainInputs()
	out := Chain(in, 4, 5, 7, publicSeed, p, hashes.Keccak256())
	assert.Equal(t, "21f32c0dfbeb761d128543513b543c1f86a547d28088d35a5b29c42e204fdc45", hex.EncodeToString(out))
}

func TestChainZeroStepsIsIdentity(t *testing.T) {
	p := mustParams(t)
	in, publicSeed := chainInputs()
	out := Chain(in, 3, 0, 1, publicSeed, p, hashes.Keccak256())
	assert.Equal(t, in, out)

	// The result is a copy
	out[0] ^= 1
	assert.Equal(t, byte(0), in[0])
}

func TestChainComposes(t *testing.T) {
	p := mustParams(t)
	h := hashes.SHA3_256()
	in, publicSeed := chainInputs()

	whole := Chain(in, 0, p.W-1, 9, publicSeed, p, h)
	for split := 0; split < p.W; split++ {
		mid := Chain(in, 0, split, 9, publicSeed, p, h)
		end := Chain(mid, split, p.W-1-split, 9, publicSeed, p, h)
		require.Equal(t, whole, end, "split at %d", split)
	}
}

func TestChainDomainSeparation(t *testing.T) {
	p := mustParams(t)
	h := hashes.Keccak256()
	in, publicSeed := chainInputs()

	base := Chain(in, 0, 1, 0, publicSeed, p, h)
	assert.NotEqual(t, base, Chain(in, 0, 1, 1, publicSeed, p, h), "chain index")
	assert.NotEqual(t, base, Chain(in, 1, 1, 0, publicSeed, p, h), "step index")

	otherSeed := append([]byte(nil), publicSeed...)
	otherSeed[31] ^= 1
	assert.NotEqual(t, base, Chain(in, 0, 1, 0, otherSeed, p, h), "public seed")
}

func TestChainStopsAtChainEnd(t *testing.T) {
	p := mustParams(t)
	h := hashes.Keccak256()
	in, publicSeed := chainInputs()

	end := Chain(in, 0, p.W-1, 2, publicSeed, p, h)
	assert.Equal(t, end, Chain(in, 0, p.W+10, 2, publicSeed, p, h))
	assert.Equal(t, end, Chain(end, p.W-1, 3, 2, publicSeed, p, h))
}

func TestChainRejectsNegativePositions(t *testing.T) {
	p := mustParams(t)
	in, publicSeed := chainInputs()
	assert.Panics(t, func() { Chain(in, -1, 2, 0, publicSeed, p, hashes.Keccak256()) })
	assert.Panics(t, func() { Chain(in, 0, -2, 0, publicSeed, p, hashes.Keccak256()) })
}

func TestChainRejectsShortInputs(t *testing.T) {
	p := mustParams(t)
	in, publicSeed := chainInputs()
	assert.PanicsWithValue(t, "wots: chain inputs must be 32 bytes", func() {
		Chain(in[:p.N-1], 0, 1, 0, publicSeed, p, hashes.Keccak256())
	})
	assert.Panics(t, func() { Chain(in, 0, 1, 0, publicSeed[:4], p, hashes.Keccak256()) })
	assert.Panics(t, func() { Chain(nil, 0, 0, 0, publicSeed, p, hashes.Keccak256()) })
}

func TestAddressEncoding(t *testing.T) {
	var adrs Address
	adrs.SetLayer(1)
	adrs.SetTree(0x0000000200000003)
	adrs.SetType(AddrTypeChain)
	adrs.SetKeyPair(4)
	adrs.SetChain(5)
	adrs.SetHash(6)
	adrs.SetKeyAndMask(1)
	assert.Equal(t,
		"00000001"+"00000002"+"00000003"+"00000000"+"00000004"+"00000005"+"00000006"+"00000001",
		hex.EncodeToString(adrs.Bytes()))
}

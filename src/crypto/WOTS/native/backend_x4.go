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

//go:build !purego

package native

import (
	"encoding/binary"
	"sort"
	"sync/atomic"

	"github.com/cloudflare/circl/simd/keccakf1600"
	"github.com/lni/goutils/syncutil"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"go.uber.org/zap"
)

// Available reports whether the 4-way permutation runs on this CPU.
func Available() bool { return keccakf1600.IsEnabledX4() }

// backend implements wots.Backend on top of the 4-way permutation.
type backend struct {
	params  *wots.ParameterSet
	pad     byte
	workers int
	log     *zap.Logger
}

// New returns the accelerated backend for p and h, or an error wrapping
// hashes.ErrUnavailable when h has no accelerated variant or the CPU lacks
// support.
func New(p *wots.ParameterSet, h hashes.Provider, opts ...Option) (wots.Backend, error) {
	cfg := newConfig(opts)
	if !Available() {
		return nil, unavailable(h.Name(), "4-way Keccak-f[1600] not supported on this CPU")
	}
	pad, err := check(p, h)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug("native backend ready",
		zap.String("hash", h.Name()),
		zap.Int("workers", cfg.workers),
		zap.Stringer("params", p))
	return &backend{params: p, pad: pad, workers: cfg.workers, log: cfg.log}, nil
}

func (b *backend) Name() string { return BackendName }

func (b *backend) Expand(out, key []byte, adrs wots.Address) {
	p := b.params
	n := p.N
	adrs.SetType(wots.AddrTypeSecret)
	adrs.SetHash(0)
	adrs.SetKeyAndMask(0)

	order := make([]int, p.Len)
	for i := range order {
		order[i] = i
	}
	b.run(order, func(x *x4, group []int) {
		for j, chain := range group {
			a := adrs
			a.SetChain(uint32(chain))
			x.prfBlock(j, n, key, &a)
		}
		x.hash(2*n + wots.AddressSize)
		for j, chain := range group {
			copy(out[chain*n:(chain+1)*n], x.out[j][:n])
		}
		x.wipe()
	})
}

func (b *backend) Chains(out, in []byte, start, steps []int, adrs wots.Address, publicSeed []byte) {
	p := b.params
	n := p.N
	adrs.SetType(wots.AddrTypeChain)

	// Clamp to the chain end so lanes agree with the reference backend
	effective := make([]int, p.Len)
	for i := range effective {
		s := steps[i]
		if limit := p.W - 1 - start[i]; s > limit {
			s = limit
		}
		if s < 0 {
			s = 0
		}
		effective[i] = s
	}

	// Group chains of similar length so that lanes idle as little as possible
	order := make([]int, p.Len)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool { return effective[order[a]] > effective[order[c]] })

	b.run(order, func(x *x4, group []int) {
		var cur [4][]byte
		var pos, left [4]int
		rounds := 0
		for j, chain := range group {
			cur[j] = append(x.cur[j][:0], in[chain*n:(chain+1)*n]...)
			pos[j] = start[chain]
			left[j] = effective[chain]
			if left[j] > rounds {
				rounds = left[j]
			}
		}

		for r := 0; r < rounds; r++ {
			// Keys, then masks, for every lane at its own position
			for km := uint32(0); km < 2; km++ {
				for j, chain := range group {
					a := adrs
					a.SetChain(uint32(chain))
					a.SetHash(uint32(pos[j]))
					a.SetKeyAndMask(km)
					x.prfBlock(j, n, publicSeed, &a)
				}
				x.hash(2*n + wots.AddressSize)
				for j := range group {
					copy(x.keys[km][j][:n], x.out[j][:n])
				}
			}

			// F(key, x XOR mask)
			for j := range group {
				blk := x.block[j][:]
				prefix(blk, n, padF)
				copy(blk[n:2*n], x.keys[0][j][:n])
				for k := 0; k < n; k++ {
					blk[2*n+k] = cur[j][k] ^ x.keys[1][j][k]
				}
			}
			x.hash(3 * n)
			for j := range group {
				if r < left[j] {
					copy(cur[j], x.out[j][:n])
					pos[j]++
				}
			}
		}

		for j, chain := range group {
			copy(out[chain*n:(chain+1)*n], cur[j])
		}
		x.wipe()
	})
}

// run hands groups of four chains from order to the worker pool and returns
// once every group is done.
func (b *backend) run(order []int, fn func(x *x4, group []int)) {
	groups := (len(order) + 3) / 4
	workers := b.workers
	if workers > groups {
		workers = groups
	}

	next := int64(-1)
	work := func() {
		x := newX4(b.pad)
		for {
			g := int(atomic.AddInt64(&next, 1))
			if g >= groups {
				return
			}
			end := 4 * (g + 1)
			if end > len(order) {
				end = len(order)
			}
			fn(x, order[4*g:end])
		}
	}

	if workers <= 1 {
		work()
		return
	}
	stopper := syncutil.NewStopper()
	for w := 0; w < workers; w++ {
		stopper.RunWorker(work)
	}
	stopper.Stop()
}

const (
	padF   = 0
	padPRF = 3
)

// prefix writes toByte(pad, n) into blk.
func prefix(blk []byte, n int, pad byte) {
	for i := 0; i < n-1; i++ {
		blk[i] = 0
	}
	blk[n-1] = pad
}

// x4 holds one 4-way sponge and the per-lane buffers of a worker.
type x4 struct {
	st    keccakf1600.StateX4
	a     []uint64
	pad   byte
	block [4][rate]byte
	out   [4][32]byte
	keys  [2][4][32]byte
	cur   [4][]byte
}

func newX4(pad byte) *x4 {
	x := &x4{pad: pad}
	x.a = x.st.Initialize(false)
	for j := range x.cur {
		x.cur[j] = make([]byte, 0, 32)
	}
	return x
}

// prfBlock lays out toByte(3, n) || key || adrs in lane j.
func (x *x4) prfBlock(j, n int, key []byte, adrs *wots.Address) {
	blk := x.block[j][:]
	prefix(blk, n, padPRF)
	copy(blk[n:2*n], key[:n])
	adrs.Put(blk[2*n : 2*n+wots.AddressSize])
}

// hash absorbs the first length bytes of every lane's block as one padded
// block, permutes, and squeezes 32 bytes per lane into out.
func (x *x4) hash(length int) {
	for j := range x.block {
		blk := &x.block[j]
		for k := length; k < rate; k++ {
			blk[k] = 0
		}
		blk[length] = x.pad
		blk[rate-1] |= 0x80
	}

	// Lane k of instance j lives at a[4*k+j]
	for k := 0; k < rate/8; k++ {
		for j := 0; j < 4; j++ {
			x.a[4*k+j] = binary.LittleEndian.Uint64(x.block[j][8*k:])
		}
	}
	for k := 4 * (rate / 8); k < 100; k++ {
		x.a[k] = 0
	}
	x.st.Permute()

	for j := 0; j < 4; j++ {
		for k := 0; k < 4; k++ {
			binary.LittleEndian.PutUint64(x.out[j][8*k:], x.a[4*k+j])
		}
	}
}

// wipe clears lane buffers that held secret inputs.
func (x *x4) wipe() {
	for j := range x.block {
		x.block[j] = [rate]byte{}
		x.out[j] = [32]byte{}
	}
	for j := range x.cur {
		c := x.cur[j][:cap(x.cur[j])]
		for k := range c {
			c[k] = 0
		}
	}
	x.keys = [2][4][32]byte{}
	for k := range x.a {
		x.a[k] = 0
	}
}

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

// Domain padding values, encoded as an N-byte big-endian prefix.
const (
	padF   = 0
	padPRF = 3
)

// thash evaluates PRF and F with reusable scratch space. It is not safe for
// concurrent use; every operation builds its own.
type thash struct {
	n    int
	w    int
	h    hashes.Provider
	buf  []byte // padding || key || payload
	key  []byte
	mask []byte
}

func newThash(p *ParameterSet, h hashes.Provider) *thash {
	payload := p.N
	if payload < AddressSize {
		payload = AddressSize
	}
	return &thash{
		n:    p.N,
		w:    p.W,
		h:    h,
		buf:  make([]byte, 2*p.N+payload),
		key:  make([]byte, p.N),
		mask: make([]byte, p.N),
	}
}

func (t *thash) prefix(pad byte, key []byte) {
	n := t.n
	for i := 0; i < n-1; i++ {
		t.buf[i] = 0
	}
	t.buf[n-1] = pad
	copy(t.buf[n:2*n], key)
}

// prf computes H(toByte(3, n) || key || adrs) into out.
func (t *thash) prf(out, key []byte, adrs *Address) {
	t.prefix(padPRF, key)
	adrs.Put(t.buf[2*t.n:])
	copy(out[:t.n], t.h.Digest(t.buf[:2*t.n+AddressSize]))
}

// f computes H(toByte(0, n) || key || in) into out.
func (t *thash) f(out, key, in []byte) {
	t.prefix(padF, key)
	copy(t.buf[2*t.n:3*t.n], in)
	copy(out[:t.n], t.h.Digest(t.buf[:3*t.n]))
}

// wipe clears scratch that may have held secret material.
func (t *thash) wipe() {
	zeroBytes(t.buf)
	zeroBytes(t.key)
	zeroBytes(t.mask)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// PRF returns H(toByte(3, n) || key || adrs) truncated to p.N bytes.
func PRF(key []byte, adrs Address, p *ParameterSet, h hashes.Provider) []byte {
	out := make([]byte, p.N)
	newThash(p, h).prf(out, key, &adrs)
	return out
}

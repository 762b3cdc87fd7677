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

import "encoding/binary"

// AddressSize is the encoded length of an Address.
const AddressSize = 32

// Address types. Every hash input carries one of them so that values derived
// for different purposes never share an input.
const (
	AddrTypeChain      uint32 = 0 // chain step keys and masks
	AddrTypeSecret     uint32 = 1 // secret chain starts
	AddrTypePublicSeed uint32 = 2 // public seed derivation
)

// Address is the 32-byte hash address: eight big-endian words
// layer | tree hi | tree lo | type | keypair | chain | hash | keyAndMask.
// Layer, tree and keypair stay zero for a standalone key and are free for a
// tree built on top of this package.
type Address [8]uint32

// SetLayer sets the layer word.
func (a *Address) SetLayer(layer uint32) { a[0] = layer }

// SetTree sets the two tree words.
func (a *Address) SetTree(tree uint64) {
	a[1] = uint32(tree >> 32)
	a[2] = uint32(tree)
}

// SetType sets the address type.
func (a *Address) SetType(t uint32) { a[3] = t }

// SetKeyPair sets the one-time key index.
func (a *Address) SetKeyPair(kp uint32) { a[4] = kp }

// SetChain sets the chain index i.
func (a *Address) SetChain(chain uint32) { a[5] = chain }

// SetHash sets the chain step j.
func (a *Address) SetHash(hash uint32) { a[6] = hash }

// SetKeyAndMask selects the key (0) or the bitmask (1) of a chain step.
func (a *Address) SetKeyAndMask(km uint32) { a[7] = km }

// Put writes the encoded address into dst, which must hold AddressSize bytes.
func (a *Address) Put(dst []byte) {
	for i, w := range a {
		binary.BigEndian.PutUint32(dst[4*i:], w)
	}
}

// Bytes returns the encoded address.
func (a *Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	a.Put(out)
	return out
}

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
)

// PublicKey is the compressed WOTS+ public key.
type PublicKey struct {
	PublicSeed []byte // N bytes, domain-separation seed of every chain
	Digest     []byte // N bytes, H(PublicSeed || pk_0 || ... || pk_{len-1})
}

// Bytes encodes the key as PublicSeed || Digest.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, 0, len(pk.PublicSeed)+len(pk.Digest))
	out = append(out, pk.PublicSeed...)
	return append(out, pk.Digest...)
}

// Equal compares two keys in constant time.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return subtle.ConstantTimeCompare(pk.Bytes(), other.Bytes()) == 1
}

// PublicKeyFromBytes splits a 2n-byte encoded key.
func PublicKeyFromBytes(b []byte, n int) (*PublicKey, error) {
	if err := checkLen("public key", b, 2*n); err != nil {
		return nil, err
	}
	seed := make([]byte, n)
	digest := make([]byte, n)
	copy(seed, b[:n])
	copy(digest, b[n:])
	return &PublicKey{PublicSeed: seed, Digest: digest}, nil
}

// SplitSignature cuts an encoded signature into its n-byte chain elements.
func SplitSignature(sig []byte, p *ParameterSet) ([][]byte, error) {
	if err := checkLen("signature", sig, p.SignatureSize()); err != nil {
		return nil, err
	}
	parts := make([][]byte, p.Len)
	for i := range parts {
		parts[i] = append([]byte(nil), sig[i*p.N:(i+1)*p.N]...)
	}
	return parts, nil
}

// JoinSignature concatenates chain elements in chain order.
func JoinSignature(parts [][]byte, p *ParameterSet) ([]byte, error) {
	if len(parts) != p.Len {
		return nil, &MalformedInputError{Field: "signature elements", Expected: p.Len, Got: len(parts)}
	}
	sig := make([]byte, 0, p.SignatureSize())
	for _, part := range parts {
		if err := checkLen("signature element", part, p.N); err != nil {
			return nil, err
		}
		sig = append(sig, part...)
	}
	return sig, nil
}

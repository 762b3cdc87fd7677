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

package hashes

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Registry names of the built-in providers.
const (
	NameKeccak256  = "keccak256"
	NameSHA3_256   = "sha3-256"
	NameSHA256     = "sha256"
	NameSHAKE256   = "shake256"
	NameBlake2b256 = "blake2b-256"
	NameBlake3     = "blake3"
)

// Keccak256 is the original (pre-FIPS padding) Keccak with a 32-byte digest.
func Keccak256() Provider {
	return mustNew(NameKeccak256, 32, func(data []byte) []byte {
		h := sha3.NewLegacyKeccak256()
		h.Write(data)
		return h.Sum(nil)
	})
}

// SHA3_256 is FIPS 202 SHA3-256.
func SHA3_256() Provider {
	return mustNew(NameSHA3_256, 32, func(data []byte) []byte {
		sum := sha3.Sum256(data)
		return sum[:]
	})
}

// SHA256 is FIPS 180-4 SHA-256.
func SHA256() Provider {
	return mustNew(NameSHA256, 32, func(data []byte) []byte {
		sum := sha256.Sum256(data)
		return sum[:]
	})
}

// SHAKE256 reads size bytes from SHAKE256.
func SHAKE256(size int) Provider {
	return mustNew(NameSHAKE256, size, func(data []byte) []byte {
		out := make([]byte, size)
		sha3.ShakeSum256(out, data)
		return out
	})
}

// Blake2b256 is unkeyed BLAKE2b with a 32-byte digest.
func Blake2b256() Provider {
	return mustNew(NameBlake2b256, 32, func(data []byte) []byte {
		sum := blake2b.Sum256(data)
		return sum[:]
	})
}

// Blake3 is BLAKE3 with its default 32-byte digest.
func Blake3() Provider {
	return mustNew(NameBlake3, 32, func(data []byte) []byte {
		sum := blake3.Sum256(data)
		return sum[:]
	})
}

func mustNew(name string, size int, fn Func) Provider {
	p, err := New(name, size, fn)
	if err != nil {
		panic(err)
	}
	return p
}

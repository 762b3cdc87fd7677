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

// Package hashes provides the digest capability WOTS+ is generic over and the
// named providers that can be selected by string.
package hashes

import (
	"errors"
	"fmt"
)

// Func returns the digest of data. It must be deterministic and must not keep
// state between calls.
type Func func(data []byte) []byte

// Provider is a named digest function of fixed output length.
type Provider struct {
	name string
	size int
	fn   Func
}

// New wraps fn as a provider. The declared size is checked against one trial
// digest so that a mismatched function is rejected before any key is derived.
func New(name string, size int, fn Func) (Provider, error) {
	if fn == nil {
		return Provider{}, errors.New("hashes: nil digest function")
	}
	if size <= 0 {
		return Provider{}, fmt.Errorf("hashes: %s declares non-positive digest size %d", name, size)
	}
	if got := len(fn(nil)); got != size {
		return Provider{}, fmt.Errorf("hashes: %s declares %d-byte digests but returned %d bytes", name, size, got)
	}
	return Provider{name: name, size: size, fn: fn}, nil
}

// Name is the provider's registry name, or the name given to New.
func (p Provider) Name() string { return p.name }

// Size is the digest length in bytes.
func (p Provider) Size() int { return p.size }

// Digest hashes data.
func (p Provider) Digest(data []byte) []byte { return p.fn(data) }

// Valid reports whether p was built by New or a named constructor.
func (p Provider) Valid() bool { return p.fn != nil }

// ErrUnavailable reports a named provider or backend that cannot be reached.
var ErrUnavailable = errors.New("hashes: provider unavailable")

// UnavailableError names the provider and backend that were requested.
type UnavailableError struct {
	Name    string
	Backend string
	Reason  string
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("hashes: %s provider %q unavailable", e.Backend, e.Name)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is lets errors.Is match ErrUnavailable.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

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

// Package provider builds WOTS+ engines from provider names, choosing between
// the reference backend and the accelerated one.
package provider

import (
	"fmt"
	"strings"

	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/native"
	"go.uber.org/zap"
)

// ErrUnavailable is returned when the requested provider or backend is not
// reachable in this build.
var ErrUnavailable = hashes.ErrUnavailable

// Preference selects the backend.
type Preference int

const (
	// Reference uses the portable backend only.
	Reference Preference = iota
	// Native requires the accelerated backend.
	Native
	// Auto uses the accelerated backend when reachable and the reference
	// backend otherwise. The fallback is logged.
	Auto
)

func (p Preference) String() string {
	switch p {
	case Reference:
		return "reference"
	case Native:
		return "native"
	case Auto:
		return "auto"
	default:
		return fmt.Sprintf("preference(%d)", int(p))
	}
}

// ParsePreference reads "reference", "native" or "auto".
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reference", "ref", "":
		return Reference, nil
	case "native":
		return Native, nil
	case "auto":
		return Auto, nil
	}
	return 0, fmt.Errorf("provider: unknown backend preference %q", s)
}

// Selector builds engines and reports the backend it picked.
type Selector struct {
	log        *zap.Logger
	nativeOpts []native.Option
}

// NewSelector returns a selector that logs to l.
func NewSelector(l *zap.Logger, nativeOpts ...native.Option) *Selector {
	if l == nil {
		l = zap.NewNop()
	}
	return &Selector{log: l, nativeOpts: append([]native.Option{native.WithLogger(l)}, nativeOpts...)}
}

// New builds the engine for the named provider.
func (s *Selector) New(name string, pref Preference, opts ...wots.Option) (*wots.WOTSPlus, error) {
	h, err := hashes.Lookup(name)
	if err != nil {
		return nil, err
	}
	ref, err := wots.New(h, opts...)
	if err != nil {
		return nil, err
	}
	if pref == Reference {
		return ref, nil
	}

	b, err := native.New(ref.Params(), h, s.nativeOpts...)
	if err != nil {
		if pref == Native {
			return nil, err
		}
		s.log.Info("accelerated backend unavailable, using reference backend",
			zap.String("hash", name), zap.Error(err))
		return ref, nil
	}
	return wots.NewWithBackend(ref.Params(), h, b), nil
}

var defaultSelector = NewSelector(nil)

// New builds the engine for the named provider with a silent selector.
func New(name string, pref Preference, opts ...wots.Option) (*wots.WOTSPlus, error) {
	return defaultSelector.New(name, pref, opts...)
}

// Keccak256 builds the Keccak-256 engine, the configuration of the published
// test vectors.
func Keccak256(pref Preference, opts ...wots.Option) (*wots.WOTSPlus, error) {
	return New(hashes.NameKeccak256, pref, opts...)
}

// Available reports which backends can serve the named provider.
func Available(name string) (reference, accelerated bool) {
	if _, err := hashes.Lookup(name); err != nil {
		return false, false
	}
	return true, native.Available() && native.Supports(name)
}

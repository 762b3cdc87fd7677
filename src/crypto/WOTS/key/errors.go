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
	"errors"
	"fmt"
)

var (
	// ErrConfig reports invalid or inconsistent parameters.
	ErrConfig = errors.New("wots: invalid configuration")
	// ErrMalformedInput reports a seed, message, key or signature of the wrong size.
	ErrMalformedInput = errors.New("wots: malformed input")
)

// ConfigError describes why a parameter set was rejected.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "wots: invalid configuration: " + e.Reason }

// Is lets errors.Is match ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// MalformedInputError names the argument that had the wrong length.
type MalformedInputError struct {
	Field    string
	Expected int
	Got      int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("wots: malformed input: %s must be %d bytes, got %d", e.Field, e.Expected, e.Got)
}

// Is lets errors.Is match ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

func checkLen(field string, b []byte, expected int) error {
	if len(b) != expected {
		return &MalformedInputError{Field: field, Expected: expected, Got: len(b)}
	}
	return nil
}

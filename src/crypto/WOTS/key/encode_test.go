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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParams(t testing.TB, opts ...Option) *ParameterSet {
	t.Helper()
	p, err := NewParameterSet(32, opts...)
	require.NoError(t, err)
	return p
}

func TestEncodeCountingMessage(t *testing.T) {
	p := mustParams(t)
	msg := make([]byte, 32)
	for i := range msg {
		msg[i] = byte(i)
	}
	digits, err := Encode(msg, p)
	require.NoError(t, err)
	require.Len(t, digits, 67)

	// Byte i splits into nibbles i>>4 and i&15
	for i := 0; i < 32; i++ {
		assert.Equal(t, i>>4, digits[2*i])
		assert.Equal(t, i&15, digits[2*i+1])
	}
	// checksum = 64*15 - 256 = 704 = 0x2c0
	assert.Equal(t, []int{2, 12, 0}, digits[64:])
}

func TestEncodeExtremes(t *testing.T) {
	p := mustParams(t)

	digits, err := Encode(make([]byte, 32), p)
	require.NoError(t, err)
	// checksum = 64*15 = 960 = 0x3c0
	assert.Equal(t, []int{3, 12, 0}, digits[64:])

	digits, err = Encode(bytes.Repeat([]byte{0xff}, 32), p)
	require.NoError(t, err)
	for _, d := range digits[:64] {
		assert.Equal(t, 15, d)
	}
	assert.Equal(t, []int{0, 0, 0}, digits[64:])
}

func TestEncodePartialFinalDigit(t *testing.T) {
	// log2(8) = 3 does not divide 256: digit 85 holds the last bit and two zero bits
	p := mustParams(t, WithW(8))

	digits, err := Encode(bytes.Repeat([]byte{0xff}, 32), p)
	require.NoError(t, err)
	require.Len(t, digits, 90)
	assert.Equal(t, 7, digits[84])
	assert.Equal(t, 4, digits[85])
	assert.Equal(t, []int{0, 0, 0, 3}, digits[86:])

	digits, err = Encode(make([]byte, 32), p)
	require.NoError(t, err)
	// checksum = 86*7 = 602 = 0o1132
	assert.Equal(t, []int{1, 1, 3, 2}, digits[86:])
}

func TestEncodeWideDigits(t *testing.T) {
	p := mustParams(t, WithW(256))
	msg := make([]byte, 32)
	for i := range msg {
		msg[i] = byte(255 - i)
	}
	digits, err := Encode(msg, p)
	require.NoError(t, err)
	for i := 0; i < 32; i++ {
		assert.Equal(t, 255-i, digits[i])
	}
	// checksum = sum(i) for i < 32 = 496 = 0x01f0
	assert.Equal(t, []int{1, 0xf0}, digits[32:])
}

func TestEncodeDigitRange(t *testing.T) {
	for _, w := range []int{4, 8, 16, 32, 256, 1024} {
		p := mustParams(t, WithW(w))
		msg := bytes.Repeat([]byte{0xa5, 0x3c, 0xff, 0x00}, 8)
		digits, err := Encode(msg, p)
		require.NoError(t, err)
		require.Len(t, digits, p.Len)

		checksum := 0
		for _, d := range digits[:p.Len1] {
			require.True(t, d >= 0 && d < w)
			checksum += w - 1 - d
		}
		decoded := 0
		for _, d := range digits[p.Len1:] {
			require.True(t, d >= 0 && d < w)
			decoded = decoded*w + d
		}
		assert.Equal(t, checksum, decoded, "w=%d", w)
	}
}

func TestEncodeRejectsWrongLength(t *testing.T) {
	p := mustParams(t)
	_, err := Encode(make([]byte, 31), p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

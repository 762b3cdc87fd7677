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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterSetDerivation(t *testing.T) {
	cases := []struct {
		w, len1, len2 int
	}{
		{4, 128, 5},
		{8, 86, 4},
		{16, 64, 3},
		{256, 32, 2},
	}
	for _, tc := range cases {
		p, err := NewParameterSet(32, WithW(tc.w))
		require.NoError(t, err, "w=%d", tc.w)
		assert.Equal(t, tc.len1, p.Len1, "len1 for w=%d", tc.w)
		assert.Equal(t, tc.len2, p.Len2, "len2 for w=%d", tc.w)
		assert.Equal(t, tc.len1+tc.len2, p.Len)
		assert.Equal(t, 32, p.N)
		assert.Equal(t, 32, p.M)
	}
}

func TestParameterSetDefaults(t *testing.T) {
	p, err := NewParameterSet(32)
	require.NoError(t, err)
	assert.Equal(t, DefaultW, p.W)
	assert.Equal(t, 4, p.LogW)
	assert.Equal(t, 67, p.Len)
	assert.Equal(t, 2144, p.SignatureSize())
	assert.Equal(t, 64, p.PublicKeySize())
}

func TestParameterSetOverrides(t *testing.T) {
	p, err := NewParameterSet(32, WithW(16), WithN(32), WithM(32))
	require.NoError(t, err)
	assert.Equal(t, 67, p.Len)

	// Truncating the digest is allowed
	p, err = NewParameterSet(32, WithN(24))
	require.NoError(t, err)
	assert.Equal(t, 24, p.N)
	assert.Equal(t, 32, p.M)

	// The message length is independent of N
	p, err = NewParameterSet(32, WithM(64))
	require.NoError(t, err)
	assert.Equal(t, 128, p.Len1)
	assert.Equal(t, 3, p.Len2)
}

func TestParameterSetRejects(t *testing.T) {
	cases := map[string][]Option{
		"n larger than digest": {WithN(64)},
		"zero n":               {WithN(0)},
		"negative m":           {WithM(-1)},
		"w not power of two":   {WithW(12)},
		"w too small":          {WithW(2)},
		"w zero":               {WithW(0)},
		"w too large":          {WithW(1 << 17)},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewParameterSet(32, opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
		})
	}

	_, err := NewParameterSet(0)
	assert.True(t, errors.Is(err, ErrConfig))
}

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
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedProvidersEmptyInput(t *testing.T) {
	cases := []struct {
		provider Provider
		expect   string
	}{
		{Keccak256(), "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{SHA3_256(), "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{SHA256(), "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHAKE256(32), "46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f"},
		{Blake2b256(), "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"},
		{Blake3(), "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
	}
	for _, tc := range cases {
		t.Run(tc.provider.Name(), func(t *testing.T) {
			assert.Equal(t, 32, tc.provider.Size())
			assert.Equal(t, tc.expect, hex.EncodeToString(tc.provider.Digest(nil)))
		})
	}
}

func TestSHA3Abc(t *testing.T) {
	got := SHA3_256().Digest([]byte("abc"))
	assert.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", hex.EncodeToString(got))
}

func TestNewRejectsMismatchedSize(t *testing.T) {
	_, err := New("short", 32, func([]byte) []byte { return make([]byte, 20) })
	require.Error(t, err)

	_, err = New("nil", 32, nil)
	require.Error(t, err)

	_, err = New("zero", 0, func([]byte) []byte { return nil })
	require.Error(t, err)

	p, err := New("custom", 20, func([]byte) []byte { return make([]byte, 20) })
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Name())
	assert.True(t, p.Valid())
	assert.False(t, Provider{}.Valid())
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{
		NameKeccak256, NameSHA3_256, NameSHA256, NameSHAKE256, NameBlake2b256, NameBlake3,
	}, Names())

	for _, name := range Names() {
		p, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := Lookup("md5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	var ue *UnavailableError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "md5", ue.Name)
}

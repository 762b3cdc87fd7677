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

package vectors

import (
	"path/filepath"
	"testing"

	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "testdata", "wotsplus_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 4)
	return files
}

func TestParseFileName(t *testing.T) {
	for name, want := range map[string]struct {
		hash string
		w    int
	}{
		"wotsplus_keccak256.json":       {"keccak256", 16},
		"wotsplus_sha3_256.json":        {"sha3-256", 16},
		"dir/wotsplus_sha3_256_w8.json": {"sha3-256", 8},
		"wotsplus_blake2b_256_w4.json":  {"blake2b-256", 4},
	} {
		h, w, err := ParseFileName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want.hash, h, name)
		assert.Equal(t, want.w, w, name)
		assert.Equal(t, filepath.Base(name), FileName(h, w))
	}
	_, _, err := ParseFileName("vectors.json")
	assert.Error(t, err)
}

func TestLoadOrder(t *testing.T) {
	vs, err := Load(filepath.Join("..", "testdata", "wotsplus_keccak256.json"))
	require.NoError(t, err)
	require.Len(t, vs, 4)
	for i, v := range vs {
		assert.Equal(t, "vector_"+string(rune('0'+i)), v.Name)
		assert.Len(t, v.PrivateKey, 32)
		assert.Len(t, v.PublicKey, 64)
		assert.Len(t, v.Signature, 67)
		assert.Equal(t, 16, v.W)
	}
	assert.Equal(t, make([]byte, 32), vs[0].PrivateKey)
}

func TestKnownAnswers(t *testing.T) {
	for _, file := range fixtures(t) {
		hash, w, err := ParseFileName(file)
		require.NoError(t, err)

		prefs := []provider.Preference{provider.Reference}
		if _, acc := provider.Available(hash); acc {
			prefs = append(prefs, provider.Native)
		}
		for _, pref := range prefs {
			t.Run(filepath.Base(file)+"/"+pref.String(), func(t *testing.T) {
				scheme, err := provider.New(hash, pref, wots.WithW(w))
				require.NoError(t, err)
				n, err := CheckFile(scheme, file)
				require.NoError(t, err)
				assert.Greater(t, n, 0)
			})
		}
	}
}

func TestCheckDetectsMismatch(t *testing.T) {
	file := filepath.Join("..", "testdata", "wotsplus_sha3_256_w8.json")
	vs, err := Load(file)
	require.NoError(t, err)
	v := vs[1]

	scheme, err := wots.New(hashes.SHA3_256(), wots.WithW(8))
	require.NoError(t, err)
	require.NoError(t, Check(scheme, v))

	wrongW, err := wots.New(hashes.SHA3_256())
	require.NoError(t, err)
	assert.Error(t, Check(wrongW, v))

	tampered := v
	tampered.Signature = append([][]byte(nil), v.Signature...)
	tampered.Signature[5] = make([]byte, 32)
	assert.ErrorContains(t, Check(scheme, tampered), "element 5")

	badKey := v
	badKey.PublicKey = append([]byte(nil), v.PublicKey...)
	badKey.PublicKey[40] ^= 1
	assert.ErrorContains(t, Check(scheme, badKey), "public key")
}

func TestGenerateReproducesFixtures(t *testing.T) {
	scheme, err := wots.New(hashes.Keccak256())
	require.NoError(t, err)
	want, err := Load(filepath.Join("..", "testdata", "wotsplus_keccak256.json"))
	require.NoError(t, err)

	got, err := Generate(scheme, len(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	path := filepath.Join(t.TempDir(), FileName("keccak256", 16))
	require.NoError(t, Write(path, got))
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestGenerateNonDefaultW(t *testing.T) {
	scheme, err := wots.New(hashes.SHA3_256(), wots.WithW(4))
	require.NoError(t, err)
	want, err := Load(filepath.Join("..", "testdata", "wotsplus_sha3_256_w4.json"))
	require.NoError(t, err)

	got, err := Generate(scheme, len(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

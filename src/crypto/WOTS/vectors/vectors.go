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

// Package vectors loads, checks and generates the JSON known-answer files
// shared with other WOTS+ implementations.
//
// A file maps "vector_<i>" to an entry holding the 0x-hex private key,
// message, encoded public key and signature elements. Entries for w != 16
// carry an explicit "w" field. The hash is named by the file:
// wotsplus_<hash>[_w<w>].json with underscores standing in for dashes.
package vectors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sphinx-core/wotsplus/src/common"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"golang.org/x/crypto/sha3"
)

// Vector is one decoded known-answer entry.
type Vector struct {
	Name       string
	PrivateKey []byte
	Message    []byte
	PublicKey  []byte
	Signature  [][]byte
	W          int
}

type entry struct {
	PrivateKey string   `json:"privateKey"`
	Message    string   `json:"message"`
	PublicKey  string   `json:"publicKey"`
	Signature  []string `json:"signature"`
	W          int      `json:"w,omitempty"`
}

var fileName = regexp.MustCompile(`^wotsplus_(.+?)(?:_w(\d+))?\.json$`)

// ParseFileName returns the hash provider name and Winternitz parameter
// encoded in a vector file name. w defaults to wots.DefaultW.
func ParseFileName(path string) (hash string, w int, err error) {
	m := fileName.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", 0, fmt.Errorf("vectors: unrecognised file name %q", filepath.Base(path))
	}
	w = wots.DefaultW
	if m[2] != "" {
		if w, err = strconv.Atoi(m[2]); err != nil {
			return "", 0, fmt.Errorf("vectors: bad w in %q: %w", path, err)
		}
	}
	return strings.ReplaceAll(m[1], "_", "-"), w, nil
}

// FileName is the inverse of ParseFileName.
func FileName(hash string, w int) string {
	name := "wotsplus_" + strings.ReplaceAll(hash, "-", "_")
	if w != wots.DefaultW {
		name += "_w" + strconv.Itoa(w)
	}
	return name + ".json"
}

// Load reads a vector file. Vectors are returned in index order.
func Load(path string) ([]Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vectors: %s: %w", path, err)
	}

	out := make([]Vector, 0, len(raw))
	for name, e := range raw {
		v, err := decode(name, e)
		if err != nil {
			return nil, fmt.Errorf("vectors: %s: %w", path, err)
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return index(out[i].Name) < index(out[j].Name) })
	return out, nil
}

func index(name string) int {
	i, err := strconv.Atoi(strings.TrimPrefix(name, "vector_"))
	if err != nil {
		return -1
	}
	return i
}

func decode(name string, e entry) (Vector, error) {
	v := Vector{Name: name, W: e.W}
	if v.W == 0 {
		v.W = wots.DefaultW
	}
	var err error
	if v.PrivateKey, err = common.Hex2Bytes(e.PrivateKey); err != nil {
		return v, fmt.Errorf("%s.privateKey: %w", name, err)
	}
	if v.Message, err = common.Hex2Bytes(e.Message); err != nil {
		return v, fmt.Errorf("%s.message: %w", name, err)
	}
	if v.PublicKey, err = common.Hex2Bytes(e.PublicKey); err != nil {
		return v, fmt.Errorf("%s.publicKey: %w", name, err)
	}
	v.Signature = make([][]byte, len(e.Signature))
	for i, s := range e.Signature {
		if v.Signature[i], err = common.Hex2Bytes(s); err != nil {
			return v, fmt.Errorf("%s.signature[%d]: %w", name, i, err)
		}
	}
	return v, nil
}

func (v Vector) encode() entry {
	e := entry{
		PrivateKey: common.BytesToHexWithPrefix(v.PrivateKey),
		Message:    common.BytesToHexWithPrefix(v.Message),
		PublicKey:  common.BytesToHexWithPrefix(v.PublicKey),
		Signature:  make([]string, len(v.Signature)),
	}
	for i, s := range v.Signature {
		e.Signature[i] = common.BytesToHexWithPrefix(s)
	}
	if v.W != wots.DefaultW {
		e.W = v.W
	}
	return e
}

// Check verifies that w reproduces v: the public key derived from the
// private key, the exact signature, and acceptance by Verify.
func Check(w *wots.WOTSPlus, v Vector) error {
	if v.W != w.Params().W {
		return fmt.Errorf("%s: vector uses w=%d, scheme uses w=%d", v.Name, v.W, w.Params().W)
	}
	pk, err := w.PublicKeyFromPrivate(v.PrivateKey)
	if err != nil {
		return fmt.Errorf("%s: %w", v.Name, err)
	}
	if !bytes.Equal(pk.Bytes(), v.PublicKey) {
		return fmt.Errorf("%s: public key mismatch", v.Name)
	}
	want, err := wots.JoinSignature(v.Signature, w.Params())
	if err != nil {
		return fmt.Errorf("%s: %w", v.Name, err)
	}
	sig, err := w.Sign(v.PrivateKey, v.Message)
	if err != nil {
		return fmt.Errorf("%s: %w", v.Name, err)
	}
	if !bytes.Equal(sig, want) {
		for i, part := range v.Signature {
			if !bytes.Equal(sig[i*w.HashLen():(i+1)*w.HashLen()], part) {
				return fmt.Errorf("%s: signature mismatch at element %d", v.Name, i)
			}
		}
	}
	if !w.Verify(v.PublicKey, v.Message, want) {
		return fmt.Errorf("%s: signature rejected", v.Name)
	}
	return nil
}

// CheckFile loads path and checks every vector against w.
func CheckFile(w *wots.WOTSPlus, path string) (int, error) {
	vs, err := Load(path)
	if err != nil {
		return 0, err
	}
	for _, v := range vs {
		if err := Check(w, v); err != nil {
			return 0, err
		}
	}
	return len(vs), nil
}

// material derives deterministic test input from a label. 32-byte outputs
// are plain Keccak-256 so files stay reproducible by other implementations.
func material(label string, size int) []byte {
	if size <= 32 {
		d := sha3.NewLegacyKeccak256()
		d.Write([]byte(label))
		return d.Sum(nil)[:size]
	}
	out := make([]byte, size)
	sha3.ShakeSum256(out, []byte(label))
	return out
}

// Generate produces count vectors under w. vector_0 signs the all-zero
// message with the all-zero key and the last vector signs all-0xff.
func Generate(w *wots.WOTSPlus, count int) ([]Vector, error) {
	out := make([]Vector, 0, count)
	for i := 0; i < count; i++ {
		sk := make([]byte, w.HashLen())
		msg := make([]byte, w.MessageLen())
		if i > 0 {
			sk = material(fmt.Sprintf("wotsplus private key %d", i), w.HashLen())
			msg = material(fmt.Sprintf("wotsplus message %d", i), w.MessageLen())
		}
		if i == count-1 {
			msg = bytes.Repeat([]byte{0xff}, w.MessageLen())
		}

		pk, _, err := w.GenerateKeyPair(sk)
		if err != nil {
			return nil, err
		}
		sig, err := w.Sign(sk, msg)
		if err != nil {
			return nil, err
		}
		parts, err := wots.SplitSignature(sig, w.Params())
		if err != nil {
			return nil, err
		}
		out = append(out, Vector{
			Name:       "vector_" + strconv.Itoa(i),
			PrivateKey: sk,
			Message:    msg,
			PublicKey:  pk.Bytes(),
			Signature:  parts,
			W:          w.Params().W,
		})
	}
	return out, nil
}

// Write stores vs as a vector file.
func Write(path string, vs []Vector) error {
	raw := make(map[string]entry, len(vs))
	for _, v := range vs {
		raw[v.Name] = v.encode()
	}
	return common.WriteJSONToFile(raw, path)
}

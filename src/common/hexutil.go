// MIT License
//
// # Copyright (c) 2024 sphinx-core
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

// go/src/common/hexutil.go
package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/sha3"
)

// keyIDPrefix is prepended to every key identifier before Base58 encoding.
const keyIDPrefix = 0x77 // ASCII 'w'

// keyIDSize is the number of fingerprint bytes in a key identifier.
const keyIDSize = 20

// Bytes2Hex converts bytes to hexadecimal string
func Bytes2Hex(b []byte) string {
	return hex.EncodeToString(b)
}

// BytesToHexWithPrefix converts bytes to hex with "0x" prefix
func BytesToHexWithPrefix(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// Hex2Bytes converts a hex string, with or without the "0x" prefix, to bytes
func Hex2Bytes(s string) ([]byte, error) {
	cleanHex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	return hex.DecodeString(cleanHex)
}

// HexToFixed decodes a hex string that must hold exactly size bytes
func HexToFixed(s string, size int) ([]byte, error) {
	b, err := Hex2Bytes(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != size {
		return nil, fmt.Errorf("invalid length: expected %d bytes, got %d", size, len(b))
	}
	return b, nil
}

// IsValidHexString checks if a string is valid hexadecimal
func IsValidHexString(s string) bool {
	_, err := Hex2Bytes(s)
	return err == nil
}

// KeyID derives the Base58 identifier of an encoded public key: a prefix byte
// followed by a 20-byte SHAKE256 fingerprint.
func KeyID(publicKey []byte) string {
	// Fingerprint the full public key
	fingerprint := make([]byte, keyIDSize)
	sha3.ShakeSum256(fingerprint, publicKey)

	// Add the prefix byte and encode in Base58
	idBytes := append([]byte{keyIDPrefix}, fingerprint...)
	return base58.Encode(idBytes)
}

// DecodeKeyID decodes a Base58 key identifier and checks its prefix byte
func DecodeKeyID(id string) ([]byte, error) {
	idBytes := base58.Decode(id)
	if len(idBytes) != keyIDSize+1 {
		return nil, fmt.Errorf("invalid key id: %s", id)
	}
	if idBytes[0] != keyIDPrefix {
		return nil, fmt.Errorf("invalid key id prefix: %x", idBytes[0])
	}
	return idBytes[1:], nil
}

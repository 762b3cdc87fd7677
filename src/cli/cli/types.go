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

// go/src/cli/cli/types.go
package cli

import (
	"errors"
	"flag"
	"io"

	"github.com/sphinx-core/wotsplus/src/common"
)

// ErrInvalidSignature is returned by verify when the signature is rejected.
var ErrInvalidSignature = errors.New("signature is invalid")

// Config carries the flags shared by every subcommand.
type Config struct {
	configFile string
	common.Config
}

// command is one wotsplus subcommand.
type command struct {
	name  string
	usage string
	run   func(env *env, args []string) error
}

// env is the state handed to a running subcommand.
type env struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
	fs     *flag.FlagSet
}

// KeyPairJSON is the keygen output.
type KeyPairJSON struct {
	ID         string `json:"id"`
	Hash       string `json:"hash"`
	W          int    `json:"w"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey,omitempty"`
	Stored     bool   `json:"stored,omitempty"`
}

// BenchResult is one line of bench output.
type BenchResult struct {
	Op         string  `json:"op"`
	Backend    string  `json:"backend"`
	Iterations int     `json:"iterations"`
	NsPerOp    int64   `json:"nsPerOp"`
	OpsPerSec  float64 `json:"opsPerSec"`
}

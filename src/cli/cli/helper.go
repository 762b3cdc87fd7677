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

// go/src/cli/cli/helper.go
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sphinx-core/wotsplus/src/accounts/key"
	"github.com/sphinx-core/wotsplus/src/common"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/native"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/provider"
	logger "github.com/sphinx-core/wotsplus/src/log"
	"github.com/sphinx-core/wotsplus/src/metrics"
)

// newFlagSet registers the shared flags on a fresh FlagSet.
func newFlagSet(name string, cfg *Config, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.configFile, "config", "", "Path to JSON configuration file")
	fs.StringVar(&cfg.Hash, "hash", cfg.Hash, "Hash provider ("+providerNames()+")")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Backend preference (reference, native, auto)")
	fs.IntVar(&cfg.W, "w", cfg.W, "Winternitz parameter (power of two, 4..65536)")
	fs.IntVar(&cfg.N, "n", cfg.N, "Hash output length in bytes (0 for the digest size)")
	fs.IntVar(&cfg.M, "m", cfg.M, "Message length in bytes (0 for the digest size)")
	fs.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "Directory for the LevelDB keystore")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Native backend worker cap (0 for GOMAXPROCS)")
	return fs
}

// parse parses args and layers them over the config file, if any. Flags set
// on the command line win over the file.
func (e *env) parse(args []string) error {
	if err := e.fs.Parse(args); err != nil {
		return err
	}
	if e.cfg.configFile == "" {
		return e.applyLogLevel()
	}

	fileCfg, err := common.LoadConfig(e.cfg.configFile)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	e.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	merged := fileCfg
	if set["hash"] {
		merged.Hash = e.cfg.Hash
	}
	if set["backend"] {
		merged.Backend = e.cfg.Backend
	}
	if set["w"] {
		merged.W = e.cfg.W
	}
	if set["n"] {
		merged.N = e.cfg.N
	}
	if set["m"] {
		merged.M = e.cfg.M
	}
	if set["datadir"] {
		merged.DataDir = e.cfg.DataDir
	}
	if set["log-level"] {
		merged.LogLevel = e.cfg.LogLevel
	}
	if set["workers"] {
		merged.Workers = e.cfg.Workers
	}
	if set["listen"] {
		merged.Listen = e.cfg.Listen
	}
	e.cfg.Config = merged
	return e.applyLogLevel()
}

func (e *env) applyLogLevel() error {
	lvl, err := logger.ParseLevel(e.cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

// schemeOptions turns non-zero w, n and m into parameter overrides.
func (e *env) schemeOptions() []wots.Option {
	var opts []wots.Option
	if e.cfg.W != 0 {
		opts = append(opts, wots.WithW(e.cfg.W))
	}
	if e.cfg.N != 0 {
		opts = append(opts, wots.WithN(e.cfg.N))
	}
	if e.cfg.M != 0 {
		opts = append(opts, wots.WithM(e.cfg.M))
	}
	return opts
}

// scheme builds the configured WOTS+ instance, instrumented against reg.
func (e *env) scheme(reg prometheus.Registerer) (*metrics.Scheme, error) {
	pref, err := provider.ParsePreference(e.cfg.Backend)
	if err != nil {
		return nil, err
	}
	l := logger.Logger()
	sel := provider.NewSelector(l, native.WithWorkers(e.cfg.Workers), native.WithLogger(l))
	w, err := sel.New(e.cfg.Hash, pref, e.schemeOptions()...)
	if err != nil {
		return nil, err
	}
	logger.Debugf("using %s", w)
	return metrics.Instrument(w, metrics.NewMetrics(reg)), nil
}

func (e *env) openKeystore() (*key.Keystore, error) {
	return key.OpenKeystore(common.GetKeystorePath(e.cfg.DataDir), logger.Logger())
}

func (e *env) writeJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// hexArg decodes a hex flag value, or the contents of the file it names
// when prefixed with '@'.
func hexArg(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("-%s is required", name)
	}
	if value[0] == '@' {
		data, err := os.ReadFile(value[1:])
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", name, err)
		}
		value = string(data)
	}
	b, err := common.Hex2Bytes(value)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return b, nil
}

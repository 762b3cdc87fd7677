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

// go/src/cli/cli/cli.go
package cli

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sphinx-core/wotsplus/src/accounts/key"
	"github.com/sphinx-core/wotsplus/src/common"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/hashes"
	"github.com/sphinx-core/wotsplus/src/crypto/WOTS/vectors"
	wotshttp "github.com/sphinx-core/wotsplus/src/http"
	logger "github.com/sphinx-core/wotsplus/src/log"
	"go.uber.org/zap"
)

var commands = []command{
	{"keygen", "Derive a one-time key pair", runKeygen},
	{"sign", "Sign a message with a private key or a stored key", runSign},
	{"verify", "Verify a signature", runVerify},
	{"vectors", "Generate or check known-answer vector files", runVectors},
	{"serve", "Serve the JSON API and Prometheus metrics", runServe},
	{"bench", "Time key generation, signing and verification", runBench},
}

func providerNames() string { return strings.Join(hashes.Names(), ", ") }

// Execute runs the subcommand named by args[0].
func Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" || args[0] == "--help" {
		usage(stderr)
		if len(args) == 0 {
			return errors.New("no command given")
		}
		return nil
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		e := &env{cfg: Config{Config: common.DefaultConfig()}, stdout: stdout, stderr: stderr}
		e.fs = newFlagSet(c.name, &e.cfg, stderr)
		return c.run(e, args[1:])
	}
	usage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wotsplus <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

// runKeygen derives a key pair from -seed or a random seed.
func runKeygen(e *env, args []string) error {
	seedHex := e.fs.String("seed", "", "0x-hex seed (random when empty)")
	store := e.fs.Bool("store", false, "Record the key in the keystore")
	if err := e.parse(args); err != nil {
		return err
	}
	s, err := e.scheme(nil)
	if err != nil {
		return err
	}

	var seed []byte
	if *seedHex != "" {
		if seed, err = hexArg("seed", *seedHex); err != nil {
			return err
		}
	} else {
		seed = make([]byte, s.HashLen())
		if _, err := rand.Read(seed); err != nil {
			return err
		}
	}

	if *store {
		ks, err := e.openKeystore()
		if err != nil {
			return err
		}
		defer ks.Close()
		rec, err := ks.Generate(s, seed)
		if err != nil {
			return err
		}
		logger.Infof("Stored one-time key %s", rec.ID)
		return e.writeJSON(KeyPairJSON{
			ID: rec.ID, Hash: rec.Hash, W: rec.W,
			PublicKey: common.BytesToHexWithPrefix(rec.PublicKey),
			Stored:    true,
		})
	}

	pk, sk, err := s.GenerateKeyPair(seed)
	if err != nil {
		return err
	}
	encoded := pk.Bytes()
	return e.writeJSON(KeyPairJSON{
		ID:         common.KeyID(encoded),
		Hash:       e.cfg.Hash,
		W:          s.Params().W,
		PublicKey:  common.BytesToHexWithPrefix(encoded),
		PrivateKey: common.BytesToHexWithPrefix(sk),
	})
}

// runSign prints the 0x-hex signature of -msg.
func runSign(e *env, args []string) error {
	skHex := e.fs.String("key", "", "0x-hex private key, or @file")
	id := e.fs.String("id", "", "Keystore id of the key to spend")
	msgHex := e.fs.String("msg", "", "0x-hex message, or @file")
	if err := e.parse(args); err != nil {
		return err
	}
	if (*skHex == "") == (*id == "") {
		return errors.New("exactly one of -key and -id is required")
	}
	msg, err := hexArg("msg", *msgHex)
	if err != nil {
		return err
	}
	s, err := e.scheme(nil)
	if err != nil {
		return err
	}

	var sig []byte
	if *id != "" {
		ks, err := e.openKeystore()
		if err != nil {
			return err
		}
		defer ks.Close()
		if sig, err = ks.Sign(s, *id, msg); err != nil {
			return err
		}
	} else {
		sk, err := hexArg("key", *skHex)
		if err != nil {
			return err
		}
		if sig, err = s.Sign(sk, msg); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(e.stdout, common.BytesToHexWithPrefix(sig))
	return err
}

// runVerify checks a signature locally or against a running server.
func runVerify(e *env, args []string) error {
	pkHex := e.fs.String("pk", "", "0x-hex public key, or @file")
	msgHex := e.fs.String("msg", "", "0x-hex message, or @file")
	sigHex := e.fs.String("sig", "", "0x-hex signature, or @file")
	remote := e.fs.String("remote", "", "Verify against the server at this address")
	if err := e.parse(args); err != nil {
		return err
	}
	var in [3][]byte
	for i, a := range []struct{ name, value string }{{"pk", *pkHex}, {"msg", *msgHex}, {"sig", *sigHex}} {
		b, err := hexArg(a.name, a.value)
		if err != nil {
			return err
		}
		in[i] = b
	}

	var valid bool
	if *remote != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ok, err := wotshttp.NewClient(*remote, nil).Verify(ctx, in[0], in[1], in[2])
		if err != nil {
			return err
		}
		valid = ok
	} else {
		s, err := e.scheme(nil)
		if err != nil {
			return err
		}
		valid = s.Verify(in[0], in[1], in[2])
	}

	if !valid {
		fmt.Fprintln(e.stdout, "invalid")
		return ErrInvalidSignature
	}
	_, err := fmt.Fprintln(e.stdout, "valid")
	return err
}

// runVectors writes a vector file for the configured scheme, or checks the
// files given as arguments.
func runVectors(e *env, args []string) error {
	out := e.fs.String("out", "", "Directory to write a generated vector file to")
	count := e.fs.Int("count", 4, "Number of vectors to generate")
	if err := e.parse(args); err != nil {
		return err
	}
	files := e.fs.Args()
	if (*out == "") == (len(files) == 0) {
		return errors.New("give either -out or vector files to check")
	}

	if *out != "" {
		s, err := e.scheme(nil)
		if err != nil {
			return err
		}
		vs, err := vectors.Generate(s.WOTSPlus, *count)
		if err != nil {
			return err
		}
		path := filepath.Join(*out, vectors.FileName(e.cfg.Hash, s.Params().W))
		if err := vectors.Write(path, vs); err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, path)
		return err
	}

	for _, file := range files {
		hash, w, err := vectors.ParseFileName(file)
		if err != nil {
			return err
		}
		// The file name decides the scheme; backend and workers still apply
		e.cfg.Hash, e.cfg.W, e.cfg.N, e.cfg.M = hash, w, 0, 0
		s, err := e.scheme(nil)
		if err != nil {
			return err
		}
		n, err := vectors.CheckFile(s.WOTSPlus, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "%s: %d vectors ok (%s)\n", filepath.Base(file), n, s.Backend())
	}
	return nil
}

// newServer wires the keystore-backed API server.
func (e *env) newServer(reg *prometheus.Registry) (*wotshttp.Server, func(), error) {
	s, err := e.scheme(reg)
	if err != nil {
		return nil, nil, err
	}
	ks, err := e.openKeystore()
	if err != nil {
		return nil, nil, err
	}
	m, err := key.NewManager(s, ks, logger.Logger())
	if err != nil {
		ks.Close()
		return nil, nil, err
	}
	srv := wotshttp.NewServer(e.cfg.Listen, e.cfg.Hash, s,
		wotshttp.WithManager(m),
		wotshttp.WithGatherer(reg),
		wotshttp.WithLogger(logger.Logger()))
	return srv, func() { ks.Close() }, nil
}

// runServe runs the API until SIGINT or SIGTERM.
func runServe(e *env, args []string) error {
	e.fs.StringVar(&e.cfg.Listen, "listen", e.cfg.Listen, "HTTP listen address")
	if err := e.parse(args); err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, closeStore, err := e.newServer(reg)
	if err != nil {
		return err
	}
	defer closeStore()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Logger().Info("shutting down", zap.Stringer("signal", sig))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// runBench times each operation over -iterations runs.
func runBench(e *env, args []string) error {
	iterations := e.fs.Int("iterations", 100, "Runs per operation")
	if err := e.parse(args); err != nil {
		return err
	}
	if *iterations < 1 {
		return errors.New("-iterations must be positive")
	}
	s, err := e.scheme(nil)
	if err != nil {
		return err
	}

	seed := make([]byte, s.HashLen())
	msg := make([]byte, s.MessageLen())
	if _, err := rand.Read(seed); err != nil {
		return err
	}
	pk, sk, err := s.GenerateKeyPair(seed)
	if err != nil {
		return err
	}
	sig, err := s.Sign(sk, msg)
	if err != nil {
		return err
	}
	encoded := pk.Bytes()

	ops := map[string]func() error{
		"keygen": func() error { _, _, err := s.GenerateKeyPair(seed); return err },
		"sign":   func() error { _, err := s.Sign(sk, msg); return err },
		"verify": func() error {
			if !s.Verify(encoded, msg, sig) {
				return ErrInvalidSignature
			}
			return nil
		},
	}
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		start := time.Now()
		for i := 0; i < *iterations; i++ {
			if err := ops[name](); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		elapsed := time.Since(start)
		per := elapsed / time.Duration(*iterations)
		res := BenchResult{
			Op:         name,
			Backend:    s.Backend(),
			Iterations: *iterations,
			NsPerOp:    per.Nanoseconds(),
		}
		if per > 0 {
			res.OpsPerSec = float64(time.Second) / float64(per)
		}
		if err := e.writeJSON(res); err != nil {
			return err
		}
	}
	return nil
}

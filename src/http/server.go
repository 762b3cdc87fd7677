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

// go/src/http/server.go
package http

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sphinx-core/wotsplus/src/accounts/key"
	"github.com/sphinx-core/wotsplus/src/common"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
	"github.com/sphinx-core/wotsplus/src/metrics"
	"go.uber.org/zap"
)

// Option configures a Server.
type Option func(*Server)

// WithManager enables managed sign-and-rotate on /v1/sign.
func WithManager(m *key.Manager) Option { return func(s *Server) { s.manager = m } }

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option { return func(s *Server) { s.gatherer = g } }

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option { return func(s *Server) { s.log = l } }

// NewServer creates a new HTTP server.
func NewServer(address, hash string, scheme *metrics.Scheme, opts ...Option) *Server {
	s := &Server{
		address:  address,
		scheme:   scheme,
		hash:     hash,
		gatherer: prometheus.DefaultGatherer,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	s.router = r
	s.setupRoutes()
	return s
}

// setupRoutes defines HTTP endpoints.
func (s *Server) setupRoutes() {
	v1 := s.router.Group("/v1")
	v1.GET("/params", s.handleParams)
	v1.POST("/keypair", s.handleKeyPair)
	v1.POST("/sign", s.handleSign)
	v1.POST("/verify", s.handleVerify)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// Handler returns the router, for embedding and tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// handleParams reports the active parameter set.
func (s *Server) handleParams(c *gin.Context) {
	p := s.scheme.Params()
	c.JSON(http.StatusOK, ParamsResponse{
		Hash:          s.hash,
		Backend:       s.scheme.Backend(),
		W:             p.W,
		N:             p.N,
		M:             p.M,
		Len1:          p.Len1,
		Len2:          p.Len2,
		Len:           p.Len,
		SignatureSize: p.SignatureSize(),
		PublicKeySize: p.PublicKeySize(),
	})
}

// handleKeyPair derives a key pair from the given seed or a random one.
func (s *Server) handleKeyPair(c *gin.Context) {
	var req KeyPairRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	var seed []byte
	if req.Seed != "" {
		b, err := common.Hex2Bytes(req.Seed)
		if err != nil {
			badRequest(c, err)
			return
		}
		seed = b
	} else {
		seed = make([]byte, s.scheme.Params().N)
		if _, err := rand.Read(seed); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
	}

	pk, sk, err := s.scheme.GenerateKeyPair(seed)
	if err != nil {
		badRequest(c, err)
		return
	}
	encoded := pk.Bytes()
	c.JSON(http.StatusOK, KeyPairResponse{
		ID:         common.KeyID(encoded),
		PublicKey:  common.BytesToHexWithPrefix(encoded),
		PrivateKey: common.BytesToHexWithPrefix(sk),
	})
}

// handleSign signs with the supplied private key or the managed key.
func (s *Server) handleSign(c *gin.Context) {
	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := common.Hex2Bytes(req.Message)
	if err != nil {
		badRequest(c, err)
		return
	}

	if req.PrivateKey == "" {
		s.signManaged(c, msg)
		return
	}
	sk, err := common.Hex2Bytes(req.PrivateKey)
	if err != nil {
		badRequest(c, err)
		return
	}
	sig, err := s.scheme.Sign(sk, msg)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, SignResponse{Signature: common.BytesToHexWithPrefix(sig)})
}

func (s *Server) signManaged(c *gin.Context, msg []byte) {
	if s.manager == nil {
		badRequest(c, errors.New("privateKey is required: no managed key configured"))
		return
	}
	sig, pk, next, err := s.manager.SignAndRotate(msg)
	if err != nil {
		if errors.Is(err, wots.ErrMalformedInput) {
			badRequest(c, err)
			return
		}
		s.log.Error("managed signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SignResponse{
		Signature:     common.BytesToHexWithPrefix(sig),
		KeyID:         common.KeyID(pk.Bytes()),
		PublicKey:     common.BytesToHexWithPrefix(pk.Bytes()),
		NextPublicKey: common.BytesToHexWithPrefix(next.Bytes()),
	})
}

// handleVerify reports whether a signature is valid. Wrong-length inputs are
// simply invalid; only undecodable hex is a bad request.
func (s *Server) handleVerify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var fields [3][]byte
	for i, h := range []string{req.PublicKey, req.Message, req.Signature} {
		b, err := common.Hex2Bytes(h)
		if err != nil {
			badRequest(c, err)
			return
		}
		fields[i] = b
	}
	c.JSON(http.StatusOK, VerifyResponse{Valid: s.scheme.Verify(fields[0], fields[1], fields[2])})
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.srv = &http.Server{Addr: s.address, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	s.log.Info("HTTP server listening", zap.String("address", s.address))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

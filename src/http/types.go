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

// go/src/http/types.go
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sphinx-core/wotsplus/src/accounts/key"
	"github.com/sphinx-core/wotsplus/src/metrics"
	"go.uber.org/zap"
)

// Server exposes a WOTS+ scheme over a JSON API.
type Server struct {
	address  string
	router   *gin.Engine
	srv      *http.Server
	scheme   *metrics.Scheme
	hash     string
	manager  *key.Manager
	gatherer prometheus.Gatherer
	log      *zap.Logger
}

// ParamsResponse describes the parameter set the server signs under.
type ParamsResponse struct {
	Hash          string `json:"hash"`
	Backend       string `json:"backend"`
	W             int    `json:"w"`
	N             int    `json:"n"`
	M             int    `json:"m"`
	Len1          int    `json:"len1"`
	Len2          int    `json:"len2"`
	Len           int    `json:"len"`
	SignatureSize int    `json:"signatureSize"`
	PublicKeySize int    `json:"publicKeySize"`
}

// KeyPairRequest optionally carries the 0x-hex seed to derive from.
type KeyPairRequest struct {
	Seed string `json:"seed"`
}

// KeyPairResponse holds a derived key pair.
type KeyPairResponse struct {
	ID         string `json:"id"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// SignRequest signs Message with PrivateKey. Without a private key the
// server's managed key signs and rotates.
type SignRequest struct {
	PrivateKey string `json:"privateKey"`
	Message    string `json:"message"`
}

// SignResponse holds a signature. Managed signing also reports the key that
// verifies it and the key that signs next.
type SignResponse struct {
	Signature     string `json:"signature"`
	KeyID         string `json:"keyId,omitempty"`
	PublicKey     string `json:"publicKey,omitempty"`
	NextPublicKey string `json:"nextPublicKey,omitempty"`
}

// VerifyRequest carries the public key, message and signature to check.
type VerifyRequest struct {
	PublicKey string `json:"publicKey" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// VerifyResponse reports the verification outcome.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

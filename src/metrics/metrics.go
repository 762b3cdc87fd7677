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

// go/src/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	wots "github.com/sphinx-core/wotsplus/src/crypto/WOTS/key"
)

// Operation labels.
const (
	OpKeyGen = "keygen"
	OpSign   = "sign"
	OpVerify = "verify"
)

// Metrics holds WOTS+ operation metrics.
type Metrics struct {
	OpCount     *prometheus.CounterVec
	OpLatency   *prometheus.HistogramVec
	ErrorCount  *prometheus.CounterVec
	VerifyCount *prometheus.CounterVec
}

// NewMetrics initializes Prometheus metrics and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OpCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wotsplus_operation_count",
				Help: "Number of WOTS+ operations performed",
			},
			[]string{"op", "backend"},
		),
		OpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wotsplus_operation_latency_seconds",
				Help:    "Latency of WOTS+ operations",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
			},
			[]string{"op", "backend"},
		),
		ErrorCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wotsplus_error_count",
				Help: "Number of WOTS+ operations rejected with an error",
			},
			[]string{"op"},
		),
		VerifyCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wotsplus_verify_result_count",
				Help: "Number of verifications by outcome",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.OpCount, m.OpLatency, m.ErrorCount, m.VerifyCount)
	}
	return m
}

func (m *Metrics) observe(op, backend string, start time.Time, err error) {
	m.OpCount.WithLabelValues(op, backend).Inc()
	m.OpLatency.WithLabelValues(op, backend).Observe(time.Since(start).Seconds())
	if err != nil {
		m.ErrorCount.WithLabelValues(op).Inc()
	}
}

// Scheme wraps a WOTS+ instance and records every operation.
type Scheme struct {
	*wots.WOTSPlus
	m *Metrics
}

// Instrument returns w wrapped with m.
func Instrument(w *wots.WOTSPlus, m *Metrics) *Scheme {
	return &Scheme{WOTSPlus: w, m: m}
}

// Metrics returns the collectors the scheme reports to.
func (s *Scheme) Metrics() *Metrics { return s.m }

// GenerateKeyPair records a keygen operation.
func (s *Scheme) GenerateKeyPair(seed []byte) (*wots.PublicKey, []byte, error) {
	start := time.Now()
	pk, sk, err := s.WOTSPlus.GenerateKeyPair(seed)
	s.m.observe(OpKeyGen, s.Backend(), start, err)
	return pk, sk, err
}

// Sign records a sign operation.
func (s *Scheme) Sign(sk, msg []byte) ([]byte, error) {
	start := time.Now()
	sig, err := s.WOTSPlus.Sign(sk, msg)
	s.m.observe(OpSign, s.Backend(), start, err)
	return sig, err
}

// Verify records a verify operation and its outcome.
func (s *Scheme) Verify(pk, msg, sig []byte) bool {
	start := time.Now()
	ok := s.WOTSPlus.Verify(pk, msg, sig)
	s.m.observe(OpVerify, s.Backend(), start, nil)
	result := "rejected"
	if ok {
		result = "accepted"
	}
	s.m.VerifyCount.WithLabelValues(result).Inc()
	return ok
}

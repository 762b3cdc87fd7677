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

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug": DEBUG, "INFO": INFO, " warn": WARN, "warning": WARN, "error": ERROR,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "warn", WARN.String())
}

func TestLevelFiltering(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)
	defer SetLevel(INFO)
	ResetLogs()

	SetLevel(WARN)
	assert.Equal(t, WARN, GetLevel())
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	Errorf("also shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown 2")
	assert.Contains(t, out.String(), "WARN")
	assert.Contains(t, GetLogs(), "also shown")

	SetLevel(DEBUG)
	Debugf("chain %d", 7)
	assert.Contains(t, GetLogs(), "chain 7")
}

func TestStructuredLogger(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)
	ResetLogs()

	Logger().Info("keypair generated")
	assert.Contains(t, out.String(), "keypair generated")
	assert.Contains(t, GetLogs(), "keypair generated")
}

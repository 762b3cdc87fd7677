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

// go/src/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sphinx-core/wotsplus/src/common"
)

// Client calls a remote WOTS+ server.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient returns a client for the server at address (host:port or URL).
func NewClient(address string, hc *http.Client) *Client {
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(address, "/"), hc: hc}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, e.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Params fetches the server's parameter set.
func (c *Client) Params(ctx context.Context) (*ParamsResponse, error) {
	var out ParamsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/params", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sign asks the server to sign msg with its managed key.
func (c *Client) Sign(ctx context.Context, msg []byte) (*SignResponse, error) {
	var out SignResponse
	req := SignRequest{Message: common.BytesToHexWithPrefix(msg)}
	if err := c.do(ctx, http.MethodPost, "/v1/sign", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify asks the server to check sig over msg under pk.
func (c *Client) Verify(ctx context.Context, pk, msg, sig []byte) (bool, error) {
	var out VerifyResponse
	req := VerifyRequest{
		PublicKey: common.BytesToHexWithPrefix(pk),
		Message:   common.BytesToHexWithPrefix(msg),
		Signature: common.BytesToHexWithPrefix(sig),
	}
	if err := c.do(ctx, http.MethodPost, "/v1/verify", req, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

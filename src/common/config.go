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

// go/src/common/config.go
package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DataDir is the default data directory
	DataDir = "data"
)

// Config is the JSON configuration shared by the CLI and the HTTP server.
// Zero values fall back to the defaults of DefaultConfig.
type Config struct {
	Hash     string `json:"hash"`      // Registered hash provider name
	Backend  string `json:"backend"`   // reference, native or auto
	W        int    `json:"w"`         // Winternitz parameter
	N        int    `json:"n"`         // Hash output length override
	M        int    `json:"m"`         // Message length override
	DataDir  string `json:"datadir"`   // Root of the keystore
	Listen   string `json:"listen"`    // HTTP listen address
	LogLevel string `json:"log_level"` // debug, info, warn or error
	Workers  int    `json:"workers"`   // Accelerated backend worker cap, 0 for GOMAXPROCS
}

// DefaultConfig returns the Keccak-256, w=16 configuration of the published vectors.
func DefaultConfig() Config {
	return Config{
		Hash:     "keccak256",
		Backend:  "auto",
		W:        16,
		DataDir:  DataDir,
		Listen:   "127.0.0.1:8545",
		LogLevel: "info",
	}
}

// LoadConfig reads a JSON configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// GetKeystorePath returns the standardized LevelDB path of the keystore
func GetKeystorePath(dataDir string) string {
	if dataDir == "" {
		dataDir = DataDir
	}
	return filepath.Join(dataDir, "keystore")
}

// WriteJSONToFile writes data as indented JSON, creating parent directories.
func WriteJSONToFile(data interface{}, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

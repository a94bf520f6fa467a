// Package config resolves the process's runtime configuration: the data
// directory, the SQLite file path within it, and the shared bearer token.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const apiKeyBytes = 32 // -> 64 hex characters

// Config is the process-wide, immutable-after-startup configuration.
type Config struct {
	Port         string
	DataDir      string
	DBPath       string
	APIKeyPath   string
	DeviceIDPath string
	NoAuth       bool
}

// Load resolves configuration from the environment, falling back to
// defaults via getEnv(key, default), and ensures the data directory
// exists.
func Load() (*Config, error) {
	dataDir := getEnv("GRUB_DATA_DIR", defaultDataDir())
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "grub.db"),
		APIKeyPath:   filepath.Join(dataDir, "api_key"),
		DeviceIDPath: filepath.Join(dataDir, "device_id"),
		NoAuth:       getEnv("GRUB_NO_AUTH", "") != "",
	}
	return cfg, nil
}

// DeviceID reads the persisted device identity, generating and persisting
// a fresh UUID on first use. Export snapshots are stamped with this so a
// restored backup can be told apart from the device that produced it.
func (c *Config) DeviceID() (string, error) {
	existing, err := os.ReadFile(c.DeviceIDPath)
	if err == nil {
		id := trimNewline(string(existing))
		if len(id) > 0 {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read device id file: %w", err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(c.DeviceIDPath, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	return id, nil
}

// APIKey reads the persisted token, generating and persisting a fresh one
// (mode 0600, 64 hex characters) on first serve.
func (c *Config) APIKey() (string, error) {
	if c.NoAuth {
		return "", nil
	}

	existing, err := os.ReadFile(c.APIKeyPath)
	if err == nil {
		key := trimNewline(string(existing))
		if len(key) > 0 {
			return key, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read api key file: %w", err)
	}

	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	key := hex.EncodeToString(buf)

	if err := os.WriteFile(c.APIKeyPath, []byte(key+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist api key: %w", err)
	}
	return key, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "grub")
	}
	return ".grub"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".movies_token"
)

// ErrNotSignedIn is returned by LoadToken when no token has been saved.
var ErrNotSignedIn = errors.New("not signed in: run `moviectl signin` first")

// APIURL returns the base URL for the Movies API.
// It can be overridden with the MOVIES_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("MOVIES_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenPath is where the signin token is kept. MOVIES_TOKEN_FILE overrides the
// default of ~/.movies_token.
func TokenPath() string {
	if v := os.Getenv("MOVIES_TOKEN_FILE"); v != "" {
		return v
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(dir, tokenFileName)
}

// SaveToken stores the full Authorization value ("JWT ...") readable by the owner only.
func SaveToken(token string) error {
	return os.WriteFile(TokenPath(), []byte(token), 0600)
}

func LoadToken() (string, error) {
	data, err := os.ReadFile(TokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotSignedIn
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotSignedIn
	}
	return token, nil
}

// ClearToken removes the saved token. It reports whether one existed.
func ClearToken() (bool, error) {
	err := os.Remove(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Package auth implements the local login gate. The application is
// single-user: the expected username comes from the config file and the
// expected password from the system keyring, with a built-in default for
// first runs where no password has been stored yet.
package auth

import (
	"fmt"
	"strings"

	"github.com/99designs/keyring"
)

const (
	serviceName = "casedesk"

	// passwordKey is the keyring entry holding the login password.
	passwordKey = "login-password"

	// Built-in credentials used until the user stores their own.
	defaultUser     = "lmamprin"
	defaultPassword = "lalala123"
)

// Gate validates login attempts against the configured credentials.
type Gate struct {
	user string
}

// NewGate returns a gate for the given username. An empty username falls
// back to the built-in default.
func NewGate(user string) *Gate {
	if strings.TrimSpace(user) == "" {
		user = defaultUser
	}
	return &Gate{user: user}
}

// Check reports whether the supplied credentials are valid. A keyring
// without a stored password falls back to the built-in default so the
// application stays usable on a fresh machine.
func (g *Gate) Check(username, password string) bool {
	if username != g.user {
		return false
	}

	expected, err := Get(passwordKey)
	if err != nil || expected == "" {
		expected = defaultPassword
	}
	return password == expected
}

// SetPassword stores a new login password in the system keyring.
func (g *Gate) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password must not be empty")
	}
	return Set(passwordKey, password)
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/casedesk/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("casedesk-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

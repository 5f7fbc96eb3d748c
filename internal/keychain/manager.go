// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for carrental.
// The database password of the logged-in user and the serialized session state
// live in the OS credential store (macOS Keychain, Windows Credential Manager,
// Secret Service/KWallet/pass on Linux) rather than in the config file.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	mu            sync.Mutex
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "carrental"

// Keys used for storing secrets in the OS keychain.
const (
	KeySessionState   = "session_state"
	keyPasswordPrefix = "db_password:"
)

// ErrNotFound is returned when the requested secret is not stored.
var ErrNotFound = keyring.ErrKeyNotFound

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

// SetManager replaces the global manager. Passing nil forces the next
// GetManager call to reopen the OS keyring.
func SetManager(m *Manager) {
	mu.Lock()
	defer mu.Unlock()
	globalManager = m
}

// openRing opens the OS keyring using native platform backends only.
// No encrypted-file fallback.
func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	case "linux", "freebsd", "openbsd":
		allowed = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.KeyCtlBackend,
		}
	default:
		return nil, errors.New("secure storage not supported on " + runtime.GOOS)
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowed,
		PassPrefix:      ServiceName,
		KeyCtlScope:     "user",
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, errors.New("no OS credential store available (install a Secret Service provider or 'pass'): " + err.Error())
	}
	return ring, nil
}

func passwordKey(user string) string { return keyPasswordPrefix + user }

// SavePassword stores the database password for user.
// This method is thread-safe.
func (m *Manager) SavePassword(user, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:   passwordKey(user),
		Data:  []byte(password),
		Label: ServiceName + " database password (" + user + ")",
	})
}

// LoadPassword retrieves the database password for user.
// An empty stored password is valid (trust/peer authentication).
// This method is thread-safe.
func (m *Manager) LoadPassword(user string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(passwordKey(user))
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

// SaveSessionState stores serialized session state in the keychain.
// This method is thread-safe.
func (m *Manager) SaveSessionState(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{Key: KeySessionState, Data: data})
}

// LoadSessionState retrieves serialized session state. A missing entry yields
// nil data and no error.
// This method is thread-safe.
func (m *Manager) LoadSessionState() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeySessionState)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it.Data, nil
}

// ClearSessionState removes the stored session state.
// This method is thread-safe.
func (m *Manager) ClearSessionState() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return ignoreNotFound(m.ring.Remove(KeySessionState))
}

// ClearAll removes the session state and the password of user.
// This method is thread-safe.
func (m *Manager) ClearAll(user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := ignoreNotFound(m.ring.Remove(KeySessionState))
	if user != "" {
		if perr := ignoreNotFound(m.ring.Remove(passwordKey(user))); err == nil {
			err = perr
		}
	}
	return err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"encoding/json"
	"errors"
)

// ErrNotLoggedIn is returned by Load when no session has been saved.
var ErrNotLoggedIn = errors.New("not logged in")

// StateStore persists the serialized session. *keychain.Manager implements it.
type StateStore interface {
	SaveSessionState(data []byte) error
	LoadSessionState() ([]byte, error)
	ClearSessionState() error
}

// Load reads the saved session. Missing state yields ErrNotLoggedIn.
func Load(store StateStore) (Session, error) {
	var s Session
	data, err := store.LoadSessionState()
	if err != nil {
		return s, err
	}
	if len(data) == 0 {
		return s, ErrNotLoggedIn
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	if s.User == "" || !s.Role.Valid() {
		return Session{}, ErrNotLoggedIn
	}
	return s, nil
}

// Save writes the session to store.
func Save(store StateStore, s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return store.SaveSessionState(b)
}

// Clear removes the saved session.
func Clear(store StateStore) error {
	return store.ClearSessionState()
}

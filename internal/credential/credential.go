// Package credential persists the auth session in the operating
// system keyring, falling back to an encrypted file when no native
// backend is available.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"habitchain/internal/model"
)

const serviceName = "habitchain"

// SessionKey is where the serialized auth session lives in the keyring.
const SessionKey = "session"

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
		FileDir:                  "~/.config/habitchain/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("habitchain-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// SaveSession serializes the session and stores it under SessionKey.
func SaveSession(session model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	return Set(SessionKey, string(data))
}

// LoadSession reads the stored session. A missing key yields a zero
// session and nil error.
func LoadSession() (model.Session, error) {
	raw, err := Get(SessionKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return model.Session{}, nil
		}
		return model.Session{}, err
	}

	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return model.Session{}, fmt.Errorf("unmarshaling stored session: %w", err)
	}
	return session, nil
}

// ClearSession removes the stored session. Clearing an absent session
// is not an error.
func ClearSession() error {
	err := Delete(SessionKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
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

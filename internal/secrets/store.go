// Package secrets stores credentials in the operating system keychain.
// The rest of the application only ever holds opaque keys into this store;
// plaintext secrets are resolved for the single call that needs them.
package secrets

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/dmitrijs2005/coffeechat/internal/common"
)

// ServiceName scopes all coffeechat items in the OS keychain.
const ServiceName = "coffeechat"

// Well-known item keys.
const (
	KeySMTPPassword = "smtp/password"
	KeyOAuthToken   = "google/oauth_token"
)

// Store is the keychain capability consumed by the rest of the application:
// get/set/delete by key. Implementations must map a missing key to
// common.ErrSecretNotFound.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// KeyringStore is the Store backed by the platform keychain
// (macOS Keychain, Secret Service, wincred, ...).
type KeyringStore struct {
	ring keyring.Keyring
}

// Open opens the default platform keychain under ServiceName.
func Open() (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{ServiceName: ServiceName})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return &KeyringStore{ring: ring}, nil
}

// NewWithKeyring wraps an existing keyring. Tests use this with
// keyring.NewArrayKeyring.
func NewWithKeyring(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

func (s *KeyringStore) Get(key string) ([]byte, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", common.ErrSecretNotFound, key)
		}
		return nil, fmt.Errorf("read secret %s: %w", key, err)
	}
	return item.Data, nil
}

func (s *KeyringStore) Set(key string, value []byte) error {
	if err := s.ring.Set(keyring.Item{Key: key, Data: value}); err != nil {
		return fmt.Errorf("store secret %s: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", common.ErrSecretNotFound, key)
		}
		return fmt.Errorf("delete secret %s: %w", key, err)
	}
	return nil
}

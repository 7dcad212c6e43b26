// Package secrets keeps the datastore key in the OS keychain so it can stay
// out of .env files on operator machines.
package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the engine's secrets in the OS keychain.
	KeyringService = "cartrade"
)

// GetDatabaseKey looks the datastore key up by account (the DSN user).
func GetDatabaseKey(account string) (string, error) {
	if strings.TrimSpace(account) != "" {
		key, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
	}
	return "", errors.New("database key not found (set it in the keychain or via CARTRADE_DB_KEY)")
}

func SetDatabaseKey(account string, key string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("database key is empty")
	}
	return keyring.Set(KeyringService, account, key)
}

func DeleteDatabaseKey(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// Package keyring keeps the PostgreSQL connection string for --config=postgres
// in the OS secret store. There is one entry per user account.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/thoughts/internal/constants"
)

var (
	// ErrNotFound means no connection string has been stored yet
	ErrNotFound = errors.New("no thoughts connection string in the OS keyring")
	// ErrKeyringUnavailable wraps failures of the secret service itself
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrEmpty rejects blank connection strings
	ErrEmpty = errors.New("connection string is empty")
)

const (
	service = constants.AppName
	account = constants.DefaultKeyringUser
)

// translate maps go-keyring errors onto this package's sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %s %s/%s: %v", ErrKeyringUnavailable, op, service, account, err)
	}
}

func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(service, account)
	if err != nil {
		return "", translate("read", err)
	}
	return connStr, nil
}

// SetConnectionString replaces the stored string. Surrounding whitespace is
// dropped, the way OpenStore trims THOUGHTS_DB_CONNECTION.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ErrEmpty
	}
	return translate("write", keyring.Set(service, account, connStr))
}

func DeleteConnectionString() error {
	return translate("delete", keyring.Delete(service, account))
}

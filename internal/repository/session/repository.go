// Package session keeps one wizard per browser, keyed by a cookie.
package session

import (
	"errors"

	"github.com/debemdeboas/chronicler/internal/wizard"
)

var ErrSessionNotFound = errors.New("session not found")

type ID string

type Session struct {
	ID      ID
	Machine *wizard.Machine
}

type Repository interface {
	Create() (*Session, error)
	Get(id ID) (*Session, error)
	Delete(id ID) error
}

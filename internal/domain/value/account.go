package value

import (
	"errors"
	"strings"
)

const maxAccountIDLen = 128

var (
	ErrEmptyAccountID   = errors.New("account id is empty")
	ErrAccountIDTooLong = errors.New("account id is too long")
)

// AccountID идентификатор владельца средств (продавец, покупатель, платформа).
type AccountID string

func ParseAccountID(s string) (AccountID, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return "", ErrEmptyAccountID
	case len(s) > maxAccountIDLen:
		return "", ErrAccountIDTooLong
	}

	return AccountID(s), nil
}

func (a AccountID) String() string {
	return string(a)
}

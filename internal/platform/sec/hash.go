// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passphraseCost is the bcrypt work factor for the admin passphrase. It is
// hashed once by an operator and checked once per token exchange.
const passphraseCost = 12

// ErrEmptyPassphrase is returned when hashing an empty passphrase.
var ErrEmptyPassphrase = errors.New("sec: passphrase must not be empty")

// HashPassphrase produces the value for ADMIN_PASSPHRASE_HASH.
func HashPassphrase(passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyPassphrase
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), passphraseCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash passphrase: %w", err)
	}
	return string(hashed), nil
}

// CheckPassphrase reports whether passphrase matches hash. An unset hash
// matches nothing, so admin tokens cannot be obtained without one.
func CheckPassphrase(passphrase, hash string) bool {
	if hash == "" || passphrase == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) == nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by CheckPassword when the password does not
// match the digest.
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword returns the salted bcrypt digest of password using cost.
//
// bcrypt only considers the first 72 bytes of input; longer passwords are
// rejected by the underlying library.
func HashPassword(password string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPassword compares password with a bcrypt digest.
// Returns ErrPasswordMismatch on mismatch and a wrapped error when the digest
// itself is malformed.
func CheckPassword(digest, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("error comparing password digest: %w", err)
	}
}

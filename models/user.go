// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// Only the password digest is persisted; the plaintext password lives in the
// request body and is never written back to the client.
type User struct {
	// UserID is the unique identifier assigned by the storage on signup.
	UserID int64 `json:"id"`

	// Username is the unique login name of the user.
	Username string `json:"username" validate:"required,max=64"`

	// Email is optional contact information.
	Email string `json:"email,omitempty" validate:"omitempty,email"`

	// Password carries the plaintext password on signup and login requests only.
	Password string `json:"password,omitempty" validate:"required,max=72"`

	// PasswordHash is the bcrypt digest of the password.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of the user safe to send to clients.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

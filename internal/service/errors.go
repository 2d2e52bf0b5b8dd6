package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks every rejected input; the wrapped error names the rule.
	ErrValidation = errors.New("validation error")

	// ErrInvalidCredentials is returned by Login when the password does not
	// match the stored digest.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnauthorized            = errors.New("unauthorized")
	ErrTokenIsExpiredOrInvalid = fmt.Errorf("%w: token is expired or invalid", ErrUnauthorized)
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrForeignAttachment = errors.New("attachment does not exist or belongs to another user")
	ErrAudioGivenTwice   = errors.New("audio is given both as a reference and as a file")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Package businessflow contains the core business logic and use cases for link shortening workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNoProfileChanges   = errors.New("at least one field must be provided for update")

	// Link-related errors
	ErrLinkNotFound         = errors.New("link not found")
	ErrSlugAlreadyExists    = errors.New("slug already exists")
	ErrLinkNotOwned         = errors.New("link does not belong to the user")
	ErrOriginalURLRequired  = errors.New("original URL is required")
	ErrSlugRequired         = errors.New("slug is required")
	ErrSlugGenerationFailed = errors.New("could not generate a unique slug")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsUsernameRequired(err error) bool {
	return errors.Is(err, ErrUsernameRequired)
}

func IsEmailRequired(err error) bool {
	return errors.Is(err, ErrEmailRequired)
}

func IsPasswordRequired(err error) bool {
	return errors.Is(err, ErrPasswordRequired)
}

func IsNoProfileChanges(err error) bool {
	return errors.Is(err, ErrNoProfileChanges)
}

func IsLinkNotFound(err error) bool {
	return errors.Is(err, ErrLinkNotFound)
}

func IsSlugAlreadyExists(err error) bool {
	return errors.Is(err, ErrSlugAlreadyExists)
}

func IsLinkNotOwned(err error) bool {
	return errors.Is(err, ErrLinkNotOwned)
}

func IsOriginalURLRequired(err error) bool {
	return errors.Is(err, ErrOriginalURLRequired)
}

func IsSlugRequired(err error) bool {
	return errors.Is(err, ErrSlugRequired)
}

func IsSlugGenerationFailed(err error) bool {
	return errors.Is(err, ErrSlugGenerationFailed)
}

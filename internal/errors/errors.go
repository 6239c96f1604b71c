package errors

import "errors"

var (
	// ErrDuplicateAccount is returned when registering an email that is already taken.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials is returned when email or password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountNotFound is returned when no account exists for the given email.
	ErrAccountNotFound = errors.New("user not found")
)

// ErrorResponse is the JSON body returned by the listing endpoints on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

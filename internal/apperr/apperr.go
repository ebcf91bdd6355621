// Package apperr defines the error taxonomy shared by the store and the
// HTTP handlers.
package apperr

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound covers both a missing record and a record the caller does
	// not own. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is the generic login failure. It covers unknown
	// email and wrong password alike so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid login attempt")

	ErrPendingApproval = errors.New("your account is pending admin approval. Please wait for approval before logging in")
	ErrRejected        = errors.New("your account registration has been rejected. Please contact administrator")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every field-level violation in a request rather
// than stopping at the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

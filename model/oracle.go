package model

import (
	"context"
	"errors"
	"fmt"
)

// Oracle answers whether a username is already taken. CheckUsername returns
// nil when the name is free, ErrUsernameInUse (or an OracleError carrying
// CodeUserInUse) when it is taken, and any other error for unrelated
// failures.
type Oracle interface {
	CheckUsername(ctx context.Context, username string) error
}

// CodeUserInUse is the machine-readable marker for the "username already
// taken" condition.
const CodeUserInUse = "USER_IN_USE"

// OracleError is a failure reported by an Oracle implementation, carrying a
// machine-readable code so callers can branch without string matching.
type OracleError struct {
	Code    string
	Message string
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes errors.Is match any OracleError with the same code, so
// errors.Is(err, ErrUsernameInUse) works for adapter-constructed errors too.
func (e *OracleError) Is(target error) bool {
	var t *OracleError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// ErrUsernameInUse is returned by oracles when the probed username is taken.
var ErrUsernameInUse = &OracleError{Code: CodeUserInUse, Message: "username already in use"}

// ErrNoIdentifier is returned by the deriver when no verified identifier of
// the configured kind is present and the configuration demands one.
var ErrNoIdentifier = errors.New("cannot derive username: no recognised verified identifier present")

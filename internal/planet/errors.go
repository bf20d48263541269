package planet

import (
	"errors"
	"fmt"
)

// Kind categorizes planet errors.
type Kind string

const (
	// KindConfigRangeViolation marks a parameter outside its documented range.
	KindConfigRangeViolation Kind = "config_range_violation"
	// KindUnknownParameter marks a key no archetype declares.
	KindUnknownParameter Kind = "unknown_parameter"
	// KindCollaboratorFailure marks a refused mesh or material request.
	KindCollaboratorFailure Kind = "collaborator_failure"
	// KindLifecycle marks an operation invalid in the variant's state.
	KindLifecycle Kind = "lifecycle"
)

// Error is the error type returned by this package.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrDisposed is returned by every operation on a disposed variant.
	ErrDisposed = errors.New("planet disposed")
	// ErrAlreadyGenerated is returned by Generate on a realized variant.
	ErrAlreadyGenerated = errors.New("planet already generated")
	// ErrNotGenerated is returned by updates issued before Generate.
	ErrNotGenerated = errors.New("planet not generated")
)

func lifecycle(op string, err error) error {
	return &Error{Kind: KindLifecycle, Message: op, Err: err}
}

func collaboratorFailure(op string, err error) error {
	return &Error{Kind: KindCollaboratorFailure, Message: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

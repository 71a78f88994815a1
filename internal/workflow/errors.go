package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidEnumValue    = errors.New("invalid enum value")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotOpenForProposals = errors.New("request is not open for proposals")
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrAlreadyAccepted     = errors.New("a proposal has already been accepted")
	ErrRequestNotFound     = errors.New("request not found")
	ErrConflict            = errors.New("request was modified concurrently")
)

// FieldError describes one rejected field. Rule is the validation tag that
// failed ("required", "min", "oneof", ...), Param its argument.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	if f.Param == "" {
		return fmt.Sprintf("%s (%s)", f.Field, f.Rule)
	}
	return fmt.Sprintf("%s (%s=%s)", f.Field, f.Rule, f.Param)
}

// ValidationError matches ErrValidation, and ErrInvalidEnumValue as well when
// one of its fields fell outside a closed enumeration.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrInvalidEnumValue:
		for _, f := range e.Fields {
			if f.Rule == "oneof" {
				return true
			}
		}
	}
	return false
}

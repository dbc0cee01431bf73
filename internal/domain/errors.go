package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a well-formed request referencing something that does
// not exist, or an empty result on an endpoint that treats absence as error.
var ErrNotFound = errors.New("not found")

// ErrTimesNotSet blocks time-gated operations on organizations whose
// operating hours were never configured.
var ErrTimesNotSet = errors.New("organization operating hours are not set")

// ErrOutsideHours rejects a gated check-in outside the operating window.
var ErrOutsideHours = errors.New("organization is closed")

// ValidationError rejects malformed input before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// InjectionRiskError rejects relationship type names that cannot be safely
// spliced into query text. Raised before any store call.
type InjectionRiskError struct {
	TypeName string
}

func (e *InjectionRiskError) Error() string {
	return fmt.Sprintf("relationship type %q is not allowed", e.TypeName)
}

// RiskyType builds an InjectionRiskError.
func RiskyType(name string) error {
	return &InjectionRiskError{TypeName: name}
}

// IsInjectionRisk reports whether err is an InjectionRiskError.
func IsInjectionRisk(err error) bool {
	var v *InjectionRiskError
	return errors.As(err, &v)
}

// StoreError wraps a failed store call. Its message names the operation only;
// the wrapped cause never reaches HTTP response bodies.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s failed", e.Op)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WrapStore wraps err as a StoreError, passing through nil and errors that
// already carry domain meaning.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStore reports whether err is a StoreError.
func IsStore(err error) bool {
	var v *StoreError
	return errors.As(err, &v)
}

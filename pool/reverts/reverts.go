// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the rejection errors of the staking engine.
// A revert carries a stable reason string and a taxonomy class so that
// off-chain tooling can branch on cause. Reverts abort the enclosing
// operation with no state mutation.
package reverts

import (
	"errors"
	"fmt"
)

// Class is the error taxonomy entry of a revert.
type Class int

const (
	// ClassValidation marks input-validation failures.
	ClassValidation Class = iota + 1
	// ClassInsufficientResource marks balance/buffer/limit shortfalls.
	ClassInsufficientResource
	// ClassAccessControl marks missing caller roles.
	ClassAccessControl
	// ClassStateConflict marks operations conflicting with terminal or duplicate state.
	ClassStateConflict
	// ClassArithmetic marks overflow/underflow rejections.
	ClassArithmetic
)

// String implements stringer.
func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassInsufficientResource:
		return "insufficient-resource"
	case ClassAccessControl:
		return "access-control"
	case ClassStateConflict:
		return "state-conflict"
	case ClassArithmetic:
		return "arithmetic"
	}
	return "unknown"
}

// RevertError is a rejected operation with a stable reason.
type RevertError struct {
	class  Class
	reason string
}

// Error implements the error interface.
func (e *RevertError) Error() string {
	return e.reason
}

// Class returns the taxonomy class.
func (e *RevertError) Class() Class {
	return e.class
}

// New creates a revert with the given class and reason.
func New(class Class, reason string) *RevertError {
	return &RevertError{class: class, reason: reason}
}

// Validation creates an input-validation revert.
func Validation(format string, args ...any) *RevertError {
	return New(ClassValidation, fmt.Sprintf(format, args...))
}

// InsufficientResource creates an insufficient-resource revert.
func InsufficientResource(format string, args ...any) *RevertError {
	return New(ClassInsufficientResource, fmt.Sprintf(format, args...))
}

// AccessControl creates an access-control revert.
func AccessControl(format string, args ...any) *RevertError {
	return New(ClassAccessControl, fmt.Sprintf(format, args...))
}

// StateConflict creates a state-conflict revert.
func StateConflict(format string, args ...any) *RevertError {
	return New(ClassStateConflict, fmt.Sprintf(format, args...))
}

// Arithmetic creates an arithmetic revert.
func Arithmetic(format string, args ...any) *RevertError {
	return New(ClassArithmetic, fmt.Sprintf(format, args...))
}

// IsRevert reports whether err is (or wraps) a revert.
func IsRevert(err error) bool {
	var re *RevertError
	return errors.As(err, &re)
}

// ClassOf returns the taxonomy class of err, zero when err is not a revert.
func ClassOf(err error) Class {
	var re *RevertError
	if errors.As(err, &re) {
		return re.class
	}
	return 0
}

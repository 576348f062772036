// Package errors provides error handling for gomlgo.
//
// This package re-exports github.com/cockroachdb/errors and adds the error
// categories the runtime reports:
//
//   - ErrNotFound: unknown attribute, declaration, converter or child
//   - ErrAmbiguous: a bare name matched entries in several namespaces
//   - ErrInvalidOperation: the attempted operation is illegal in the current state
//   - ErrConstraintViolation: tree constraints failed when mounting a root
//
// Errors produced by the runtime are marked with one of the categories, so
// callers test them with errors.Is:
//
//	if errors.Is(err, errors.ErrAmbiguous) {
//	    // pick a fully-qualified name instead
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Categories. Wrap or Mark these to keep the category while adding context.
var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = New("not found")

	// ErrAmbiguous indicates a name matched more than one namespace.
	ErrAmbiguous = New("ambiguous name")

	// ErrInvalidOperation indicates the operation is not allowed in the current state.
	ErrInvalidOperation = New("invalid operation")

	// ErrConstraintViolation indicates one or more tree constraints failed.
	ErrConstraintViolation = New("tree constraint is not satisfied")
)

// NotFoundf returns a new error marked as ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// Ambiguousf returns a new error marked as ErrAmbiguous.
func Ambiguousf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrAmbiguous)
}

// InvalidOperationf returns a new error marked as ErrInvalidOperation.
func InvalidOperationf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrInvalidOperation)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsAmbiguous reports whether err is or wraps ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return err != nil && Is(err, ErrAmbiguous)
}

// IsInvalidOperation reports whether err is or wraps ErrInvalidOperation.
func IsInvalidOperation(err error) bool {
	return err != nil && Is(err, ErrInvalidOperation)
}

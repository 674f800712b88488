package report

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines report generation error kinds.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindTimeout    ErrorKind = "timeout"
	KindCanceled   ErrorKind = "canceled"
	KindRendering  ErrorKind = "rendering"
	KindStorage    ErrorKind = "storage"
	KindInternal   ErrorKind = "internal"
)

// ReportError wraps errors with a kind.
type ReportError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *ReportError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewError creates a new report error.
func NewError(kind ErrorKind, msg string, err error) *ReportError {
	return &ReportError{Kind: kind, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		kind = reportErr.Kind
		if reportErr.Msg != "" {
			msg = reportErr.Msg
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
	case KindTimeout:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("timeout")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	case KindRendering:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("rendering")
	case KindStorage:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("storage")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its report error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}

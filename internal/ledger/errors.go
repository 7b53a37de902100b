package ledger

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable failure class carried by every ledger error.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindValidation        Kind = "validation"
	KindStore             Kind = "store"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg != "" {
		return e.Msg + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any ledger error of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrStore             = &Error{Kind: KindStore}
)

// KindOf returns the kind of err, KindStore for foreign errors and "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Errorf builds a ledger error of the given kind for collaborating packages.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return Errorf(KindNotFound, format, args...)
}

func invalid(format string, args ...any) error {
	return Errorf(KindValidation, format, args...)
}

func insufficient(po string) error {
	return &Error{Kind: KindInsufficientStock, Msg: fmt.Sprintf("Yetersiz stok, P.O: %s", po)}
}

// StoreErr wraps a driver error; ledger errors pass through unchanged.
func StoreErr(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStore, Err: err}
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides context-wrapped error handling and a set of
// helper functions for logging, panicking on, and testing errors.
// It re-exports the standard library error functions so that it can
// be used in place of the standard errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents an error with a base error and the call
// sites that wrapped it.
type Error struct {
	Base  error
	Stack []string
}

// Wrap wraps the given error into an error object with
// a stack trace. It returns nil if the given error is nil.
// If it is not nil, the result is guaranteed to be of type [*Error].
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	e := &Error{Base: err}
	if Debug {
		for _, f := range Stack() {
			e.Stack = append(e.Stack, fmt.Sprintf("%s:%d", f.Function, f.Line))
		}
	}
	return e
}

// New returns a new error with the given text, wrapped with
// a stack trace via [Wrap]. The result is guaranteed to be of
// type [*Error].
func New(text string) error {
	return Wrap(errors.New(text))
}

// Errorf returns a new error with the given format and arguments,
// wrapped with a stack trace via [Wrap]. The result is guaranteed to be of
// type [*Error].
func Errorf(format string, a ...any) error {
	return Wrap(fmt.Errorf(format, a...))
}

// Error returns the error as a string. The stack trace is
// only included in debug builds.
func (e *Error) Error() string {
	res := e.Base.Error()
	if len(e.Stack) > 0 {
		res += " (" + strings.Join(e.Stack, ": ") + ")"
	}
	return res
}

// Unwrap returns the underlying base error of the Error.
func (e *Error) Unwrap() error {
	return e.Base
}

// Is is [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"log/slog"
)

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns a zero value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error())
	}
	return v
}

// Must takes the given error and panics if it is non-nil.
// The intended usage is:
//
//	errors.Must(MyFunc(v))
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 takes the given value and error and returns the value if
// the error is nil, and panics if the error is non-nil. The intended usage is:
//
//	a := errors.Must1(MyFunc(v))
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Error(args ...any)
}

// Test takes the given error and errors the test it if it is non-nil.
// The intended usage is:
//
//	errors.Test(t, MyFunc(v))
func Test(t TestingT, err error) error {
	if err != nil {
		t.Error(err)
	}
	return err
}

// Test1 takes the given value and error and returns the value if
// the error is nil, and errors the test and returns a zero value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Test1(t, MyFunc(v))
func Test1[T any](t TestingT, v T, err error) T {
	if err != nil {
		t.Error(err)
	}
	return v
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"runtime"
	"strings"
)

// Stack returns the stack trace up to the caller of [Wrap] as a slice of frames.
func Stack() []runtime.Frame {
	callers := make([]uintptr, 10)
	n := runtime.Callers(3, callers)
	// Return now to avoid processing the zero Frame that would
	// otherwise be returned by frames.Next below.
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(callers[:n])
	res := []runtime.Frame{}
	for {
		frame, more := frames.Next()
		// Stop unwinding when we enter package runtime or test.
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			break
		}
		if !strings.HasSuffix(frame.Function, "errors.New") && !strings.HasSuffix(frame.Function, "errors.Errorf") {
			res = append(res, frame)
		}
		if !more {
			break
		}
	}
	return res
}

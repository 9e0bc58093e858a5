// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build debug

package errors

// Debug is whether to record the stack traces of wrapped errors.
var Debug = true

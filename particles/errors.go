// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import "cogentcore.org/particles/base/errors"

var (
	// ErrUnsupportedType is returned when a particle type cannot be
	// drawn by the kind of system it is set on.
	ErrUnsupportedType = errors.New("particles: unsupported particle type")

	// ErrUnknownEmitter is returned for an unknown emitter kind in [Settings].
	ErrUnknownEmitter = errors.New("particles: unknown emitter")

	// ErrUnknownInfluence is returned for an unknown influence kind in [Settings].
	ErrUnknownInfluence = errors.New("particles: unknown influence")

	// ErrUnknownPreset is returned by [Library] lookups of missing presets.
	ErrUnknownPreset = errors.New("particles: unknown preset")

	// ErrFormat is returned when a library file has a missing or
	// incompatible format version.
	ErrFormat = errors.New("particles: unsupported library format")
)

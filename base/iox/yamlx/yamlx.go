// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx provides functions for loading and saving YAML files.
package yamlx

import (
	"io"
	"io/fs"

	"cogentcore.org/particles/base/iox"
	"gopkg.in/yaml.v3"
)

// NewDecoder returns a new [iox.Decoder]
func NewDecoder(r io.Reader) iox.Decoder {
	return yaml.NewDecoder(r)
}

// Open reads the given object from the given filename using YAML encoding
func Open(v any, filename string) error {
	return iox.Open(v, filename, NewDecoder)
}

// OpenFS reads the given object from the given filename using YAML encoding,
// using the given [fs.FS] filesystem (e.g., for embed files)
func OpenFS(v any, fsys fs.FS, filename string) error {
	return iox.OpenFS(v, fsys, filename, NewDecoder)
}

// Read reads the given object from the given reader,
// using YAML encoding
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, NewDecoder)
}

// ReadBytes reads the given object from the given bytes,
// using YAML encoding
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, NewDecoder)
}

// NewEncoder returns a new [iox.Encoder] with two-space indentation
func NewEncoder(w io.Writer) iox.Encoder {
	return &encoder{w: w}
}

// encoder closes the yaml encoder after each document, so that
// everything is written through to w.
type encoder struct {
	w io.Writer
}

func (e *encoder) Encode(v any) error {
	ye := yaml.NewEncoder(e.w)
	ye.SetIndent(2)
	if err := ye.Encode(v); err != nil {
		return err
	}
	return ye.Close()
}

// Save writes the given object to the given filename using YAML encoding
func Save(v any, filename string) error {
	return iox.Save(v, filename, NewEncoder)
}

// Write writes the given object using YAML encoding
func Write(v any, writer io.Writer) error {
	return iox.Write(v, writer, NewEncoder)
}

// WriteBytes writes the given object, returning bytes of the encoding,
// using YAML encoding
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, NewEncoder)
}

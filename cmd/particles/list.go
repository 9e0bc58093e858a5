// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"cogentcore.org/particles/particles"
)

// list writes one line per preset of the library in file.
func list(w io.Writer, file string) error {
	lib, err := particles.OpenLibrary(file)
	if err != nil {
		return err
	}
	out := termenv.NewOutput(w)
	for _, name := range lib.Names() {
		st, err := lib.Settings(name)
		if err != nil {
			return err
		}
		kinds := make([]string, len(st.Influences))
		for i, is := range st.Influences {
			kinds[i] = is.Kind
		}
		emitter := st.Emitter.Kind
		if emitter == "" {
			emitter = "point"
		}
		fmt.Fprintf(out, "%-16s %-8s %6d  %-8s %s\n", out.String(name).Bold(), st.Type, st.Count, emitter, strings.Join(kinds, ","))
	}
	return nil
}

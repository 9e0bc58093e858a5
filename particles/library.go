// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/jinzhu/copier"

	"cogentcore.org/particles/base/errors"
	"cogentcore.org/particles/base/iox"
	"cogentcore.org/particles/base/iox/tomlx"
	"cogentcore.org/particles/base/iox/yamlx"
	"cogentcore.org/particles/base/ordmap"
	"cogentcore.org/particles/base/randx"
)

// LibraryFormat is the format version written by [Library.Save].
// Files are accepted if their format matches ^1.
const LibraryFormat = "1.0.0"

var formatConstraint = errors.Must1(semver.NewConstraint("^1"))

// Library is an ordered set of named effect [Settings] presets,
// stored in TOML or YAML files.
type Library struct {
	presets ordmap.Map[string, Settings]
}

// libraryFile is the file layout of a [Library].
type libraryFile struct {
	Format  string     `toml:"format" yaml:"format"`
	Effects []Settings `toml:"effect" yaml:"effects"`
}

// NewLibrary returns a new empty [Library].
func NewLibrary() *Library {
	lb := &Library{}
	lb.presets.Init()
	return lb
}

// OpenLibrary reads a new [Library] from the given file, which is
// TOML or YAML depending on its extension.
func OpenLibrary(filename string) (*Library, error) {
	lb := NewLibrary()
	return lb, lb.Open(filename)
}

// decoderFor returns the decoder for the extension of the filename.
func decoderFor(filename string) (iox.DecoderFunc, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.NewDecoder, nil
	case ".yaml", ".yml":
		return yamlx.NewDecoder, nil
	}
	return nil, errors.Errorf("particles: unknown library file type %q", filename)
}

// Open replaces the presets of the library with those in the given file.
func (lb *Library) Open(filename string) error {
	dec, err := decoderFor(filename)
	if err != nil {
		return err
	}
	var lf libraryFile
	if err := iox.Open(&lf, filename, dec); err != nil {
		return err
	}
	return lb.set(&lf, filename)
}

// OpenFS is [Library.Open] on the given filesystem.
func (lb *Library) OpenFS(fsys fs.FS, filename string) error {
	dec, err := decoderFor(filename)
	if err != nil {
		return err
	}
	var lf libraryFile
	if err := iox.OpenFS(&lf, fsys, filename, dec); err != nil {
		return err
	}
	return lb.set(&lf, filename)
}

func (lb *Library) set(lf *libraryFile, filename string) error {
	v, err := semver.NewVersion(lf.Format)
	if err != nil || !formatConstraint.Check(v) {
		return errors.Errorf("%w: %q in %s", ErrFormat, lf.Format, filename)
	}
	lb.presets.Reset()
	lb.presets.Init()
	for _, st := range lf.Effects {
		lb.presets.Add(st.Name, st)
	}
	slog.Info("particles: loaded library", "file", filename, "format", lf.Format, "effects", lb.presets.Len())
	return nil
}

// Save writes the library to the given file, which is TOML or YAML
// depending on its extension.
func (lb *Library) Save(filename string) error {
	lf := libraryFile{Format: LibraryFormat}
	for _, st := range lb.presets.All() {
		lf.Effects = append(lf.Effects, st)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.Save(&lf, filename)
	case ".yaml", ".yml":
		return yamlx.Save(&lf, filename)
	}
	return errors.Errorf("particles: unknown library file type %q", filename)
}

// Len returns the number of presets.
func (lb *Library) Len() int { return lb.presets.Len() }

// Names returns the preset names in order.
func (lb *Library) Names() []string { return lb.presets.Keys() }

// Add adds a copy of the given settings under its name,
// replacing any preset with the same name.
func (lb *Library) Add(st Settings) error {
	var cp Settings
	if err := copier.CopyWithOption(&cp, &st, copier.Option{DeepCopy: true}); err != nil {
		return errors.Wrap(err)
	}
	lb.presets.Add(cp.Name, cp)
	return nil
}

// Delete removes the named preset and returns whether it existed.
func (lb *Library) Delete(name string) bool {
	return lb.presets.DeleteKey(name)
}

// Settings returns a deep copy of the named preset, or an error
// wrapping [ErrUnknownPreset].
func (lb *Library) Settings(name string) (Settings, error) {
	var cp Settings
	st, ok := lb.presets.ValueByKeyTry(name)
	if !ok {
		return cp, errors.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if err := copier.CopyWithOption(&cp, &st, copier.Option{DeepCopy: true}); err != nil {
		return cp, errors.Wrap(err)
	}
	return cp, nil
}

// NewSystem builds the named preset with [Settings.NewSystem] and
// warms it up by its WarmUp iterations.
func (lb *Library) NewSystem(name string, rnd randx.Rand) (*System, *Controller, error) {
	st, err := lb.Settings(name)
	if err != nil {
		return nil, nil, err
	}
	sys, c, err := st.NewSystem(rnd)
	if err != nil {
		return nil, nil, err
	}
	c.WarmUp(st.WarmUp)
	return sys, c, nil
}

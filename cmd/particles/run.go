// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/particles/base/errors"
	"cogentcore.org/particles/base/randx"
	"cogentcore.org/particles/math32"
	"cogentcore.org/particles/particles"
)

// effect is one running preset.
type effect struct {
	name string
	sys  *particles.System
	ctrl *particles.Controller
}

// runner steps the effects of a library.
type runner struct {
	file    string
	lib     *particles.Library
	effects []*effect
	cam     particles.Camera
	frame   int
}

// newRunner opens the library in file and builds its effects,
// or only the named one if name is not empty.
func newRunner(file, name string, seed int64) (*runner, error) {
	lib, err := particles.OpenLibrary(file)
	if err != nil {
		return nil, err
	}
	r := &runner{file: file, lib: lib}
	r.cam = particles.CameraLookAt(math32.Vec3(0, 0, 10), math32.Vector3{}, math32.Vec3(0, 1, 0))

	names := lib.Names()
	if name != "" {
		if _, err := lib.Settings(name); err != nil {
			return nil, err
		}
		names = []string{name}
	}
	var seeds randx.Seeds
	seeds.Init(len(names), seed)
	if seed == 0 {
		seeds.NewSeeds()
	}
	for i, nm := range names {
		sys, c, err := lib.NewSystem(nm, seeds.Rand(i))
		if err != nil {
			return nil, err
		}
		sys.SetTrackBound(true)
		r.effects = append(r.effects, &effect{name: nm, sys: sys, ctrl: c})
	}
	return r, nil
}

// step advances all effects by dt seconds and updates their geometry.
func (r *runner) step(dt float32) {
	for _, e := range r.effects {
		e.ctrl.Update(dt)
		e.sys.UpdateVertices(&r.cam)
	}
	r.frame++
}

// logStats logs the population and bound of every effect.
func (r *runner) logStats() {
	for _, e := range r.effects {
		alive := 0
		for _, p := range e.sys.Particles() {
			if p.Status == particles.Alive {
				alive++
			}
		}
		slog.Info("particles: stats", "effect", e.name, "frame", r.frame, "time", e.ctrl.CurrentTime(),
			"alive", alive, "active", e.ctrl.Active, "bound", e.sys.Bound())
	}
}

// reload reopens the library and applies the new settings to the
// running effects. A failed reload keeps everything as it was.
func (r *runner) reload() error {
	if err := r.lib.Open(r.file); err != nil {
		return err
	}
	for _, e := range r.effects {
		st, err := r.lib.Settings(e.name)
		if errors.Log(err) != nil {
			continue
		}
		if errors.Log(st.Apply(e.sys)) == nil {
			slog.Info("particles: reloaded effect", "effect", e.name)
		}
	}
	return nil
}

// watch sends on the returned channel whenever file is written,
// until ctx is done. The directory is watched so that editors which
// replace the file are followed.
func watch(ctx context.Context, file string) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err)
	}
	if err := w.Add(filepath.Dir(file)); err != nil {
		w.Close()
		return nil, errors.Wrap(err)
	}
	changed := make(chan struct{}, 1)
	target := filepath.Clean(file)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					select {
					case changed <- struct{}{}:
					default:
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return changed, nil
}

func run(ctx context.Context, cfg *Config, file string) error {
	if cfg.FPS <= 0 {
		return errors.Errorf("fps must be positive, not %g", cfg.FPS)
	}
	if cfg.Frames <= 0 && !cfg.Watch {
		return errors.New("running without a frame limit needs --watch to pace the frames")
	}
	r, err := newRunner(file, cfg.Effect, cfg.Seed)
	if err != nil {
		return err
	}
	dt := 1 / cfg.FPS
	perSecond := max(int(cfg.FPS), 1)
	done := func() bool {
		return cfg.Frames > 0 && r.frame >= cfg.Frames
	}

	if !cfg.Watch {
		for !done() {
			if ctx.Err() != nil {
				break
			}
			r.step(dt)
			if r.frame%perSecond == 0 {
				r.logStats()
			}
		}
		r.logStats()
		return nil
	}

	changed, err := watch(ctx, file)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / float64(cfg.FPS)))
	defer ticker.Stop()
	for !done() {
		select {
		case <-ctx.Done():
			r.logStats()
			return nil
		case <-changed:
			errors.Log(r.reload())
		case <-ticker.C:
			r.step(dt)
			if r.frame%perSecond == 0 {
				r.logStats()
			}
		}
	}
	r.logStats()
	return nil
}

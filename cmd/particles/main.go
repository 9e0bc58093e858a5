// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command particles runs particle effect libraries headless
// and reports how their populations evolve.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cogentcore.org/particles/base/logx"
)

// Config holds the command line options shared by all commands.
type Config struct {

	// Effect restricts running to the named preset.
	Effect string

	// Frames is the number of frames to run, or 0 to run
	// until interrupted, which requires Watch.
	Frames int

	// FPS is the number of frames per simulated second.
	FPS float32

	// Seed is the base random seed, or 0 for a time based seed.
	Seed int64

	// Watch reloads the library when its file changes, and paces
	// frames in real time.
	Watch bool

	// verbosity flags
	Verbose     bool
	VeryVerbose bool
	Quiet       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &Config{}
	root := &cobra.Command{
		Use:          "particles",
		Short:        "Run particle effect libraries headless",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(cfg.VeryVerbose, cfg.Verbose, cfg.Quiet)
			logx.SetDefaultLogger()
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log info messages")
	pf.BoolVar(&cfg.VeryVerbose, "vv", false, "log debug messages")
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(newRunCmd(cfg), newListCmd(cfg))
	return root
}

func newRunCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Step the effects of a library and log their stats every second",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.Effect, "effect", "e", "", "only run the named effect")
	f.IntVarP(&cfg.Frames, "frames", "n", 600, "number of frames to run, 0 for no limit (requires --watch)")
	f.Float32Var(&cfg.FPS, "fps", 60, "frames per simulated second")
	f.Int64Var(&cfg.Seed, "seed", 0, "base random seed, 0 for a time based seed")
	f.BoolVarP(&cfg.Watch, "watch", "w", false, "reload the library when it changes and run in real time")
	return cmd
}

func newListCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List the effects of a library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return list(cmd.OutOrStdout(), args[0])
		},
	}
}

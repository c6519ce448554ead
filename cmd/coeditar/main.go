// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command coeditar loads, converts and renders CoEditAR app data files.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"coeditar.org/core/cmd/coeditar/cmd"
	"coeditar.org/core/codec"
	"coeditar.org/core/config"
	"coeditar.org/core/logx"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile  string
		logLevel string
		c        *config.Config
		lg       *logx.Logger
	)
	root := &cobra.Command{
		Use:          "coeditar",
		Short:        "Load, convert and render CoEditAR app data files",
		SilenceUsage: true,
		PersistentPreRunE: func(cc *cobra.Command, args []string) error {
			var err error
			if c, err = config.Load(cfgFile); err != nil {
				return err
			}
			if logLevel != "" {
				c.Log.Level = logLevel
			}
			if lg, err = logx.New(c.Log, cc.ErrOrStderr()); err != nil {
				return err
			}
			lg.SetDefault()
			return nil
		},
		PersistentPostRunE: func(cc *cobra.Command, args []string) error {
			return lg.Close()
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./coeditar.toml or ~/.config/coeditar/coeditar.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn or error)")

	root.AddCommand(&cobra.Command{
		Use:   "load <file>",
		Short: "Load an app data file and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			app, err := cmd.Load(c, args[0])
			if err != nil {
				return err
			}
			return cmd.PrintTree(cc.OutOrStdout(), app)
		},
	})

	var format, mode string
	convert := &cobra.Command{
		Use:   "convert <in> [out]",
		Short: "Convert an app data file to another format or serialization mode",
		Long: "Convert loads an app data file and writes it to out, or to standard output.\n" +
			"The output format is given by the extension of out, or by --format.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cc *cobra.Command, args []string) error {
			if format != "" {
				c.Data.Format = format
			}
			if mode != "" {
				c.Data.Mode = mode
			}
			if err := c.Validate(); err != nil {
				return err
			}
			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return cmd.Convert(c, args[0], out, cc.OutOrStdout())
		},
	}
	convert.Flags().StringVarP(&format, "format", "f", "", "output format for standard output (json, yaml, toml or bson)")
	convert.Flags().StringVarP(&mode, "mode", "m", "", "serialization mode (full, simple or tree)")
	root.AddCommand(convert)

	var view string
	var frames, width, height int
	var fps float64
	var watchFile bool
	run := &cobra.Command{
		Use:   "run <file>",
		Short: "Render a view of an app data file with the headless renderer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			fl := cc.Flags()
			if fl.Changed("frames") {
				c.View.Frames = frames
			}
			if fl.Changed("fps") {
				c.View.FPS = fps
			}
			if fl.Changed("width") {
				c.View.Width = width
			}
			if fl.Changed("height") {
				c.View.Height = height
			}
			if fl.Changed("watch") {
				c.View.Watch = watchFile
			}
			if err := c.Validate(); err != nil {
				return err
			}
			return cmd.Run(cc.Context(), c, args[0], view, cc.OutOrStdout())
		},
	}
	run.Flags().StringVar(&view, "view", "", "name of the view to render (default the first view)")
	run.Flags().IntVarP(&frames, "frames", "n", 0, "number of frames to render; 0 renders until interrupted")
	run.Flags().Float64Var(&fps, "fps", 60, "frames per second")
	run.Flags().IntVar(&width, "width", 1280, "surface width in pixels")
	run.Flags().IntVar(&height, "height", 720, "surface height in pixels")
	run.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload the file when it changes")
	root.AddCommand(run)

	root.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "Print the hierarchy of node types",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return cmd.Types(cc.OutOrStdout())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return codec.Encode(cc.OutOrStdout(), codec.TOML, c.Settings())
		},
	})
	return root
}

// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"coeditar.org/core/config"
	"coeditar.org/core/host"
	"coeditar.org/core/render"
	"coeditar.org/core/xyz"
)

// Run loads the app data file at the given path and renders the view
// with the given name, or the first view if name is empty, with a
// headless renderer driven by a ticker host, until the configured
// number of frames is rendered or the context is done. If watching is
// configured, the app is reloaded whenever the file changes.
// A summary is written to w at the end.
func Run(ctx context.Context, c *config.Config, path, name string, w io.Writer) error {
	app, err := Load(c, path)
	if err != nil {
		return err
	}
	view, err := pickView(app, name)
	if err != nil {
		return err
	}
	tk := host.NewTicker(c.View.FPS, c.View.Width, c.View.Height)
	hl := render.NewHeadless(c.View.Width, c.View.Height)
	hl.OnFrame = func(f *render.Frame) {
		slog.Debug("rendered frame", "frame", f.Number, "drawn", len(f.Drawn))
	}
	vp := view.Attach(hl, tk)

	if c.View.Watch {
		file, err := FindData(c, path)
		if err != nil {
			return err
		}
		err = watch(ctx, c, file, tk, func() error {
			app, err := Load(c, file)
			if err != nil {
				return err
			}
			v, err := pickView(app, name)
			if err != nil {
				return err
			}
			vp.SetView(v)
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		tk.MaxFrames = c.View.Frames
		if err := tk.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	v := vp.View()
	_, err = fmt.Fprintf(w, "rendered %d frames of space %q from view %q\n", vp.Frames, v.Space.Value(), v.Name)
	return err
}

func pickView(app *xyz.App, name string) (*xyz.View, error) {
	if name == "" {
		if app.Views.Count() == 0 {
			return nil, fmt.Errorf("app %q has no views", app.Name)
		}
		return app.Views.Index(0).(*xyz.View), nil
	}
	v := app.View(name)
	if v == nil {
		return nil, fmt.Errorf("app %q has no view %q", app.Name, name)
	}
	return v, nil
}

// watch steps the ticker at its interval on the calling goroutine and
// calls reload on the same goroutine once the given file has not changed
// for the configured debounce time. It returns when the context is done
// or the configured number of frames is rendered.
func watch(ctx context.Context, c *config.Config, file string, tk *host.Ticker, reload func() error) error {
	wt, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer wt.Close()
	// editors often replace files, so the directory is watched
	if err := wt.Add(filepath.Dir(file)); err != nil {
		return err
	}
	tick := time.NewTicker(tk.Interval)
	defer tick.Stop()
	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-tick.C:
			tk.Step(now)
			if c.View.Frames > 0 && tk.Frames() >= c.View.Frames {
				return nil
			}
		case ev, ok := <-wt.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == file && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(c.View.Debounce)
			}
		case <-debounce:
			debounce = nil
			if err := reload(); err != nil {
				slog.Error("reload failed", "file", file, "err", err)
				continue
			}
			slog.Info("reloaded", "file", file)
		case err, ok := <-wt.Errors:
			if !ok {
				return nil
			}
			slog.Error("watching failed", "file", file, "err", err)
		}
	}
}

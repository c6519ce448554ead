// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the coeditar tool.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"coeditar.org/core/base/fsx"
	"coeditar.org/core/base/ordmap"
	"coeditar.org/core/codec"
	"coeditar.org/core/config"
	"coeditar.org/core/tree"
	"coeditar.org/core/xyz"
)

// FindData returns the path of the given data file: the path itself if
// it exists, and otherwise the first match on the data paths of the config.
func FindData(c *config.Config, path string) (string, error) {
	if ok, err := fsx.FileExists(path); err == nil && ok {
		return filepath.Abs(path)
	}
	if !filepath.IsAbs(path) {
		if files := fsx.FindFilesOnPaths(c.Data.Paths, path); len(files) > 0 {
			return filepath.Abs(files[0])
		}
	}
	return "", fmt.Errorf("data file %q not found in %v", path, c.Data.Paths)
}

// ReadData reads and decodes the given data file, in the format given
// by its extension.
func ReadData(file string) (any, error) {
	f, err := codec.FormatFromPath(file)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return codec.Unmarshal(f, b)
}

// Load reads the app data file at the given path into a new app.
// The app is named by the name key of the data if there is one,
// and after the file otherwise.
func Load(c *config.Config, path string) (*xyz.App, error) {
	file, err := FindData(c, path)
	if err != nil {
		return nil, err
	}
	data, err := ReadData(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	name := dataName(data)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	app, err := xyz.NewApp(tree.NewContext(), name)
	if err != nil {
		return nil, err
	}
	if err := app.Load(data, tree.ModeTree); err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	slog.Info("loaded app", "file", file, "app", app.Name, "version", app.Version.Value(),
		"spaces", app.Spaces.Count(), "users", app.Users.Count(), "views", app.Views.Count())
	return app, nil
}

func dataName(data any) string {
	var v any
	switch d := data.(type) {
	case *ordmap.Map[string, any]:
		v = d.ValueByKey("name")
	case map[string]any:
		v = d["name"]
	}
	s, _ := v.(string)
	return s
}

// Convert loads the app data file at the given path and writes it to
// out, or to w if out is empty or "-". The output format is given by the
// extension of out, or by the data format of the config.
func Convert(c *config.Config, in, out string, w io.Writer) error {
	app, err := Load(c, in)
	if err != nil {
		return err
	}
	mode, err := c.Data.OutputMode()
	if err != nil {
		return err
	}
	f, err := c.Data.OutputFormat()
	if err != nil {
		return err
	}
	toFile := out != "" && out != "-"
	if toFile {
		if f, err = codec.FormatFromPath(out); err != nil {
			return err
		}
	}
	b, err := codec.Marshal(f, app.Serialize(mode))
	if err != nil {
		return err
	}
	if toFile {
		err = os.WriteFile(out, b, 0o644)
	} else {
		_, err = w.Write(b)
	}
	if err != nil {
		return err
	}
	slog.Info("converted app", "from", in, "to", out, "format", f, "mode", mode)
	return nil
}

// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the coeditar tool,
// read from a TOML file, COEDITAR_ environment variables and the
// `default:` struct tags of the config types, in decreasing precedence.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"coeditar.org/core/base/fsx"
	"coeditar.org/core/codec"
	"coeditar.org/core/tree"
)

// Name is the base name of the config file and the environment prefix.
const Name = "coeditar"

// Config is the main config struct that contains all of the
// configuration options for the coeditar tool.
type Config struct {

	// the settings for loading and saving serialized trees
	Data Data `mapstructure:"data"`

	// the settings for the structured log
	Log Log `mapstructure:"log"`

	// the settings for the headless viewport
	View View `mapstructure:"view"`

	// other config files whose settings this file overrides,
	// relative to the directory of this file
	Includes []string `mapstructure:"includes"`

	// the config file that was read, if any
	File string `mapstructure:"-"`

	v *viper.Viper
}

type Data struct {

	// the directories searched for data files given by relative path
	Paths []string `mapstructure:"paths" default:"."`

	// the format used for output when it is not given by a file extension
	Format string `mapstructure:"format" default:"json"`

	// the serialization mode used for output (full, simple or tree);
	// only tree mode output can be loaded into an empty app
	Mode string `mapstructure:"mode" default:"tree"`
}

type Log struct {

	// the minimum level of logged records (debug, info, warn or error)
	Level string `mapstructure:"level" default:"info"`

	// the log record format (text or json)
	Format string `mapstructure:"format" default:"text"`

	// the file to write the log to in addition to standard error;
	// empty means standard error only
	File string `mapstructure:"file"`

	// the maximum size of the log file in megabytes before it is rotated
	MaxSize int `mapstructure:"max_size" default:"10"`

	// the maximum number of rotated log files to keep
	MaxBackups int `mapstructure:"max_backups" default:"3"`

	// the maximum number of days to keep rotated log files
	MaxAge int `mapstructure:"max_age" default:"28"`

	// whether to gzip rotated log files
	Compress bool `mapstructure:"compress"`
}

type View struct {

	// the number of frames rendered per second
	FPS float64 `mapstructure:"fps" default:"60"`

	// the width of the surface in pixels
	Width int `mapstructure:"width" default:"1280"`

	// the height of the surface in pixels
	Height int `mapstructure:"height" default:"720"`

	// the number of frames to render before stopping; 0 means until interrupted
	Frames int `mapstructure:"frames"`

	// whether to reload the data file when it changes
	Watch bool `mapstructure:"watch"`

	// how long to wait for further changes before reloading a watched file
	Debounce time.Duration `mapstructure:"debounce" default:"100ms"`
}

// Load returns the config read from the given file, or from coeditar.toml
// in the current directory or ~/.config/coeditar if path is empty,
// overridden by COEDITAR_ environment variables such as COEDITAR_LOG_LEVEL.
// A missing file is only an error if path is given.
func Load(path string) (*Config, error) {
	v := newViper()
	if path == "" {
		files := fsx.FindFilesOnPaths([]string{".", filepath.Join("~", ".config", Name)}, Name+".toml")
		if len(files) == 0 {
			return decode(v, "")
		}
		path = files[0]
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := readWithIncludes(v, path, map[string]bool{}); err != nil {
		return nil, err
	}
	return decode(v, path)
}

// readWithIncludes merges the given config file into v, after the files
// it lists in its includes setting, so that includers override the
// settings they include. Included files are found relative to the
// directory of the includer.
func readWithIncludes(v *viper.Viper, file string, seen map[string]bool) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if seen[abs] {
		return fmt.Errorf("config: include cycle at %q", file)
	}
	seen[abs] = true
	sub := viper.New()
	sub.SetConfigFile(abs)
	if err := sub.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read: %w", err)
	}
	for _, inc := range sub.GetStringSlice("includes") {
		files := fsx.FindFilesOnPaths([]string{filepath.Dir(abs)}, inc)
		if len(files) == 0 {
			return fmt.Errorf("config: include %q of %q not found", inc, file)
		}
		if err := readWithIncludes(v, files[0], seen); err != nil {
			return err
		}
	}
	return v.MergeConfigMap(sub.AllSettings())
}

// Default returns the config given by the `default:` struct tags and
// the environment.
func Default() *Config {
	cfg, err := decode(newViper(), "")
	if err != nil {
		cfg = &Config{}
		SetFromDefaults(cfg)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, reflect.TypeOf(Config{}), "")
	v.SetEnvPrefix(Name)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every field with the given viper instance, using
// the `default:` tag value if any. Registration makes environment
// variables visible to [viper.Viper.Unmarshal].
func setDefaults(v *viper.Viper, typ reflect.Type, prefix string) {
	for i := range typ.NumField() {
		f := typ.Field(i)
		name, ok := f.Tag.Lookup("mapstructure")
		if !f.IsExported() || !ok || name == "-" {
			continue
		}
		key := prefix + name
		if f.Type.Kind() == reflect.Struct {
			setDefaults(v, f.Type, key+".")
			continue
		}
		if def, ok := f.Tag.Lookup("default"); ok {
			v.SetDefault(key, def)
		} else {
			v.SetDefault(key, reflect.Zero(f.Type).Interface())
		}
	}
}

func decode(v *viper.Viper, file string) (*Config, error) {
	cfg := &Config{v: v, File: file}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) expandPaths() error {
	var err error
	if c.Log.File, err = homedir.Expand(c.Log.File); err != nil {
		return fmt.Errorf("config: log.file: %w", err)
	}
	for i, p := range c.Data.Paths {
		if c.Data.Paths[i], err = homedir.Expand(p); err != nil {
			return fmt.Errorf("config: data.paths: %w", err)
		}
	}
	return nil
}

// Validate checks that the config values are in range.
func (c *Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("config: log.format must be text or json, not %q", c.Log.Format)
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("config: log rotation limits must not be negative")
	}
	if _, err := c.Data.OutputFormat(); err != nil {
		return fmt.Errorf("config: data.format: %w", err)
	}
	if _, err := c.Data.OutputMode(); err != nil {
		return fmt.Errorf("config: data.mode: %w", err)
	}
	if c.View.FPS <= 0 {
		return fmt.Errorf("config: view.fps must be positive, not %v", c.View.FPS)
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("config: view size must be positive, not %dx%d", c.View.Width, c.View.Height)
	}
	if c.View.Frames < 0 || c.View.Debounce < 0 {
		return fmt.Errorf("config: view.frames and view.debounce must not be negative")
	}
	return nil
}

// Settings returns all of the settings as nested maps keyed by
// setting name, for display.
func (c *Config) Settings() map[string]any {
	if c.v == nil {
		return map[string]any{}
	}
	return c.v.AllSettings()
}

// SlogLevel returns the parsed log level. An empty level is
// [slog.LevelInfo].
func (l *Log) SlogLevel() (slog.Level, error) {
	var lv slog.Level
	if l.Level == "" {
		return lv, nil
	}
	if err := lv.UnmarshalText([]byte(l.Level)); err != nil {
		return lv, fmt.Errorf("config: log.level: %w", err)
	}
	return lv, nil
}

// OutputFormat returns the parsed output format.
func (d *Data) OutputFormat() (codec.Format, error) {
	return codec.ParseFormat(d.Format)
}

// OutputMode returns the parsed output serialization mode.
func (d *Data) OutputMode() (tree.Mode, error) {
	return tree.ParseMode(d.Mode)
}

// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"coeditar.org/core/base/errors"
)

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values. Errors are automatically
// logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	typ := reflect.TypeOf(cfg)
	if typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		return errors.Log(errors.New("config.SetFromDefaults: cfg must be a pointer to a struct"))
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return errors.Log(err)
	}
	return errors.Log(dec.Decode(defaultTags(typ.Elem())))
}

// defaultTags returns the `default:` tag values of the given struct type
// keyed by `mapstructure:` name, with nested maps for struct fields.
func defaultTags(typ reflect.Type) map[string]any {
	m := map[string]any{}
	for i := range typ.NumField() {
		f := typ.Field(i)
		name, ok := f.Tag.Lookup("mapstructure")
		if !f.IsExported() || !ok || name == "-" {
			continue
		}
		if f.Type.Kind() == reflect.Struct {
			m[name] = defaultTags(f.Type)
			continue
		}
		if def, ok := f.Tag.Lookup("default"); ok {
			m[name] = def
		}
	}
	return m
}

// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides file system helpers for locating data and
// configuration files.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"coeditar.org/core/base/errors"
)

// DirFS returns the directory part of given file path as an os.DirFS
// and the filename as a string. These can then be used to access the file
// using the FS-based interface.
func DirFS(fpath string) (fs.FS, string, error) {
	fabs, err := filepath.Abs(fpath)
	if err != nil {
		return nil, "", err
	}
	dir, fname := filepath.Split(fabs)
	return os.DirFS(dir), fname, nil
}

// FileExistsFS checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
// Directories do not count as files.
func FileExistsFS(fsys fs.FS, filePath string) (bool, error) {
	info, err := fs.Stat(fsys, filePath)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FileExists checks whether given file path exists on the local file system.
// A leading ~ is expanded to the home directory.
func FileExists(fpath string) (bool, error) {
	fpath, err := homedir.Expand(fpath)
	if err != nil {
		return false, err
	}
	dfs, fname, err := DirFS(fpath)
	if err != nil {
		return false, err
	}
	return FileExistsFS(dfs, fname)
}

// FindFilesOnPaths returns the paths of the files with the given name
// in the given directories, in directory order. Absolute names are
// returned as is if the file exists. Errors accessing a directory are
// logged and the directory is skipped.
func FindFilesOnPaths(paths []string, file string) []string {
	if filepath.IsAbs(file) {
		if ok, _ := FileExists(file); ok {
			return []string{file}
		}
		return nil
	}
	var res []string
	for _, dir := range paths {
		dir, err := homedir.Expand(dir)
		if errors.Log(err) != nil {
			continue
		}
		fp := filepath.Join(dir, file)
		ok, err := FileExists(fp)
		if errors.Log(err) != nil || !ok {
			continue
		}
		res = append(res, fp)
	}
	return res
}

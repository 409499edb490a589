// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config provides scan config for cppdeps.
//
// A config file is a Starlark file that sets some of the following
// globals.
//
//	recursive = True
//	with_external = False
//	excludes = ["out/**", "third_party/**/test"]
//	jobs = 8
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
)

// DefaultFilename is the config filename looked up in the scan root.
const DefaultFilename = ".cppdeps.star"

// Config is a scan config.
type Config struct {
	// Recursive scans subdirectories.
	Recursive bool

	// WithExternal includes files not found under the root in the order.
	WithExternal bool

	// Excludes are glob patterns of root relative paths to skip.
	Excludes []string

	// Jobs is the number of files scanned concurrently.
	// 0 means runtime.NumCPU().
	Jobs int
}

// Default returns default config.
func Default() Config {
	return Config{
		Recursive: true,
	}
}

// Find returns the config file in root, or "" if there is none.
func Find(root string) (string, error) {
	fname := filepath.Join(root, DefaultFilename)
	_, err := os.Stat(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fname, nil
}

// Load loads config file fname on top of base.
// Globals not set in fname keep values in base.
func Load(ctx context.Context, fname string, base Config) (Config, error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return base, err
	}
	return Parse(ctx, fname, buf, base)
}

// Parse parses config in buf on top of base.
func Parse(ctx context.Context, fname string, buf []byte, base Config) (Config, error) {
	thread := &starlark.Thread{
		Name: "config",
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
	}
	globals, err := starlark.ExecFile(thread, fname, buf, nil)
	if err != nil {
		log.Warnf("thread:%s failed to exec file %s: %v", thread.Name, fname, err)
		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			log.Warnf("stacktrace:\n%s", eerr.Backtrace())
		}
		return base, err
	}
	cfg := base
	for name, v := range globals {
		switch name {
		case "recursive":
			cfg.Recursive, err = toBool(name, v)
		case "with_external":
			cfg.WithExternal, err = toBool(name, v)
		case "jobs":
			cfg.Jobs, err = toInt(name, v)
		case "excludes":
			cfg.Excludes, err = toStrings(name, v)
		default:
			log.Debugf("config %s: ignore global %s", fname, name)
		}
		if err != nil {
			return base, fmt.Errorf("%s: %w", fname, err)
		}
	}
	log.Debugf("config %s: %#v", fname, cfg)
	return cfg, nil
}

func toBool(name string, v starlark.Value) (bool, error) {
	b, ok := v.(starlark.Bool)
	if !ok {
		return false, fmt.Errorf("%s must be bool, but %s", name, v.Type())
	}
	return bool(b), nil
}

func toInt(name string, v starlark.Value) (int, error) {
	var i int
	err := starlark.AsInt(v, &i)
	if err != nil {
		return 0, fmt.Errorf("%s must be int: %w", name, err)
	}
	if i < 0 {
		return 0, fmt.Errorf("%s must not be negative, but %d", name, i)
	}
	return i, nil
}

func toStrings(name string, v starlark.Value) ([]string, error) {
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("%s must be list of strings, but %s", name, v.Type())
	}
	var values []string
	iter := iterable.Iterate()
	defer iter.Done()
	var elem starlark.Value
	for iter.Next(&elem) {
		s, ok := starlark.AsString(elem)
		if !ok {
			return nil, fmt.Errorf("%s must be list of strings, but has %s", name, elem.Type())
		}
		values = append(values, s)
	}
	return values, nil
}

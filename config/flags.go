// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"context"
	"flag"
	"strings"

	"github.com/charmbracelet/log"
)

// Flags are command line flags for scan config.
// Flags set on the command line take precedence over the config file.
type Flags struct {
	Dir        string
	ConfigFile string

	cfg      Config
	excludes string
	flagSet  *flag.FlagSet
}

// RegisterFlags registers flags on the flagSet.
func (f *Flags) RegisterFlags(flagSet *flag.FlagSet) {
	def := Default()
	f.flagSet = flagSet
	flagSet.StringVar(&f.Dir, "C", ".", "source directory to scan")
	flagSet.StringVar(&f.ConfigFile, "config", "", "config file. default to <dir>/"+DefaultFilename+" if exists")
	flagSet.BoolVar(&f.cfg.Recursive, "r", def.Recursive, "scan subdirectories")
	flagSet.BoolVar(&f.cfg.WithExternal, "external", def.WithExternal, "include files not found in <dir> (e.g. system headers)")
	flagSet.StringVar(&f.excludes, "exclude", "", "comma separated glob patterns of <dir> relative paths to skip")
	flagSet.IntVar(&f.cfg.Jobs, "j", def.Jobs, "number of files scanned concurrently. 0 means number of CPUs")
}

// Config returns config from the config file and flags.
func (f *Flags) Config(ctx context.Context) (Config, error) {
	fname := f.ConfigFile
	if fname == "" {
		var err error
		fname, err = Find(f.Dir)
		if err != nil {
			return Config{}, err
		}
	}
	cfg := Default()
	if fname != "" {
		log.Infof("load config %s", fname)
		var err error
		cfg, err = Load(ctx, fname, cfg)
		if err != nil {
			return Config{}, err
		}
	}
	set := map[string]bool{}
	if f.flagSet != nil {
		f.flagSet.Visit(func(fl *flag.Flag) {
			set[fl.Name] = true
		})
	}
	if set["r"] {
		cfg.Recursive = f.cfg.Recursive
	}
	if set["external"] {
		cfg.WithExternal = f.cfg.WithExternal
	}
	if set["j"] {
		cfg.Jobs = f.cfg.Jobs
	}
	if set["exclude"] {
		cfg.Excludes = nil
		for _, pat := range strings.Split(f.excludes, ",") {
			pat = strings.TrimSpace(pat)
			if pat != "" {
				cfg.Excludes = append(cfg.Excludes, pat)
			}
		}
	}
	return cfg, nil
}

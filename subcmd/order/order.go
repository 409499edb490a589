// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package order is order subcommand to print include order of a source tree.
package order

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/cppdeps/config"
	"go.chromium.org/infra/build/cppdeps/depgraph"
	"go.chromium.org/infra/build/cppdeps/forest"
	"go.chromium.org/infra/build/cppdeps/o11y/clog"
)

const usage = `print include order

 $ cppdeps order -C <dir> [-external] [-format text|json] [-o <file>]

prints C/C++ source and header files in <dir> in include order,
i.e. a file is printed after all files it includes.
Files are identified by file name, so files with the same name
in different directories are treated as one file.

With -external, files included but not found in <dir> (e.g. <vector>)
are printed first as <key>.

If -o <file> ends with .zst, output is compressed with zstd.

It fails if there are circular includes.
`

// Cmd returns the Command for the `order` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "order [-C <dir>] [-external] [-format text|json] [-o <file>]",
		ShortDesc: "print include order",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	flags  config.Flags
	format string
	output string
	strict bool
}

func (c *run) init() {
	c.flags.RegisterFlags(&c.Flags)
	c.Flags.StringVar(&c.format, "format", "text", `output format. "text" or "json"`)
	c.Flags.StringVar(&c.output, "o", "", "output filename. default to stdout")
	c.Flags.BoolVar(&c.strict, "strict", false, "fail if some files or includes could not be processed")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments %q: %w", args, flag.ErrHelp)
	}
	switch c.format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q: %w", c.format, flag.ErrHelp)
	}
	cfg, err := c.flags.Config(ctx)
	if err != nil {
		return err
	}
	f, err := Scan(ctx, c.flags.Dir, cfg)
	if err != nil {
		return err
	}
	if c.strict {
		err = f.Err()
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", c.flags.Dir, err)
		}
	}
	nodes, err := f.IncludeOrder(cfg.WithExternal)
	if err != nil {
		var cerr *depgraph.CycleError[*forest.Node]
		if errors.As(err, &cerr) {
			return fmt.Errorf("circular includes in %s: %w", c.flags.Dir, err)
		}
		return err
	}
	if c.output == "" {
		return Write(os.Stdout, nodes, c.format)
	}
	return WriteFile(c.output, nodes, c.format)
}

// Scan fills a forest from dir with cfg.
// Diagnostics are logged as warnings.
func Scan(ctx context.Context, dir string, cfg config.Config) (*forest.Forest, error) {
	scanID := uuid.New().String()
	ctx = clog.NewSpan(ctx, scanID, nil)
	started := time.Now()
	f := forest.New(forest.Option{
		Jobs:     cfg.Jobs,
		Excludes: cfg.Excludes,
	})
	err := f.FillFromDirectory(ctx, dir, cfg.Recursive)
	if err != nil {
		return nil, err
	}
	for _, d := range f.Diagnostics() {
		log.Warnf("%v", d)
	}
	log.Infof("scan %s of %s: %d nodes, %d diagnostics in %s: %v", scanID, f.Root(), f.Len(), len(f.Diagnostics()), time.Since(started), f.IOStats())
	return f, nil
}

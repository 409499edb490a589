// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package query is query subcommand to query include graph of a source tree.
package query

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/cppdeps/config"
	"go.chromium.org/infra/build/cppdeps/forest"
	"go.chromium.org/infra/build/cppdeps/subcmd/order"
)

func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "query [-C <dir>] ...",
		ShortDesc: "query include graph",
		LongDesc:  "query include graph of C/C++ files.",
		CommandRun: func() subcommands.CommandRun {
			c := &run{
				app: &subcommands.DefaultApplication{
					Name:  "cppdeps query",
					Title: "tool to access include graph",
					Commands: []*subcommands.Command{
						cmdDigraph(),
						cmdNodes(),
						cmdUsedBy(),
						cmdUses(),
						subcommands.CmdHelp,
					},
				},
			}
			c.Flags.Usage = func() {
				subcommands.Usage(os.Stderr, c.app, true)
			}
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase
	app *subcommands.DefaultApplication
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	return subcommands.Run(c.app, args)
}

// scanRun is a base of query subcommands that scan a source tree.
type scanRun struct {
	subcommands.CommandRunBase

	flags config.Flags
	w     io.Writer
}

func (c *scanRun) init() {
	c.flags.RegisterFlags(&c.Flags)
	c.w = os.Stdout
}

// exec scans the source tree and runs fn on the forest.
func (c *scanRun) exec(a subcommands.Application, cmd subcommands.CommandRun, env subcommands.Env, usage string, args []string, fn func(context.Context, *forest.Forest, config.Config, []string) error) int {
	ctx := cli.GetContext(a, cmd, env)
	err := c.scan(ctx, args, fn)
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

func (c *scanRun) scan(ctx context.Context, args []string, fn func(context.Context, *forest.Forest, config.Config, []string) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

	cfg, err := c.flags.Config(ctx)
	if err != nil {
		return err
	}
	f, err := order.Scan(ctx, c.flags.Dir, cfg)
	if err != nil {
		return err
	}
	return fn(ctx, f, cfg, args)
}

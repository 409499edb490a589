// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package query

import (
	"bufio"
	"context"
	"flag"
	"fmt"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/cppdeps/config"
	"go.chromium.org/infra/build/cppdeps/forest"
	"go.chromium.org/infra/build/cppdeps/subcmd/order"
)

const usedByUsage = `show files that include the given files

 $ cppdeps query usedby -C <dir> [-all] <name>...

<name> is a file path or an include target, e.g. "foo/bar.h" or
"vector". Only the file name matters.

With -all, it shows files that include the given files transitively.
`

const usesUsage = `show files included by the given files

 $ cppdeps query uses -C <dir> [-all] <name>...

<name> is a file path or an include target, e.g. "foo/bar.cc".
Only the file name matters.

With -all, it shows files included by the given files transitively.
`

// cmdUsedBy returns the Command for the `usedby` subcommand provided by this package.
func cmdUsedBy() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "usedby [-C <dir>] [-all] <name>...",
		ShortDesc: "show files that include the given files",
		LongDesc:  usedByUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &depsRun{
				usage: usedByUsage,
				next:  (*forest.Forest).Ancestors,
			}
			c.init()
			return c
		},
	}
}

// cmdUses returns the Command for the `uses` subcommand provided by this package.
func cmdUses() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "uses [-C <dir>] [-all] <name>...",
		ShortDesc: "show files included by the given files",
		LongDesc:  usesUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &depsRun{
				usage: usesUsage,
				next:  (*forest.Forest).Children,
			}
			c.init()
			return c
		},
	}
}

type depsRun struct {
	scanRun

	usage string
	next  func(*forest.Forest, *forest.Node) []*forest.Node
	all   bool
}

func (c *depsRun) init() {
	c.scanRun.init()
	c.Flags.BoolVar(&c.all, "all", false, "follow includes transitively")
}

func (c *depsRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	return c.exec(a, c, env, c.usage, args, c.run)
}

func (c *depsRun) run(ctx context.Context, f *forest.Forest, cfg config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no names given: %w", flag.ErrHelp)
	}
	nodes, err := reach(f, args, c.all, c.next)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(c.w)
	for _, n := range nodes {
		fmt.Fprintln(w, order.Line(n))
	}
	return w.Flush()
}

// reach returns nodes reachable from names by next, in breadth first
// order. Nodes for names are not included unless reachable.
// If all is false, only nodes directly reachable are returned.
func reach(f *forest.Forest, names []string, all bool, next func(*forest.Forest, *forest.Node) []*forest.Node) ([]*forest.Node, error) {
	var queue []*forest.Node
	for _, name := range names {
		n, err := f.Lookup(name)
		if err != nil {
			return nil, err
		}
		queue = append(queue, n)
	}
	seen := make(map[*forest.Node]bool)
	var nodes []*forest.Node
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, m := range next(f, n) {
			if seen[m] {
				continue
			}
			seen[m] = true
			nodes = append(nodes, m)
			if all {
				queue = append(queue, m)
			}
		}
	}
	return nodes, nil
}

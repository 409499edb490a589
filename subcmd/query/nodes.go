// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package query

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/cppdeps/config"
	"go.chromium.org/infra/build/cppdeps/forest"
	"go.chromium.org/infra/build/cppdeps/subcmd/order"
)

const nodesUsage = `show all nodes

 $ cppdeps query nodes -C <dir> [-format text|json]

prints all nodes in the order they are found.

----
<key>	<path>|<external>	<#uses>	<#used_by>
----
`

// cmdNodes returns the Command for the `nodes` subcommand provided by this package.
func cmdNodes() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "nodes [-C <dir>] [-format text|json]",
		ShortDesc: "show all nodes",
		LongDesc:  nodesUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &nodesRun{}
			c.init()
			return c
		},
	}
}

type nodesRun struct {
	scanRun
	format string
}

func (c *nodesRun) init() {
	c.scanRun.init()
	c.Flags.StringVar(&c.format, "format", order.FormatText, `output format. "text" or "json"`)
}

func (c *nodesRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	return c.exec(a, c, env, nodesUsage, args, c.run)
}

func (c *nodesRun) run(ctx context.Context, f *forest.Forest, cfg config.Config, args []string) error {
	if c.format != order.FormatText {
		return order.Write(c.w, f.Nodes(), c.format)
	}
	tw := tabwriter.NewWriter(c.w, 0, 8, 1, ' ', 0)
	for _, n := range f.Nodes() {
		p, ok := n.Path()
		if !ok {
			p = "<external>"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", n.Key(), p, len(n.Uses()), len(n.UsedBy()))
	}
	return tw.Flush()
}

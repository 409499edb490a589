// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package query

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/cppdeps/config"
	"go.chromium.org/infra/build/cppdeps/forest"
)

const digraphUsage = `show digraph

 $ cppdeps query digraph -C <dir> [<name>...]

prints directed graph of includes for <name>s.
If <name> is not given, it will print directed graph of all files.
Each line contains one or more node keys, and the first node includes
the rest of the nodes on the same line.

This output can be passed to digraph command, installed by
 $ go install golang.org/x/tools/cmd/digraph@latest

See https://pkg.go.dev/golang.org/x/tools/cmd/digraph
for digraph command.
`

// cmdDigraph returns the Command for the `digraph` subcommand provided by this package.
func cmdDigraph() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "digraph [-C <dir>] [<name>...]",
		ShortDesc: "show digraph",
		LongDesc:  digraphUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &digraphRun{}
			c.init()
			return c
		},
	}
}

type digraphRun struct {
	scanRun
}

func (c *digraphRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	return c.exec(a, c, env, digraphUsage, args, c.run)
}

func (c *digraphRun) run(ctx context.Context, f *forest.Forest, cfg config.Config, args []string) error {
	w := bufio.NewWriter(c.w)
	d := &digraph{
		w:    w,
		seen: make(map[*forest.Node]bool),
	}
	if len(args) == 0 {
		for _, n := range f.Nodes() {
			d.traverse(f, n)
		}
		return w.Flush()
	}
	for _, name := range args {
		n, err := f.Lookup(name)
		if err != nil {
			return err
		}
		d.traverse(f, n)
	}
	return w.Flush()
}

type digraph struct {
	w    io.Writer
	seen map[*forest.Node]bool
}

// traverse prints n after all nodes included by n.
func (d *digraph) traverse(f *forest.Forest, n *forest.Node) {
	if d.seen[n] {
		return
	}
	d.seen[n] = true
	uses := n.Uses()
	if len(uses) == 0 {
		fmt.Fprintf(d.w, "%s\n", n.Key())
		return
	}
	for _, m := range f.Children(n) {
		d.traverse(f, m)
	}
	fmt.Fprintf(d.w, "%s %s\n", n.Key(), strings.Join(uses, " "))
}

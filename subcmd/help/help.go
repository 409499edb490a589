// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package help provides help subcommand.
package help

import (
	"flag"
	"fmt"
	"io"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/cppdeps/config"
)

const configHelp = `Config file:
  Commands scanning a source tree read <dir>/` + config.DefaultFilename + ` if exists,
  or the file given by -config. It is a Starlark file that may set
    recursive = True
    with_external = False
    excludes = ["out/**"]
    jobs = 8
  Flags given on the command line take precedence.
`

// Cmd returns the Command for the `help` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "help [<command>|-advanced]",
		ShortDesc: "prints help about a command",
		LongDesc:  "Prints commands, config file and globally-available flags or help about a specific command.\nUse -advanced to display all commands.",
		CommandRun: func() subcommands.CommandRun {
			ret := &helpCmdRun{}
			ret.Flags.BoolVar(&ret.advanced, "advanced", false, "show advanced commands")
			return ret
		},
	}
}

type helpCmdRun struct {
	subcommands.CommandRunBase
	advanced bool
}

func (h *helpCmdRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	// For top-level help, print subcommands.Usage. Then print config and flags.
	if len(args) == 0 {
		printUsage(a.GetOut(), a, h.advanced, flag.CommandLine)
		return 0
	}

	// Use default subcommands.CmdHelp for all other cases.
	helpInit := subcommands.CmdHelp.CommandRun()
	return helpInit.Run(a, args, env)
}

func printUsage(w io.Writer, a subcommands.Application, advanced bool, flagSet *flag.FlagSet) {
	subcommands.Usage(w, a, advanced)
	fmt.Fprint(w, configHelp)
	fmt.Fprintln(w, "\nCommon flags accepted by all commands:")
	out := flagSet.Output()
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
	flagSet.SetOutput(out)
}

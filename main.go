// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	log "github.com/golang/glog"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/cppdeps/o11y/clog"
	"go.chromium.org/infra/build/cppdeps/subcmd/help"
	"go.chromium.org/infra/build/cppdeps/subcmd/order"
	"go.chromium.org/infra/build/cppdeps/subcmd/query"
	"go.chromium.org/infra/build/cppdeps/subcmd/version"
)

// Cppdeps prints include order of C/C++ files.

const versionID = "cppdeps v1.0.0"

func getApplication(logger *clog.Logger) *cli.Application {
	return &cli.Application{
		Name:  "cppdeps",
		Title: "C/C++ include dependency tool",
		Context: func(ctx context.Context) context.Context {
			return clog.NewContext(ctx, logger)
		},
		Commands: []*subcommands.Command{
			order.Cmd(),
			query.Cmd(),
			version.Cmd(versionID),
			help.Cmd(),
		},
	}
}

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(out, "\nsubcommands:\n")
		subcommands.Usage(out, getApplication(clog.New()), false)
	}

	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(cppdepsMain(flag.Args()))
}

func cppdepsMain(args []string) int {
	// Flush the log on exit to not lose any messages.
	logger := clog.New()
	defer logger.Close()

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	// Print build information to the log.
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Infof("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
		if log.V(1) {
			for _, m := range buildinfo.Deps {
				log.Infof("deps module: %s", moduleInfo(m))
			}
			for _, bs := range buildinfo.Settings {
				log.Infof("build %s=%s", bs.Key, bs.Value)
			}
		}
	}
	return subcommands.Run(getApplication(logger), args)
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}

// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package help

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/maruel/subcommands"
)

func TestPrintUsage(t *testing.T) {
	app := &subcommands.DefaultApplication{
		Name:     "cppdeps",
		Title:    "test app",
		Commands: []*subcommands.Command{Cmd()},
	}
	flagSet := flag.NewFlagSet("test", flag.ContinueOnError)
	flagSet.Int("v", 0, "log level for V logs")

	var buf bytes.Buffer
	printUsage(&buf, app, false, flagSet)
	got := buf.String()
	for _, want := range []string{
		"test app",
		"help",
		".cppdeps.star",
		"excludes = [",
		"Common flags accepted by all commands:",
		"log level for V logs",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("printUsage output %q; want to contain %q", got, want)
		}
	}
}

// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runtimex provides runtime information for sizing worker pools.
package runtimex

import (
	"runtime"
	"sync"
)

var numCPU = sync.OnceValue(func() int {
	n := getproccount()
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return n
})

// NumCPU returns the number of logical CPUs usable by the current process.
// On Windows, it counts CPUs in all processor groups, while
// runtime.NumCPU() only counts a single processor group (up to 64).
func NumCPU() int {
	return numCPU()
}

// Jobs returns the number of concurrent jobs for n.
// n <= 0 means NumCPU().
func Jobs(n int) int {
	if n <= 0 {
		return NumCPU()
	}
	return n
}

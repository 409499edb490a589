// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package iometrics manages I/O metrics of a source tree scan.
package iometrics

import (
	"fmt"
	"sync/atomic"
)

// IOMetrics holds I/O metrics.
// It is safe to update from multiple goroutines.
// A nil *IOMetrics ignores updates.
type IOMetrics struct {
	name string

	visits    atomic.Int64
	visitErrs atomic.Int64
	rOps      atomic.Int64
	rBytes    atomic.Int64
	rErrs     atomic.Int64
	includes  atomic.Int64
}

// New returns new iometrics for name.
func New(name string) *IOMetrics {
	return &IOMetrics{name: name}
}

// VisitDone counts when a directory entry is visited.
// err is an error to read the entry, e.g. unreadable directory.
func (m *IOMetrics) VisitDone(err error) {
	if m == nil {
		return
	}
	m.visits.Add(1)
	if err != nil {
		m.visitErrs.Add(1)
	}
}

// ReadDone counts when a file read is done.
// n is the number of bytes, and err is a read error.
func (m *IOMetrics) ReadDone(n int, err error) {
	if m == nil {
		return
	}
	m.rOps.Add(1)
	m.rBytes.Add(int64(n))
	if err != nil {
		m.rErrs.Add(1)
	}
}

// IncludesDone counts n include directives found in a file.
func (m *IOMetrics) IncludesDone(n int) {
	if m == nil {
		return
	}
	m.includes.Add(int64(n))
}

// Name returns the name of the iometrics.
func (m *IOMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats holds iometrics.
type Stats struct {
	// Number of visited directory entries.
	Visits int64
	// Number of errors to visit directory entries.
	VisitErrs int64

	// Number of read files.
	ROps int64
	// Number of read bytes.
	RBytes int64
	// Number of read errors.
	RErrs int64

	// Number of include directives.
	Includes int64
}

func (s Stats) String() string {
	return fmt.Sprintf("visits=%d(errs=%d) reads=%d(errs=%d) bytes=%d includes=%d", s.Visits, s.VisitErrs, s.ROps, s.RErrs, s.RBytes, s.Includes)
}

// Stats returns the snapshot of the iometrics.
func (m *IOMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		Visits:    m.visits.Load(),
		VisitErrs: m.visitErrs.Load(),
		ROps:      m.rOps.Load(),
		RBytes:    m.rBytes.Load(),
		RErrs:     m.rErrs.Load(),
		Includes:  m.includes.Load(),
	}
}

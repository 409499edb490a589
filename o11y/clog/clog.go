// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// It can store trace and arbitrary labels (e.g. scan root and scan id)
// to each context, and adds them to each log entry automatically.
//
// Entries are modeled as Cloud logging.Entry, and written with glog.
package clog

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/golang/glog"
)

type contextKeyType int

var contextKey contextKeyType

// DefaultFormatter formats an entry as "[trace k=v ...] payload".
// Labels are sorted by key.
func DefaultFormatter(e logging.Entry) string {
	if e.Trace == "" && len(e.Labels) == 0 {
		return fmt.Sprintf("%v", e.Payload)
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(e.Trace)
	for _, k := range slices.Sorted(maps.Keys(e.Labels)) {
		if sb.Len() > 1 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%s", k, e.Labels[k])
	}
	fmt.Fprintf(&sb, "] %v", e.Payload)
	return sb.String()
}

var defaultLogger = &Logger{Formatter: DefaultFormatter}

// New creates a new Logger.
func New() *Logger {
	return &Logger{
		Formatter: DefaultFormatter,
	}
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// NewSpan sets a sub logger with the trace and additional labels to the context.
func NewSpan(ctx context.Context, trace string, labels map[string]string) context.Context {
	return NewContext(ctx, FromContext(ctx).Span(trace, labels))
}

// FromContext returns a logger in the context, or default logger if
// it's not set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok || logger == nil {
		return defaultLogger
	}
	return logger
}

// Logger holds the trace and labels of the context.
type Logger struct {
	// Formatter is a formatter of the entry for glog.
	// Default to DefaultFormatter.
	Formatter func(e logging.Entry) string

	trace  string
	labels map[string]string
}

// Span returns a sub logger for the trace.
// labels are merged with the labels of l.
// If trace is empty, trace of l is used.
func (l *Logger) Span(trace string, labels map[string]string) *Logger {
	merged := maps.Clone(l.labels)
	if merged == nil {
		merged = make(map[string]string, len(labels))
	}
	maps.Copy(merged, labels)
	if trace == "" {
		trace = l.trace
	}
	return &Logger{
		Formatter: l.Formatter,
		trace:     trace,
		labels:    merged,
	}
}

func (l *Logger) log(e logging.Entry) {
	format := l.Formatter
	if format == nil {
		format = DefaultFormatter
	}
	msg := format(e)
	switch e.Severity {
	case logging.Info:
		glog.InfoDepth(2, msg)
	case logging.Warning:
		glog.WarningDepth(2, msg)
	case logging.Error:
		glog.ErrorDepth(2, msg)
	default:
		glog.InfoDepth(2, fmt.Sprintf("%s %s", e.Severity, msg))
	}
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Entry creates a new log entry for the given severity.
func (l *Logger) Entry(severity logging.Severity, payload any) logging.Entry {
	return logging.Entry{
		Timestamp: time.Now(),
		Severity:  severity,
		Payload:   payload,
		Labels:    l.labels,
		Trace:     l.trace,
	}
}

// Close flushes log entries.
func (l *Logger) Close() {
	glog.Flush()
}

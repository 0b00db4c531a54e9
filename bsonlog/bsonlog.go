// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonlog is a small, synchronous, verbosity-gated logger used
// for the handful of diagnostic events bsonkit ever needs to report: the
// ObjectID machine-id fallback chain, and derivation-time warnings (e.g.
// automatic-materialization picking a default handler). One mutex-guarded
// writer, a verbosity gate, a timestamp, the message — nothing more.
package bsonlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Verbosity levels, from always-emitted to debug-only.
const (
	Always = iota
	Info
	Debug
)

const timeFormat = "2006-01-02T15:04:05.000-0700"

type logger struct {
	mu        sync.Mutex
	writer    io.Writer
	verbosity int
}

var global = &logger{writer: os.Stderr}

// SetVerbosity sets the minimum verbosity level that will be emitted.
func SetVerbosity(level int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.verbosity = level
}

// SetWriter redirects log output; defaults to os.Stderr.
func SetWriter(w io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.writer = w
}

// Logf logs a formatted message if minVerb is at or below the configured
// verbosity.
func Logf(minVerb int, format string, args ...interface{}) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if minVerb > global.verbosity {
		return
	}
	fmt.Fprintf(global.writer, "%s\t%s\n", time.Now().Format(timeFormat), fmt.Sprintf(format, args...))
}

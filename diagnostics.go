// diagnostics.go: Advisory events raised while configuring a cipher.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package kryptos

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Diagnostic codes.
const (
	// DiagIVIgnored is raised when a password-based encryption receives an
	// explicit IV, which is replaced by the derived one.
	DiagIVIgnored = "IV_IGNORED"
)

// Diagnostic is an advisory event. It never aborts an operation.
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// DiagnosticSink receives diagnostics as they are raised. Sinks are called
// synchronously on the caller's goroutine.
type DiagnosticSink func(Diagnostic)

// newDiagnostic stamps a diagnostic with the cached clock.
func newDiagnostic(code, msg string) Diagnostic {
	return Diagnostic{Code: code, Message: msg, Time: timecache.CachedTime().UTC()}
}

// emit delivers d to sink when one is configured.
func (sink DiagnosticSink) emit(d Diagnostic) {
	if sink != nil {
		sink(d)
	}
}

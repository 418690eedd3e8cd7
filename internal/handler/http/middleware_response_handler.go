// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package http

import "net/http"

// responseWriter decorates [http.ResponseWriter] so the logging middleware
// can report the status code and body size of a finished response without
// buffering it.
//
// WriteHeader is forwarded to the underlying writer at most once; later
// calls are dropped, matching the standard library contract.
type responseWriter struct {
	http.ResponseWriter

	// status holds the code from the first WriteHeader call, zero before then.
	status int

	wroteHeader bool

	// size accumulates bytes written across all Write calls.
	size int

	// body references the slice passed to the most recent Write call only,
	// not a concatenation of all writes.
	body []byte
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the wrapped writer, implicitly sending a 200 status
// if WriteHeader has not run yet, and records the bytes written.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	w.body = b
	return n, err
}

/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logwarn implements the "Warning sink" collaborator named in the
// external-interfaces section of the spec: a leveled log line that never
// throws. The parser routes every warn-only condition (duplicate keys,
// deprecated boolean aliases, unknown options, primary-with-tags,
// max-staleness coercion) through a Sink instead of escalating to an error.
package logwarn

import (
	"github.com/hashicorp/go-uuid"
	"github.com/sirupsen/logrus"

	liberr "github.com/nabbar/mongouri/errors"
)

// Sink receives warnings. Implementations must never panic.
type Sink interface {
	Warn(code liberr.CodeError, msg string, fields map[string]interface{})
}

// Discard is a Sink that drops every warning; useful for callers that do
// not care about diagnostics (tests, one-shot CLI usage).
var Discard Sink = discard{}

type discard struct{}

func (discard) Warn(liberr.CodeError, string, map[string]interface{}) {}

// logrusSink is the default Sink, backed by a structured logrus logger. All
// warnings emitted during one Parse call share a correlation id so a
// downstream consumer (e.g. the topology reconciler) can group them.
type logrusSink struct {
	log  *logrus.Entry
	corr string
}

// New returns a Sink that logs through log, tagging every entry with a
// fresh correlation id and the original request text (if provided).
func New(log *logrus.Logger, raw string) Sink {
	if log == nil {
		log = logrus.StandardLogger()
	}

	corr, err := uuid.GenerateUUID()
	if err != nil {
		corr = "unavailable"
	}

	entry := log.WithField("correlation_id", corr)
	if raw != "" {
		entry = entry.WithField("uri", raw)
	}

	return &logrusSink{log: entry, corr: corr}
}

func (s *logrusSink) Warn(code liberr.CodeError, msg string, fields map[string]interface{}) {
	e := s.log.WithField("code", code.Uint16())
	for k, v := range fields {
		e = e.WithField(k, v)
	}
	e.Warn(msg)
}

// CorrelationID returns the correlation id this sink tags every warning
// with, or empty for sinks that don't support it.
func CorrelationID(s Sink) string {
	if ls, ok := s.(*logrusSink); ok {
		return ls.corr
	}
	return ""
}

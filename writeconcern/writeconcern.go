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

// Package writeconcern models the write-concern object assembled by C9 from
// safe/w/journal/wtimeoutMS.
package writeconcern

import (
	liberr "github.com/nabbar/mongouri/errors"
)

const (
	InvalidWriteConcern liberr.CodeError = liberr.MinPkgWriteconcern + iota + 1
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgWriteconcern, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case InvalidWriteConcern:
		return "invalid write concern"
	default:
		return liberr.UnknownMessage
	}
}

// Journal is the tri-state journal acknowledgement flag.
type Journal uint8

const (
	JournalUnset Journal = iota
	JournalFalse
	JournalTrue
)

// WKind identifies how the W field of a WriteConcern is populated.
type WKind uint8

const (
	WKindUnset WKind = iota
	WKindInt
	WKindMajority
	WKindTag
)

// WriteConcern is the derived write-concern object.
type WriteConcern struct {
	WKind      WKind
	WInt       int32
	WTag       string
	Journal    Journal
	WTimeoutMS int32
}

// AppliesTimeout reports whether WTimeoutMS is meaningful for this write
// concern (invariant 7 of the spec's data model: w<=1 makes wtimeoutMS
// meaningless; w>1, w=="majority" or a tag applies it when provided).
func (w WriteConcern) AppliesTimeout() bool {
	switch w.WKind {
	case WKindMajority, WKindTag:
		return true
	case WKindInt:
		return w.WInt > 1
	default:
		return false
	}
}

// Validate enforces the write-concern invariants: journal must not be
// required together with an acknowledgement level weaker than 1.
func (w WriteConcern) Validate() liberr.Error {
	if w.Journal == JournalTrue && w.WKind == WKindInt && w.WInt == 0 {
		return InvalidWriteConcern.Error(nil)
	}
	return nil
}

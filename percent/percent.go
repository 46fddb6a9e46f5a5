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

// Package percent decodes the %HH escapes used throughout the connection
// string grammar, preserving UTF-8 validity of both the input and the
// decoded output.
package percent

import (
	"unicode/utf8"

	liberr "github.com/nabbar/mongouri/errors"
)

const (
	InvalidPercentEscape liberr.CodeError = liberr.MinPkgPercent + iota + 1
	InvalidUtf8
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgPercent, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case InvalidPercentEscape:
		return "invalid percent-escape sequence"
	case InvalidUtf8:
		return "input is not valid utf-8"
	default:
		return liberr.UnknownMessage
	}
}

// Decode replaces every %HH escape in s with its decoded byte. s must be
// valid UTF-8 before decoding; the decoded result must be valid UTF-8 after
// decoding. Each escaped byte must be printable under the ASCII printable
// range or be part of a multi-byte UTF-8 sequence (byte >= 0x80); anything
// else is rejected as InvalidPercentEscape.
func Decode(s string) (string, liberr.Error) {
	if !utf8.ValidString(s) {
		return "", InvalidUtf8.Error(nil)
	}

	var (
		in  = []byte(s)
		out = make([]byte, 0, len(in))
		i   = 0
	)

	for i < len(in) {
		c := in[i]

		if c != '%' {
			out = append(out, c)
			i++
			continue
		}

		if i+2 >= len(in) {
			return "", InvalidPercentEscape.Error(nil)
		}

		hi, okHi := hexDigit(in[i+1])
		lo, okLo := hexDigit(in[i+2])

		if !okHi || !okLo {
			return "", InvalidPercentEscape.Error(nil)
		}

		v := hi<<4 | lo

		if !isPrintableByte(v) {
			return "", InvalidPercentEscape.Error(nil)
		}

		out = append(out, v)
		i += 3
	}

	if !utf8.Valid(out) {
		return "", InvalidUtf8.Error(nil)
	}

	return string(out), nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// isPrintableByte reports whether a decoded byte is acceptable: printable
// ASCII, or a continuation/lead byte of a multi-byte UTF-8 sequence (the
// overall UTF-8 validity of the output is re-checked by the caller).
func isPrintableByte(b byte) bool {
	if b >= 0x20 && b < 0x7f {
		return true
	}
	return b >= 0x80
}

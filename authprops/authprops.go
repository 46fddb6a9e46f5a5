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

// Package authprops parses the auth-mechanism-properties mini-language:
// "key:value(&key:value)*". Unlike tagset, pairs are separated by '&', not
// ',' -- this mirrors the connection string's own query-string separator so
// that authMechanismProperties can be handed a comma-bearing value (e.g. a
// SERVICE_REALM containing commas) without ambiguity.
package authprops

import (
	"strings"

	liberr "github.com/nabbar/mongouri/errors"
)

const (
	InvalidValue liberr.CodeError = liberr.MinPkgAuthprops + iota + 1
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgAuthprops, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case InvalidValue:
		return "malformed auth-mechanism properties"
	default:
		return liberr.UnknownMessage
	}
}

// Parse parses an auth-mechanism-properties string into a key/value map.
// The map does not keep the order in which the properties appeared.
func Parse(s string) (map[string]string, liberr.Error) {
	out := make(map[string]string)

	if s == "" {
		return out, nil
	}

	for _, part := range strings.Split(s, "&") {
		if part == "" {
			return nil, InvalidValue.Error(nil)
		}

		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			return nil, InvalidValue.Error(nil)
		}

		out[kv[0]] = kv[1]
	}

	return out, nil
}

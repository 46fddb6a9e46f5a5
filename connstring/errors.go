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

package connstring

import (
	liberr "github.com/nabbar/mongouri/errors"
)

const (
	InvalidScheme liberr.CodeError = liberr.MinPkgConnstring + iota + 1
	InvalidUserInfo
	UnexpectedDelimiter
	InvalidDatabase
	InvalidValue
	UnknownOption
	InvalidAuthCombination
	InvalidTopologyOptions
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgConnstring, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case InvalidScheme:
		return "invalid or missing mongodb:// scheme"
	case InvalidUserInfo:
		return "invalid userinfo"
	case UnexpectedDelimiter:
		return "unexpected delimiter between hosts and database"
	case InvalidDatabase:
		return "invalid database name"
	case InvalidValue:
		return "invalid option value"
	case UnknownOption:
		return "unknown option"
	case InvalidAuthCombination:
		return "invalid auth mechanism / auth source combination"
	case InvalidTopologyOptions:
		return "loadBalanced is incompatible with directConnection, replicaSet, or multiple hosts"
	default:
		return liberr.UnknownMessage
	}
}

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

// Package registry holds the frozen, case-insensitive classification of
// every connection-string option key recognized by this module.
package registry

import (
	"strings"

	"golang.org/x/text/cases"
)

// Class identifies how the option parser must treat a given key's value.
type Class int

const (
	ClassUnknown Class = iota
	ClassInt32
	ClassBool
	ClassUTF8
	ClassW
	ClassTagSet
	ClassAuthMechanism
	ClassAuthSource
	ClassAuthProps
	ClassReadConcernLevel
	ClassAppName
)

func (c Class) String() string {
	switch c {
	case ClassInt32:
		return "int32"
	case ClassBool:
		return "bool"
	case ClassUTF8:
		return "utf8"
	case ClassW:
		return "w"
	case ClassTagSet:
		return "tagset"
	case ClassAuthMechanism:
		return "authMechanism"
	case ClassAuthSource:
		return "authSource"
	case ClassAuthProps:
		return "authMechanismProperties"
	case ClassReadConcernLevel:
		return "readConcernLevel"
	case ClassAppName:
		return "appname"
	default:
		return "unknown"
	}
}

var fold = cases.Fold()

var classes = map[string]Class{
	// int32
	"connecttimeoutms":        ClassInt32,
	"heartbeatfrequencyms":    ClassInt32,
	"serverselectiontimeoutms": ClassInt32,
	"socketcheckintervalms":   ClassInt32,
	"sockettimeoutms":         ClassInt32,
	"localthresholdms":        ClassInt32,
	"maxpoolsize":             ClassInt32,
	"maxstalenessseconds":     ClassInt32,
	"minpoolsize":             ClassInt32,
	"maxidletimems":           ClassInt32,
	"waitqueuemultiple":       ClassInt32,
	"waitqueuetimeoutms":      ClassInt32,
	"wtimeoutms":              ClassInt32,
	"zlibcompressionlevel":    ClassInt32,

	// bool
	"canonicalizehostname":       ClassBool,
	"journal":                    ClassBool,
	"safe":                       ClassBool,
	"serverselectiontryonce":     ClassBool,
	"slaveok":                    ClassBool,
	"ssl":                        ClassBool,
	"sslallowinvalidcertificates": ClassBool,
	"sslallowinvalidhostnames":   ClassBool,
	"retrywrites":                ClassBool,
	"retryreads":                 ClassBool,
	"directconnection":           ClassBool,
	"loadbalanced":               ClassBool,

	// utf8
	"appname":                         ClassAppName,
	"gssapiservicename":               ClassUTF8,
	"replicaset":                      ClassUTF8,
	"readpreference":                  ClassUTF8,
	"sslclientcertificatekeyfile":     ClassUTF8,
	"sslclientcertificatekeypassword": ClassUTF8,
	"sslcertificateauthorityfile":     ClassUTF8,
	"compressors":                     ClassUTF8,

	// routed to credentials
	"authmechanism":           ClassAuthMechanism,
	"authsource":               ClassAuthSource,
	"authmechanismproperties": ClassAuthProps,

	// special
	"w":                  ClassW,
	"readpreferencetags": ClassTagSet,
	"readconcernlevel":   ClassReadConcernLevel,
}

// Lookup classifies key, case-insensitively. Unknown keys return
// ClassUnknown; the caller must treat that as warn-and-drop, not fatal.
func Lookup(key string) Class {
	c, ok := classes[fold.String(strings.ToLower(key))]
	if !ok {
		return ClassUnknown
	}
	return c
}

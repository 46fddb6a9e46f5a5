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

// Package hostlist builds the ordered Endpoint sequence from the host
// section of a connection string: comma-separated DNS/IPv4 host:port pairs,
// bracketed IPv6 literals, and UNIX socket paths.
package hostlist

import (
	"fmt"
	"strconv"
	"strings"

	liberr "github.com/nabbar/mongouri/errors"
	"github.com/nabbar/mongouri/logwarn"
	"github.com/nabbar/mongouri/percent"

	"golang.org/x/net/idna"
)

const (
	InvalidHostSyntax liberr.CodeError = liberr.MinPkgHostlist + iota + 1
	InvalidPort
	HostnameTooLong
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgHostlist, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case InvalidHostSyntax:
		return "invalid host syntax"
	case InvalidPort:
		return "invalid port"
	case HostnameTooLong:
		return "hostname exceeds 255 bytes"
	default:
		return liberr.UnknownMessage
	}
}

// Family classifies how an Endpoint's Host field should be interpreted.
type Family int

const (
	FamilyDNS Family = iota
	FamilyIPv6
	FamilyUnix
)

func (f Family) String() string {
	switch f {
	case FamilyIPv6:
		return "ipv6"
	case FamilyUnix:
		return "unix"
	default:
		return "dns"
	}
}

const (
	DefaultPort   uint16 = 27017
	MaxHostLen           = 255
	MaxDisplayLen         = 286
	sockSuffix            = ".sock"
)

// Endpoint is one potential server address.
type Endpoint struct {
	Host   string
	Port   uint16
	Family Family
}

// Display returns the canonical host:port / [addr]:port / raw-path form.
func (e Endpoint) Display() string {
	switch e.Family {
	case FamilyUnix:
		return e.Host
	case FamilyIPv6:
		return fmt.Sprintf("[%s]:%d", e.Host, e.Port)
	default:
		return fmt.Sprintf("%s:%d", e.Host, e.Port)
	}
}

// SplitSection locates the boundary between the host section of a
// connection string and whatever follows it (an optional database name
// and/or query string beginning with '/' or '?'), given the text
// immediately after the scheme and optional userinfo.
//
// The split cannot simply stop at the first unescaped '/' or '?': a UNIX
// socket path is itself introduced by a '/' and commonly contains further
// '/' characters before its mandatory ".sock" suffix. Mirroring the
// original driver's host-scanning loop, an entry beginning with '/' is
// only closed at its ".sock" suffix -- and only when that suffix occurs
// before the next ',' or '?', which is what distinguishes "this is a
// socket path" from "the host section ended and a database segment that
// happens not to contain .sock follows".
func SplitSection(s string) (hosts string, rest string) {
	str := s

	for {
		switch {
		case strings.HasPrefix(str, "/"):
			sockIdx := strings.Index(str, sockSuffix)
			if sockIdx < 0 {
				return s[:len(s)-len(str)], str
			}
			comma := strings.IndexByte(str, ',')
			q := strings.IndexByte(str, '?')
			if (comma >= 0 && comma < sockIdx) || (q >= 0 && q < sockIdx) {
				return s[:len(s)-len(str)], str
			}
			str = str[sockIdx+len(sockSuffix):]
			if strings.HasPrefix(str, ",") {
				str = str[1:]
				continue
			}
			return s[:len(s)-len(str)], str

		case strings.HasPrefix(str, "["):
			closeIdx := strings.IndexByte(str, ']')
			if closeIdx < 0 {
				return s[:len(s)-len(str)], str
			}
			str = str[closeIdx+1:]
			if strings.HasPrefix(str, ":") {
				j := 1
				for j < len(str) && str[j] >= '0' && str[j] <= '9' {
					j++
				}
				str = str[j:]
			}
			if strings.HasPrefix(str, ",") {
				str = str[1:]
				continue
			}
			return s[:len(s)-len(str)], str

		default:
			idx := strings.IndexAny(str, "/?,")
			if idx < 0 {
				return s, ""
			}
			if str[idx] == ',' {
				str = str[idx+1:]
				continue
			}
			str = str[idx:]
			return s[:len(s)-len(str)], str
		}
	}
}

// Build parses the host section (the text between an optional userinfo '@'
// and the '/' or '?' or end that terminates it) into an ordered, non-empty
// Endpoint slice. Hosts are not deduplicated; relative order is preserved.
func Build(s string, warn logwarn.Sink) ([]Endpoint, liberr.Error) {
	if warn == nil {
		warn = logwarn.Discard
	}

	if s == "" {
		return nil, InvalidHostSyntax.Error(nil)
	}

	var (
		endpoints []Endpoint
		seen      = make(map[string]bool)
		rest      = s
	)

	for {
		var (
			raw  string
			next string
		)

		if strings.HasPrefix(rest, "[") {
			closeIdx := strings.IndexByte(rest, ']')
			if closeIdx < 0 {
				return nil, InvalidHostSyntax.Error(nil)
			}
			tail := rest[closeIdx+1:]
			commaIdx := strings.IndexByte(tail, ',')
			if commaIdx < 0 {
				raw, next = rest, ""
			} else {
				raw, next = rest[:closeIdx+1+commaIdx], tail[commaIdx+1:]
			}
		} else if idx := sockEndIndex(rest); idx >= 0 {
			if idx+1 < len(rest) && rest[idx+1] == ',' {
				raw, next = rest[:idx+1], rest[idx+2:]
			} else {
				raw, next = rest[:idx+1], ""
			}
		} else {
			commaIdx := strings.IndexByte(rest, ',')
			if commaIdx < 0 {
				raw, next = rest, ""
			} else {
				raw, next = rest[:commaIdx], rest[commaIdx+1:]
			}
		}

		ep, err := parseEndpoint(raw)
		if err != nil {
			return nil, err
		}

		key := strings.ToLower(ep.Display())
		if seen[key] {
			warn.Warn(InvalidHostSyntax, fmt.Sprintf("duplicate host entry %q", ep.Display()), nil)
		}
		seen[key] = true

		endpoints = append(endpoints, ep)

		if next == "" {
			break
		}
		rest = next
	}

	if len(endpoints) == 0 {
		return nil, InvalidHostSyntax.Error(nil)
	}

	return endpoints, nil
}

// sockEndIndex returns the index of the last byte of a ".sock" suffix if
// rest's first path-looking endpoint contains one, or -1.
func sockEndIndex(rest string) int {
	idx := strings.Index(rest, sockSuffix)
	if idx < 0 {
		return -1
	}
	end := idx + len(sockSuffix) - 1

	// reject if a comma appears before the suffix ends (the suffix belongs
	// to a later endpoint, not this one)
	if c := strings.IndexByte(rest[:end+1], ','); c >= 0 {
		return -1
	}

	return end
}

func parseEndpoint(raw string) (Endpoint, liberr.Error) {
	switch {
	case strings.HasPrefix(raw, "["):
		return parseIPv6(raw)
	case strings.HasSuffix(raw, sockSuffix):
		return parseUnix(raw)
	default:
		return parseHostPort(raw)
	}
}

func parseIPv6(raw string) (Endpoint, liberr.Error) {
	closeIdx := strings.IndexByte(raw, ']')
	if closeIdx < 0 || !strings.HasPrefix(raw, "[") {
		return Endpoint{}, InvalidHostSyntax.Error(nil)
	}

	addr := raw[1:closeIdx]
	if addr == "" {
		return Endpoint{}, InvalidHostSyntax.Error(nil)
	}

	tail := raw[closeIdx+1:]
	port := DefaultPort

	if tail != "" {
		if !strings.HasPrefix(tail, ":") {
			return Endpoint{}, InvalidHostSyntax.Error(nil)
		}
		p, err := parsePort(tail[1:])
		if err != nil {
			return Endpoint{}, err
		}
		port = p
	}

	return Endpoint{Host: strings.ToLower(addr), Port: port, Family: FamilyIPv6}, nil
}

func parseUnix(raw string) (Endpoint, liberr.Error) {
	decoded, err := percent.Decode(raw)
	if err != nil {
		return Endpoint{}, err
	}

	if len(decoded) > MaxDisplayLen {
		return Endpoint{}, HostnameTooLong.Error(nil)
	}

	return Endpoint{Host: decoded, Port: 0, Family: FamilyUnix}, nil
}

func parseHostPort(raw string) (Endpoint, liberr.Error) {
	if raw == "" {
		return Endpoint{}, InvalidHostSyntax.Error(nil)
	}

	var (
		host = raw
		port = DefaultPort
	)

	if idx := strings.LastIndexByte(raw, ':'); idx >= 0 {
		host = raw[:idx]
		p, err := parsePort(raw[idx+1:])
		if err != nil {
			return Endpoint{}, err
		}
		port = p
	}

	if host == "" {
		return Endpoint{}, InvalidHostSyntax.Error(nil)
	}

	decoded, perr := percent.Decode(host)
	if perr != nil {
		return Endpoint{}, perr
	}

	decoded = strings.ToLower(decoded)

	if ascii, idnaErr := idna.Lookup.ToASCII(decoded); idnaErr == nil {
		decoded = strings.ToLower(ascii)
	}

	if len(decoded) > MaxHostLen {
		return Endpoint{}, HostnameTooLong.Error(nil)
	}

	return Endpoint{Host: decoded, Port: port, Family: FamilyDNS}, nil
}

func parsePort(s string) (uint16, liberr.Error) {
	if s == "" {
		return 0, InvalidPort.Error(nil)
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n < 1 || n > 65535 {
		return 0, InvalidPort.Error(nil)
	}

	return uint16(n), nil
}

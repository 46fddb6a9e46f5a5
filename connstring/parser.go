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
	"fmt"
	"strconv"
	"strings"

	"github.com/nabbar/mongouri/authprops"
	"github.com/nabbar/mongouri/docmap"
	liberr "github.com/nabbar/mongouri/errors"
	"github.com/nabbar/mongouri/hostlist"
	"github.com/nabbar/mongouri/logwarn"
	"github.com/nabbar/mongouri/percent"
	"github.com/nabbar/mongouri/registry"
	"github.com/nabbar/mongouri/scan"
	"github.com/nabbar/mongouri/tagset"

	"golang.org/x/text/width"
)

const scheme = "mongodb://"

// Parse implements the top-level state machine (scheme, userinfo, hosts,
// database, options) and runs finalization before returning. warn may be
// nil, in which case warnings are silently dropped.
func Parse(text string, warn logwarn.Sink) (*Configuration, liberr.Error) {
	if warn == nil {
		warn = logwarn.Discard
	}

	if !strings.HasPrefix(text, scheme) {
		return nil, InvalidScheme.Error(nil)
	}

	cfg := newConfiguration(text, warn)
	rest := text[len(scheme):]

	userinfo, rest, hasUserinfo := splitUserinfo(rest)
	if hasUserinfo {
		if err := applyUserinfo(cfg, userinfo); err != nil {
			return nil, err
		}
	}

	hostsPart, tail := hostlist.SplitSection(rest)

	hosts, herr := hostlist.Build(hostsPart, warn)
	if herr != nil {
		return nil, herr
	}
	cfg.hosts = hosts

	if tail != "" && !strings.HasPrefix(tail, "/") {
		return nil, UnexpectedDelimiter.Error(nil)
	}

	var optsPart string
	if strings.HasPrefix(tail, "/") {
		afterSlash := tail[1:]
		dbPart, _, afterDb, hasOpts := scan.UntilAny(afterSlash, scan.NewSet('?'))
		if hasOpts {
			optsPart = afterDb
		} else {
			dbPart = afterSlash
		}

		if dbPart != "" {
			db, derr := percent.Decode(dbPart)
			if derr != nil {
				return nil, InvalidDatabase.Error(derr.GetError())
			}
			if !validDatabaseName(db) {
				return nil, InvalidDatabase.Error(nil)
			}
			cfg.database = db
		}
	}

	if err := parseOptions(cfg, optsPart, warn); err != nil {
		return nil, err
	}

	if err := finalize(cfg, warn); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitUserinfo splits off an optional "user[:pass]@" prefix. Absence of an
// unescaped '@' before the first '/' or '?' means there is no userinfo at
// all -- that is not an error, just an empty host section prefix.
func splitUserinfo(rest string) (userinfo string, remainder string, ok bool) {
	prefix, hit, tail, found := scan.UntilAny(rest, scan.NewSet('@', '/', '?'))
	if !found || hit != '@' {
		return "", rest, false
	}
	return prefix, tail, true
}

func applyUserinfo(cfg *Configuration, userinfo string) liberr.Error {
	var (
		rawUser = userinfo
		rawPass string
		hasPass bool
	)

	if u, p, found := scan.Until(userinfo, ':', nil); found {
		rawUser, rawPass, hasPass = u, p, true
	}

	user, err := percent.Decode(rawUser)
	if err != nil {
		return InvalidUserInfo.Error(err.GetError())
	}
	if user == "" {
		return InvalidUserInfo.Error(nil)
	}

	cfg.username = user
	cfg.hasUser = true

	if hasPass {
		pass, perr := percent.Decode(rawPass)
		if perr != nil {
			return InvalidUserInfo.Error(perr.GetError())
		}
		cfg.password = []byte(pass)
		cfg.hasPass = true
	}

	return nil
}

// validDatabaseName rejects the characters MongoDB forbids in a database
// name: none of these can round-trip through every supported storage
// engine's filesystem representation.
func validDatabaseName(db string) bool {
	return !strings.ContainsAny(db, "/\\. \"$*<>:|?")
}

// parseOptions implements C5: split the query string on '&', classify each
// key via the registry, and route the decoded value to the right document.
// An int32 option whose value is not an integer, or a bool option whose
// value is not an accepted literal, aborts the whole parse with
// InvalidValue. Malformed pairs, undecodable keys or values, malformed tag
// sets or auth-mechanism properties, and unknown keys are warnings only.
func parseOptions(cfg *Configuration, q string, warn logwarn.Sink) liberr.Error {
	if q == "" {
		return nil
	}

	for _, pair := range strings.Split(q, "&") {
		if pair == "" {
			continue
		}

		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			warn.Warn(UnknownOption, fmt.Sprintf("malformed option pair %q", pair), nil)
			continue
		}

		rawKey, rawVal := kv[0], kv[1]

		key, kerr := percent.Decode(rawKey)
		if kerr != nil {
			warn.Warn(InvalidValue, fmt.Sprintf("option key %q is not valid", rawKey), nil)
			continue
		}

		val, verr := percent.Decode(rawVal)
		if verr != nil {
			warn.Warn(InvalidValue, fmt.Sprintf("value for option %q is not valid", key), nil)
			continue
		}

		if err := applyOption(cfg, key, val, warn); err != nil {
			return err
		}
	}

	return nil
}

func applyOption(cfg *Configuration, key, val string, warn logwarn.Sink) liberr.Error {
	class := registry.Lookup(key)
	lkey := strings.ToLower(key)

	switch class {
	case registry.ClassInt32:
		// fold fullwidth digits (U+FF10-FF19), sometimes pasted in from
		// locale-aware tools, down to ASCII before parsing.
		n, err := strconv.ParseInt(width.Fold.String(val), 10, 32)
		if err != nil {
			return InvalidValue.Error(err)
		}
		if replaced := cfg.options.Set(lkey, docmap.Int32(int32(n))); replaced {
			warn.Warn(UnknownOption, fmt.Sprintf("duplicate option %q, keeping last value", key), nil)
		}

	case registry.ClassBool, registry.ClassW:
		if class == registry.ClassW {
			setW(cfg, val, warn)
			return nil
		}
		b, deprecated, ok := parseBool(val)
		if !ok {
			return InvalidValue.Error(nil)
		}
		if deprecated {
			warn.Warn(UnknownOption, fmt.Sprintf("option %q uses a deprecated boolean alias %q", key, val), nil)
		}
		if replaced := cfg.options.Set(lkey, docmap.Bool(b)); replaced {
			warn.Warn(UnknownOption, fmt.Sprintf("duplicate option %q, keeping last value", key), nil)
		}

	case registry.ClassUTF8, registry.ClassAppName, registry.ClassReadConcernLevel:
		if replaced := cfg.options.Set(lkey, docmap.Text(val)); replaced {
			warn.Warn(UnknownOption, fmt.Sprintf("duplicate option %q, keeping last value", key), nil)
		}

	case registry.ClassTagSet:
		tags, terr := tagset.Parse(val)
		if terr != nil {
			warn.Warn(InvalidValue, fmt.Sprintf("malformed %s %q", key, val), nil)
			return nil
		}
		cfg.options.AppendSeq(lkey, tags)

	case registry.ClassAuthMechanism, registry.ClassAuthSource:
		if replaced := cfg.credentials.Set(lkey, docmap.Text(val)); replaced {
			warn.Warn(UnknownOption, fmt.Sprintf("duplicate option %q, keeping last value", key), nil)
		}

	case registry.ClassAuthProps:
		props, aerr := authprops.Parse(val)
		if aerr != nil {
			warn.Warn(InvalidValue, fmt.Sprintf("malformed %s %q", key, val), nil)
			return nil
		}
		cfg.credentials.Set(lkey, docmap.SubDoc(props))

	default:
		warn.Warn(UnknownOption, fmt.Sprintf("unrecognized option %q, ignoring", key), nil)
	}

	return nil
}

// setW stores the w option: an integer acknowledgement count, or a free-text
// tag ("majority" or a custom getLastErrorMode name). Assembly into a
// writeconcern.WriteConcern happens in finalize.
func setW(cfg *Configuration, val string, warn logwarn.Sink) {
	if n, err := strconv.ParseInt(width.Fold.String(val), 10, 32); err == nil {
		if n < 0 {
			warn.Warn(InvalidValue, fmt.Sprintf("option \"w\" must not be negative, got %q", val), nil)
			return
		}
		if replaced := cfg.options.Set("w", docmap.Int32(int32(n))); replaced {
			warn.Warn(UnknownOption, "duplicate option \"w\", keeping last value", nil)
		}
		return
	}

	if replaced := cfg.options.Set("w", docmap.Text(val)); replaced {
		warn.Warn(UnknownOption, "duplicate option \"w\", keeping last value", nil)
	}
}

// parseBool accepts the canonical "true"/"false" plus the deprecated
// "1"/"yes"/"y"/"t" and "0"/"-1"/"no"/"n"/"f" aliases the original driver
// still tolerates.
func parseBool(val string) (value bool, deprecated bool, ok bool) {
	switch strings.ToLower(val) {
	case "true":
		return true, false, true
	case "false":
		return false, false, true
	case "1", "yes", "y", "t":
		return true, true, true
	case "0", "-1", "no", "n", "f":
		return false, true, true
	default:
		return false, false, false
	}
}

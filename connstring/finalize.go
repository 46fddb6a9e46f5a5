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
	"strings"

	"github.com/nabbar/mongouri/defaults"
	"github.com/nabbar/mongouri/docmap"
	liberr "github.com/nabbar/mongouri/errors"
	"github.com/nabbar/mongouri/logwarn"
	"github.com/nabbar/mongouri/readconcern"
	"github.com/nabbar/mongouri/readpref"
	"github.com/nabbar/mongouri/writeconcern"
)

// finalize implements C9: it derives ReadPref, ReadConcern, and WriteConcern
// from the raw option document, coerces auth source for mechanisms that
// mandate one, and rejects combinations that cannot be reconciled into a
// single topology. Most individually malformed values are warned about and
// fixed up rather than rejected; an authSource that contradicts what
// GSSAPI/MONGODB-X509 require, and topology options that contradict
// loadBalanced, are structural and therefore fatal.
func finalize(cfg *Configuration, warn logwarn.Sink) liberr.Error {
	if err := finalizeAuthSource(cfg, warn); err != nil {
		return err
	}

	if err := finalizeTopology(cfg); err != nil {
		return err
	}

	finalizeReadPreference(cfg, warn)
	finalizeReadConcern(cfg)
	finalizeWriteConcern(cfg, warn)

	if cfg.rp != nil {
		if err := cfg.rp.Validate(); err != nil {
			return err
		}
	}
	if cfg.wc != nil {
		if err := cfg.wc.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// finalizeAuthSource implements spec step 1 / invariant 5: GSSAPI and
// MONGODB-X509 require authSource=$external. An absent authSource is filled
// in; an explicit authSource naming anything else is a fatal combination,
// not a warning -- it cannot be silently coerced without contradicting what
// the caller asked for.
func finalizeAuthSource(cfg *Configuration, _ logwarn.Sink) liberr.Error {
	mechVal, hasMech := cfg.credentials.Get("authmechanism")
	mech := ""
	if hasMech && mechVal.Kind == docmap.KindText {
		mech = strings.ToUpper(mechVal.Text)
	}

	sourceVal, hasSource := cfg.credentials.Get("authsource")

	switch mech {
	case "GSSAPI", "MONGODB-X509":
		if hasSource {
			if sourceVal.Kind != docmap.KindText || sourceVal.Text != "$external" {
				return InvalidAuthCombination.Error(nil)
			}
			return nil
		}
		cfg.credentials.Set("authsource", docmap.Text("$external"))
		return nil
	}

	if hasSource || !cfg.hasUser {
		return nil
	}

	if cfg.database != "" {
		cfg.credentials.Set("authsource", docmap.Text(cfg.database))
	} else {
		cfg.credentials.Set("authsource", docmap.Text("admin"))
	}

	return nil
}

// finalizeTopology enforces the supplemented invariant that loadBalanced
// cannot be combined with directConnection, a replicaSet name, or more than
// one host: each of those implies a topology loadBalanced already rules out.
func finalizeTopology(cfg *Configuration) liberr.Error {
	if !cfg.GetBool("loadbalanced", false) {
		return nil
	}

	if len(cfg.hosts) > 1 {
		return InvalidTopologyOptions.Error(nil)
	}
	if cfg.GetBool("directconnection", false) {
		return InvalidTopologyOptions.Error(nil)
	}
	if cfg.GetUTF8("replicaset", "") != "" {
		return InvalidTopologyOptions.Error(nil)
	}

	return nil
}

func finalizeReadPreference(cfg *Configuration, warn logwarn.Sink) {
	rp := &readpref.ReadPref{Mode: readpref.Primary, Staleness: readpref.NoneStaleness}

	if cfg.GetBool("slaveok", false) {
		rp.Mode = readpref.SecondaryPreferred
	}

	if raw, ok := cfg.options.Get("readpreference"); ok && raw.Kind == docmap.KindText {
		if mode, err := readpref.Parse(raw.Text); err == nil {
			rp.Mode = mode
		} else {
			warn.Warn(InvalidValue, "unrecognized readPreference "+raw.Text, nil)
		}
	}

	if raw, ok := cfg.options.Get("readpreferencetags"); ok && raw.Kind == docmap.KindSubDocSeq {
		rp.Tags = raw.SubSeq
		if rp.Mode == readpref.Primary {
			warn.Warn(UnknownOption, "readPreferenceTags has no effect with readPreference=primary", nil)
		}
	}

	if ms, ok := cfg.GetInt32Raw("maxstalenessseconds"); ok {
		switch {
		case ms == 0:
			warn.Warn(InvalidValue, "maxStalenessSeconds=0 is meaningless, treating as -1 (reset)", nil)
			rp.Staleness = readpref.Staleness{Set: true, Value: -1}
		case ms < 0 && ms != -1:
			warn.Warn(InvalidValue, "maxStalenessSeconds must be -1 or positive, ignoring", nil)
		default:
			rp.Staleness = readpref.Staleness{Set: true, Value: ms}
		}
	}

	cfg.rp = rp
}

func finalizeReadConcern(cfg *Configuration) {
	rc := &readconcern.ReadConcern{}
	if raw, ok := cfg.options.Get("readconcernlevel"); ok && raw.Kind == docmap.KindText {
		rc.SetLevel(raw.Text)
	}
	cfg.rc = rc
}

func finalizeWriteConcern(cfg *Configuration, warn logwarn.Sink) {
	wc := &writeconcern.WriteConcern{}

	if raw, ok := cfg.options.Get("w"); ok {
		switch raw.Kind {
		case docmap.KindInt32:
			wc.WKind = writeconcern.WKindInt
			wc.WInt = raw.Int32
		case docmap.KindText:
			if strings.EqualFold(raw.Text, "majority") {
				wc.WKind = writeconcern.WKindMajority
			} else {
				wc.WKind = writeconcern.WKindTag
				wc.WTag = raw.Text
			}
		}
	} else if safe, ok := cfg.options.Get("safe"); ok && safe.Kind == docmap.KindBool {
		wc.WKind = writeconcern.WKindInt
		if safe.Bool {
			wc.WInt = 1
		}
	}

	if j, ok := cfg.options.Get("journal"); ok && j.Kind == docmap.KindBool {
		if j.Bool {
			wc.Journal = writeconcern.JournalTrue
		} else {
			wc.Journal = writeconcern.JournalFalse
		}
	}

	if wc.Journal == writeconcern.JournalTrue && wc.WKind == writeconcern.WKindInt && wc.WInt == 0 {
		warn.Warn(UnknownOption, "journal=true conflicts with w=0, disabling journal requirement", nil)
		wc.Journal = writeconcern.JournalFalse
	}

	if wc.AppliesTimeout() {
		wc.WTimeoutMS = cfg.GetInt32("wtimeoutms", defaults.Standard.WTimeoutMS)
	} else if t, ok := cfg.GetInt32Raw("wtimeoutms"); ok && t > 0 {
		warn.Warn(UnknownOption, "wtimeoutMS has no effect when w<=1", nil)
	}

	cfg.wc = wc
}

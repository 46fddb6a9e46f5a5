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

// Package connstring is the public entry point of this module: Parse turns a
// mongodb:// connection string into a Configuration, routing every
// recoverable condition through a logwarn.Sink and every unrecoverable one
// through a liberr.Error built on this package's own error codes.
package connstring

import (
	"runtime"

	"github.com/nabbar/mongouri/docmap"
	"github.com/nabbar/mongouri/hostlist"
	"github.com/nabbar/mongouri/logwarn"
	"github.com/nabbar/mongouri/readconcern"
	"github.com/nabbar/mongouri/readpref"
	"github.com/nabbar/mongouri/writeconcern"
)

// Configuration is the fully parsed, optionally finalized connection string.
// It is not safe for concurrent modification; concurrent reads are fine.
type Configuration struct {
	raw string

	hosts []hostlist.Endpoint

	username string
	hasUser  bool

	password []byte
	hasPass  bool

	database string

	options     *docmap.Doc
	credentials *docmap.Doc

	rp *readpref.ReadPref
	rc *readconcern.ReadConcern
	wc *writeconcern.WriteConcern

	warn logwarn.Sink
}

func newConfiguration(raw string, warn logwarn.Sink) *Configuration {
	if warn == nil {
		warn = logwarn.Discard
	}

	return &Configuration{
		raw:         raw,
		options:     docmap.New(),
		credentials: docmap.New(),
		warn:        warn,
	}
}

// RawString returns the original, unmodified input text.
func (c *Configuration) RawString() string {
	return c.raw
}

// Hosts returns a copy of the ordered endpoint list; changing the returned
// slice does not affect c.
func (c *Configuration) Hosts() []hostlist.Endpoint {
	out := make([]hostlist.Endpoint, len(c.hosts))
	copy(out, c.hosts)
	return out
}

// Username returns the userinfo username and whether one was present.
func (c *Configuration) Username() (string, bool) {
	return c.username, c.hasUser
}

// Password returns a copy of the userinfo password and whether one was
// present. Callers that no longer need the value should overwrite the
// returned slice themselves; Destroy only wipes this Configuration's own
// copy.
func (c *Configuration) Password() ([]byte, bool) {
	if !c.hasPass {
		return nil, false
	}
	out := make([]byte, len(c.password))
	copy(out, c.password)
	return out, true
}

// Database returns the auth/default database named in the path segment.
func (c *Configuration) Database() string {
	return c.database
}

// Options returns the parsed, non-credential option document.
func (c *Configuration) Options() *docmap.Doc {
	return c.options
}

// Credentials returns the parsed authMechanism/authSource/authMechanismProperties document.
func (c *Configuration) Credentials() *docmap.Doc {
	return c.credentials
}

// ReadPreference returns the derived read preference, or nil if C9 has not
// run. Parse finalizes every Configuration it returns, so the value is
// non-nil for those and for their clones.
func (c *Configuration) ReadPreference() *readpref.ReadPref {
	return c.rp
}

// ReadConcern returns the derived read concern, or nil before finalization.
func (c *Configuration) ReadConcern() *readconcern.ReadConcern {
	return c.rc
}

// WriteConcern returns the derived write concern, or nil before finalization.
func (c *Configuration) WriteConcern() *writeconcern.WriteConcern {
	return c.wc
}

// SSL reports whether the ssl option was set, defaulting to false.
func (c *Configuration) SSL() bool {
	v, ok := c.options.Get("ssl")
	return ok && v.Kind == docmap.KindBool && v.Bool
}

// GetInt32 returns the int32 option named key, or fallback if the option is
// absent OR stored as the zero value. This is the spec's documented
// zero-as-absent accessor (design note, open question 1): most callers want
// "give me the effective value". Options where a stored 0 has a meaning of
// its own (maxStalenessSeconds) are read with GetInt32Raw instead.
func (c *Configuration) GetInt32(key string, fallback int32) int32 {
	v, ok := c.options.Get(key)
	if !ok || v.Kind != docmap.KindInt32 || v.Int32 == 0 {
		return fallback
	}
	return v.Int32
}

// GetInt32Raw returns the int32 option named key exactly as stored, with ok
// reporting whether it was present at all. Unlike GetInt32, a stored zero is
// returned as zero, not coerced to a fallback -- use this when the caller
// needs to distinguish "explicitly set to 0" from "absent".
func (c *Configuration) GetInt32Raw(key string) (value int32, ok bool) {
	v, present := c.options.Get(key)
	if !present || v.Kind != docmap.KindInt32 {
		return 0, false
	}
	return v.Int32, true
}

// GetBool returns the bool option named key, or fallback if absent.
func (c *Configuration) GetBool(key string, fallback bool) bool {
	v, ok := c.options.Get(key)
	if !ok || v.Kind != docmap.KindBool {
		return fallback
	}
	return v.Bool
}

// GetUTF8 returns the text option named key, or fallback if absent.
func (c *Configuration) GetUTF8(key string, fallback string) string {
	v, ok := c.options.Get(key)
	if !ok || v.Kind != docmap.KindText {
		return fallback
	}
	return v.Text
}

// SetInt32 sets an int32 option, replacing any prior value in place.
func (c *Configuration) SetInt32(key string, value int32) {
	c.options.Set(key, docmap.Int32(value))
}

// SetBool sets a bool option, replacing any prior value in place.
func (c *Configuration) SetBool(key string, value bool) {
	c.options.Set(key, docmap.Bool(value))
}

// SetUTF8 sets a text option, replacing any prior value in place.
func (c *Configuration) SetUTF8(key string, value string) {
	c.options.Set(key, docmap.Text(value))
}

// SetUsername overrides the userinfo username.
func (c *Configuration) SetUsername(u string) {
	c.username = u
	c.hasUser = true
}

// SetPassword overrides the userinfo password. The slice is copied; the
// caller keeps ownership of the one passed in.
func (c *Configuration) SetPassword(p []byte) {
	c.password = append([]byte(nil), p...)
	c.hasPass = true
}

// SetDatabase overrides the path-segment database name.
func (c *Configuration) SetDatabase(db string) {
	c.database = db
}

// SetAuthSource overrides the authSource credential.
func (c *Configuration) SetAuthSource(source string) {
	c.credentials.Set("authsource", docmap.Text(source))
}

// SetAppName overrides the appname option.
func (c *Configuration) SetAppName(name string) {
	c.options.Set("appname", docmap.Text(name))
}

// Clone returns a deep copy of c, including its own independent password
// buffer so Destroy on one copy never affects the other.
func (c *Configuration) Clone() *Configuration {
	n := &Configuration{
		raw:      c.raw,
		username: c.username,
		hasUser:  c.hasUser,
		database: c.database,
		hasPass:  c.hasPass,
		warn:     c.warn,
	}

	n.hosts = make([]hostlist.Endpoint, len(c.hosts))
	copy(n.hosts, c.hosts)

	if c.hasPass {
		n.password = append([]byte(nil), c.password...)
	}

	n.options = c.options.Clone()
	n.credentials = c.credentials.Clone()

	if c.rp != nil {
		rp := *c.rp
		rp.Tags = nil
		for _, t := range c.rp.Tags {
			m := make(map[string]string, len(t))
			for k, v := range t {
				m[k] = v
			}
			rp.Tags = append(rp.Tags, m)
		}
		n.rp = &rp
	}
	if c.rc != nil {
		rc := *c.rc
		n.rc = &rc
	}
	if c.wc != nil {
		wc := *c.wc
		n.wc = &wc
	}

	return n
}

// Destroy overwrites the stored password bytes with zeros. It must be called
// by anyone holding a Configuration once the credential is no longer needed;
// Go has no destructors, so this module cannot do it automatically. The
// explicit loop (rather than a `clear()` builtin call) combined with
// runtime.KeepAlive close enough to the last use discourages the compiler
// from eliding the zeroing as a dead store.
func (c *Configuration) Destroy() {
	for i := range c.password {
		c.password[i] = 0
	}
	runtime.KeepAlive(c.password)
	c.hasPass = false
}

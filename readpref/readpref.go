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

// Package readpref models the read-preference mode enum and the derived
// ReadPref object C9 assembles: mode, tag sets, and max-staleness.
//
// Mode follows the typed-enum idiom used throughout this codebase's sibling
// packages (see certificates/tlsversion): a small integer with Parse/String
// and JSON/YAML/TOML/Text marshaling.
package readpref

import (
	"encoding/json"
	"strings"

	liberr "github.com/nabbar/mongouri/errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

const (
	InvalidReadPreference liberr.CodeError = liberr.MinPkgReadpref + iota + 1
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgReadpref, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case InvalidReadPreference:
		return "invalid read preference"
	default:
		return liberr.UnknownMessage
	}
}

// Mode is a read-preference mode.
type Mode uint8

const (
	Primary Mode = iota
	PrimaryPreferred
	Secondary
	SecondaryPreferred
	Nearest
)

func (m Mode) String() string {
	switch m {
	case Primary:
		return "primary"
	case PrimaryPreferred:
		return "primaryPreferred"
	case Secondary:
		return "secondary"
	case SecondaryPreferred:
		return "secondaryPreferred"
	case Nearest:
		return "nearest"
	default:
		return "primary"
	}
}

// Parse resolves a mode name case-insensitively.
func Parse(s string) (Mode, liberr.Error) {
	switch strings.ToLower(s) {
	case "primary":
		return Primary, nil
	case "primarypreferred":
		return PrimaryPreferred, nil
	case "secondary":
		return Secondary, nil
	case "secondarypreferred":
		return SecondaryPreferred, nil
	case "nearest":
		return Nearest, nil
	default:
		return Primary, InvalidReadPreference.Error(nil)
	}
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	v, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) MarshalTOML() ([]byte, error) {
	return toml.Marshal(m.String())
}

func (m Mode) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(m.String())
}

func (m *Mode) UnmarshalCBOR(b []byte) error {
	var s string
	if err := cbor.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Staleness is the max-staleness tri-state: absent, reset (-1), or a
// positive number of seconds.
type Staleness struct {
	Set   bool
	Value int32
}

// NoneStaleness is the absent value; the reset value is
// Staleness{Set: true, Value: -1}.
var NoneStaleness = Staleness{Set: false}

// ReadPref is the derived read-preference object assembled by C9.
type ReadPref struct {
	Mode      Mode
	Tags      []map[string]string
	Staleness Staleness
}

// Validate enforces the tag-shape / max-staleness consistency invariant
// (spec §4.9 step 5): a positive staleness value must be greater than zero,
// and only secondaryPreferred/secondary/nearest may sensibly carry tags --
// carrying tags under primary is a warning, not a validation failure, and is
// therefore not checked here.
func (r ReadPref) Validate() liberr.Error {
	if r.Staleness.Set && r.Staleness.Value != -1 && r.Staleness.Value <= 0 {
		return InvalidReadPreference.Error(nil)
	}
	return nil
}

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

// Package docmap implements the ordered, case-insensitive typed document
// used for both the Options and Credentials sections of a Configuration. A
// duplicate key replaces the existing entry's value in place, leaving its
// original insertion index untouched; every other entry keeps its order.
//
// Values are a tagged sum rather than a single dynamic-document type: a
// scalar int32, bool, or text value, a single sub-document (auth-mechanism
// properties), or a sequence of sub-documents (the repeatable
// readPreferenceTags list).
package docmap

import "strings"

// Kind identifies which field of Value is populated.
type Kind int

const (
	KindInt32 Kind = iota
	KindBool
	KindText
	KindSubDoc
	KindSubDocSeq
)

// Value is a tagged union over the option/credential value types the
// connection-string grammar produces.
type Value struct {
	Kind   Kind
	Int32  int32
	Bool   bool
	Text   string
	Sub    map[string]string
	SubSeq []map[string]string
}

func Int32(v int32) Value { return Value{Kind: KindInt32, Int32: v} }
func Bool(v bool) Value   { return Value{Kind: KindBool, Bool: v} }
func Text(v string) Value { return Value{Kind: KindText, Text: v} }
func SubDoc(v map[string]string) Value {
	return Value{Kind: KindSubDoc, Sub: v}
}

func (v Value) clone() Value {
	c := v
	if v.Sub != nil {
		c.Sub = make(map[string]string, len(v.Sub))
		for k, x := range v.Sub {
			c.Sub[k] = x
		}
	}
	if v.SubSeq != nil {
		c.SubSeq = make([]map[string]string, len(v.SubSeq))
		for i, s := range v.SubSeq {
			m := make(map[string]string, len(s))
			for k, x := range s {
				m[k] = x
			}
			c.SubSeq[i] = m
		}
	}
	return c
}

type entry struct {
	key string
	val Value
}

// Doc is the ordered, case-insensitive key/Value document.
type Doc struct {
	entries []entry
	index   map[string]int
}

// New returns an empty Doc ready for use.
func New() *Doc {
	return &Doc{index: make(map[string]int)}
}

// Set inserts or replaces key (case-insensitive) with val. It reports
// whether an existing entry was replaced; on replace, the key's original
// insertion index is preserved.
func (d *Doc) Set(key string, val Value) (replaced bool) {
	k := strings.ToLower(key)

	if i, ok := d.index[k]; ok {
		d.entries[i].val = val
		return true
	}

	d.index[k] = len(d.entries)
	d.entries = append(d.entries, entry{key: k, val: val})
	return false
}

// AppendSeq appends one more sub-document to a KindSubDocSeq entry,
// creating the entry on first use. This is the only operation that does not
// follow replace-in-place semantics, matching the deliberate
// readPreferenceTags exception to the duplicate-key rule (spec open
// question 2).
func (d *Doc) AppendSeq(key string, sub map[string]string) {
	k := strings.ToLower(key)

	if i, ok := d.index[k]; ok {
		d.entries[i].val.SubSeq = append(d.entries[i].val.SubSeq, sub)
		return
	}

	d.index[k] = len(d.entries)
	d.entries = append(d.entries, entry{key: k, val: Value{Kind: KindSubDocSeq, SubSeq: []map[string]string{sub}}})
}

// Get looks up key case-insensitively.
func (d *Doc) Get(key string) (Value, bool) {
	i, ok := d.index[strings.ToLower(key)]
	if !ok {
		return Value{}, false
	}
	return d.entries[i].val, true
}

// Has reports whether key is present, case-insensitively.
func (d *Doc) Has(key string) bool {
	_, ok := d.index[strings.ToLower(key)]
	return ok
}

// Keys returns the canonical lowercase keys in insertion order.
func (d *Doc) Keys() []string {
	r := make([]string, len(d.entries))
	for i, e := range d.entries {
		r[i] = e.key
	}
	return r
}

// Len returns the number of entries.
func (d *Doc) Len() int {
	return len(d.entries)
}

// Clone returns a deep copy of d.
func (d *Doc) Clone() *Doc {
	c := &Doc{
		entries: make([]entry, len(d.entries)),
		index:   make(map[string]int, len(d.index)),
	}

	for i, e := range d.entries {
		c.entries[i] = entry{key: e.key, val: e.val.clone()}
	}
	for k, i := range d.index {
		c.index[k] = i
	}

	return c
}

// Equal reports whether d and o contain the same keys (case-insensitively)
// mapped to equal values, regardless of insertion order.
func (d *Doc) Equal(o *Doc) bool {
	if d.Len() != o.Len() {
		return false
	}

	for _, k := range d.Keys() {
		a, _ := d.Get(k)
		b, ok := o.Get(k)
		if !ok || !valueEqual(a, b) {
			return false
		}
	}

	return true
}

func valueEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindInt32:
		return a.Int32 == b.Int32
	case KindBool:
		return a.Bool == b.Bool
	case KindText:
		return a.Text == b.Text
	case KindSubDoc:
		return mapEqual(a.Sub, b.Sub)
	case KindSubDocSeq:
		if len(a.SubSeq) != len(b.SubSeq) {
			return false
		}
		for i := range a.SubSeq {
			if !mapEqual(a.SubSeq[i], b.SubSeq[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func mapEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

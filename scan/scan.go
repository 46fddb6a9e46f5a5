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

// Package scan provides a Unicode-aware, left-to-right lexical primitive used
// by the connection-string grammar: scan a prefix up to a target codepoint,
// honoring backslash escapes and a set of ASCII codepoints that abort the
// scan early ("inhibitors").
package scan

// Set is a small set of ASCII inhibitor codepoints. Inhibitors are never
// multibyte: only runes below 0x80 are meaningful members.
type Set map[rune]bool

// NewSet builds an inhibitor Set from the given runes.
func NewSet(runes ...rune) Set {
	s := make(Set, len(runes))
	for _, r := range runes {
		s[r] = true
	}
	return s
}

func (s Set) has(r rune) bool {
	if s == nil {
		return false
	}
	return s[r]
}

// Until scans input left to right for the first unescaped, uninhibited
// occurrence of match. A backslash advances past the next codepoint
// unconditionally, so an escaped match or inhibitor never terminates the
// scan early. It returns the prefix before match and the remainder after
// match. If match is not found before an inhibitor or the end of input, ok
// is false and prefix/rest are empty -- the scan never returns a partial
// result past the point of failure.
func Until(input string, match rune, inhibit Set) (prefix string, rest string, ok bool) {
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		r := runes[i]

		if r == '\\' {
			i++
			if i < len(runes) {
				i++
			}
			continue
		}

		if r == match {
			return string(runes[:i]), string(runes[i+1:]), true
		}

		if inhibit.has(r) {
			return "", "", false
		}

		i++
	}

	return "", "", false
}

// UntilAny behaves like Until but stops at the first unescaped occurrence of
// any rune in matches, returning which one matched.
func UntilAny(input string, matches Set) (prefix string, hit rune, rest string, ok bool) {
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		r := runes[i]

		if r == '\\' {
			i++
			if i < len(runes) {
				i++
			}
			continue
		}

		if matches.has(r) {
			return string(runes[:i]), r, string(runes[i+1:]), true
		}

		i++
	}

	return "", 0, "", false
}

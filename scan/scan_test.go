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

package scan_test

import (
	"github.com/nabbar/mongouri/scan"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Until", func() {
	It("returns the prefix before the match", func() {
		prefix, rest, ok := scan.Until("host/db", '/', nil)
		Expect(ok).To(BeTrue())
		Expect(prefix).To(Equal("host"))
		Expect(rest).To(Equal("db"))
	})

	It("treats a backslash as skipping the next codepoint", func() {
		prefix, rest, ok := scan.Until(`a\/b/c`, '/', nil)
		Expect(ok).To(BeTrue())
		Expect(prefix).To(Equal(`a\/b`))
		Expect(rest).To(Equal("c"))
	})

	It("returns not-found when the match never appears", func() {
		_, _, ok := scan.Until("nohit", '/', nil)
		Expect(ok).To(BeFalse())
	})

	It("aborts early on an inhibitor", func() {
		inhibit := scan.NewSet('@')
		_, _, ok := scan.Until("a@b/c", '/', inhibit)
		Expect(ok).To(BeFalse())
	})

	It("does not abort on an escaped inhibitor", func() {
		inhibit := scan.NewSet('@')
		prefix, rest, ok := scan.Until(`a\@b/c`, '/', inhibit)
		Expect(ok).To(BeTrue())
		Expect(prefix).To(Equal(`a\@b`))
		Expect(rest).To(Equal("c"))
	})
})

var _ = Describe("UntilAny", func() {
	It("reports which delimiter matched first", func() {
		prefix, hit, rest, ok := scan.UntilAny("db?opts", scan.NewSet('/', '?'))
		Expect(ok).To(BeTrue())
		Expect(prefix).To(Equal("db"))
		Expect(hit).To(Equal('?'))
		Expect(rest).To(Equal("opts"))
	})
})

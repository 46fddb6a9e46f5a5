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

package tagset_test

import (
	"github.com/nabbar/mongouri/tagset"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	It("returns an empty map for an empty string", func() {
		m, err := tagset.Parse("")
		Expect(err).To(BeNil())
		Expect(m).To(BeEmpty())
	})

	It("parses a multi-key tag set", func() {
		m, err := tagset.Parse("dc:ny,rack:1")
		Expect(err).To(BeNil())
		Expect(m).To(Equal(map[string]string{"dc": "ny", "rack": "1"}))
	})

	It("rejects a key with a missing value", func() {
		_, err := tagset.Parse("dc:")
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(tagset.InvalidValue)).To(BeTrue())
	})

	It("rejects a stray token", func() {
		_, err := tagset.Parse("dc:ny,,rack:1")
		Expect(err).ToNot(BeNil())
	})
})

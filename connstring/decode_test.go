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

package connstring_test

import (
	"github.com/nabbar/mongouri/connstring"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decode", func() {
	It("populates a Settings struct from the option document", func() {
		cfg, err := connstring.Parse(
			"mongodb://localhost/?maxPoolSize=50&appName=billing-worker&ssl=true", nil)
		Expect(err).To(BeNil())

		var s connstring.Settings
		Expect(cfg.Decode(&s)).To(BeNil())
		Expect(s.MaxPoolSize).To(Equal(int32(50)))
		Expect(s.AppName).To(Equal("billing-worker"))
		Expect(s.SSL).To(BeTrue())

		Expect(connstring.Validate(&s)).To(BeNil())
	})

	It("rejects a Settings struct with an out-of-range zlibCompressionLevel", func() {
		cfg, err := connstring.Parse("mongodb://localhost/?zlibCompressionLevel=42", nil)
		Expect(err).To(BeNil())

		var s connstring.Settings
		Expect(cfg.Decode(&s)).To(BeNil())
		Expect(connstring.Validate(&s)).ToNot(BeNil())
	})
})

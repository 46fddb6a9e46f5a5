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
	"github.com/nabbar/mongouri/writeconcern"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("finalize", func() {
	It("downgrades journal=true when w=0 instead of failing the whole parse", func() {
		cfg, err := connstring.Parse("mongodb://localhost/?journal=true&w=0", nil)
		Expect(err).To(BeNil())
		Expect(cfg.WriteConcern().Journal).To(Equal(writeconcern.JournalFalse))
	})

	It("sets the read concern level from readConcernLevel", func() {
		cfg, err := connstring.Parse("mongodb://localhost/?readConcernLevel=majority", nil)
		Expect(err).To(BeNil())
		Expect(cfg.ReadConcern().IsSet()).To(BeTrue())
		Expect(cfg.ReadConcern().Level).To(Equal("majority"))
	})

	It("leaves read concern unset when no level is given", func() {
		cfg, err := connstring.Parse("mongodb://localhost", nil)
		Expect(err).To(BeNil())
		Expect(cfg.ReadConcern().IsSet()).To(BeFalse())
	})
})

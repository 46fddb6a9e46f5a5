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

package errors_test

import (
	goErr "errors"

	liberr "github.com/nabbar/mongouri/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testCode liberr.CodeError = liberr.MinPkgConnstring + 1

var _ = Describe("errors", func() {
	It("carries a code", func() {
		e := testCode.Error(nil)
		Expect(e.Code()).To(Equal(testCode.Uint16()))
	})

	It("chains parent errors", func() {
		root := goErr.New("socket closed")
		e := testCode.Error(root)
		Expect(e.HasParent()).To(BeTrue())
		Expect(e.ContainsString("socket closed")).To(BeTrue())
	})

	It("IsCode matches errors with the same code", func() {
		a := testCode.Error(nil)
		b := testCode.Error(nil)
		Expect(a.IsCode(testCode)).To(BeTrue())
		Expect(liberr.IsCode(b, testCode)).To(BeTrue())
	})

	It("Make wraps a plain error without losing its message", func() {
		wrapped := liberr.Make(goErr.New("boom"))
		Expect(wrapped.StringError()).To(Equal("boom"))
	})
})

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

package writeconcern_test

import (
	"github.com/nabbar/mongouri/writeconcern"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WriteConcern", func() {
	It("does not apply the timeout when w<=1", func() {
		wc := writeconcern.WriteConcern{WKind: writeconcern.WKindInt, WInt: 1, WTimeoutMS: 2000}
		Expect(wc.AppliesTimeout()).To(BeFalse())
	})

	It("applies the timeout when w is majority", func() {
		wc := writeconcern.WriteConcern{WKind: writeconcern.WKindMajority, WTimeoutMS: 2000}
		Expect(wc.AppliesTimeout()).To(BeTrue())
	})

	It("applies the timeout when w>1", func() {
		wc := writeconcern.WriteConcern{WKind: writeconcern.WKindInt, WInt: 3, WTimeoutMS: 2000}
		Expect(wc.AppliesTimeout()).To(BeTrue())
	})
})

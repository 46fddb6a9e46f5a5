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

package registry_test

import (
	"github.com/nabbar/mongouri/registry"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Lookup", func() {
	It("classifies int32 options case-insensitively", func() {
		Expect(registry.Lookup("ConnectTimeoutMS")).To(Equal(registry.ClassInt32))
	})

	It("classifies bool options", func() {
		Expect(registry.Lookup("ssl")).To(Equal(registry.ClassBool))
	})

	It("routes auth keys to their dedicated classes", func() {
		Expect(registry.Lookup("authMechanism")).To(Equal(registry.ClassAuthMechanism))
		Expect(registry.Lookup("authSource")).To(Equal(registry.ClassAuthSource))
		Expect(registry.Lookup("authMechanismProperties")).To(Equal(registry.ClassAuthProps))
	})

	It("classifies w as a special class", func() {
		Expect(registry.Lookup("w")).To(Equal(registry.ClassW))
	})

	It("returns ClassUnknown for unrecognized keys", func() {
		Expect(registry.Lookup("bogusOption")).To(Equal(registry.ClassUnknown))
	})
})

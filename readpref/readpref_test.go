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

package readpref_test

import (
	"encoding/json"

	"github.com/nabbar/mongouri/readpref"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Mode", func() {
	It("parses case-insensitively", func() {
		m, err := readpref.Parse("Nearest")
		Expect(err).To(BeNil())
		Expect(m).To(Equal(readpref.Nearest))
	})

	It("rejects an unknown mode", func() {
		_, err := readpref.Parse("bogus")
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(readpref.InvalidReadPreference)).To(BeTrue())
	})

	It("round-trips through JSON", func() {
		b, err := json.Marshal(readpref.SecondaryPreferred)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`"secondaryPreferred"`))

		var m readpref.Mode
		Expect(json.Unmarshal(b, &m)).To(Succeed())
		Expect(m).To(Equal(readpref.SecondaryPreferred))
	})
})

var _ = Describe("ReadPref.Validate", func() {
	It("rejects a staleness of zero", func() {
		rp := readpref.ReadPref{Mode: readpref.Secondary, Staleness: readpref.Staleness{Set: true, Value: 0}}
		Expect(rp.Validate()).ToNot(BeNil())
	})

	It("accepts the reset sentinel -1", func() {
		rp := readpref.ReadPref{Mode: readpref.Secondary, Staleness: readpref.Staleness{Set: true, Value: -1}}
		Expect(rp.Validate()).To(BeNil())
	})
})

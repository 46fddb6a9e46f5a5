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

package hostlist_test

import (
	"github.com/nabbar/mongouri/hostlist"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Build", func() {
	It("applies the default port to a bare host", func() {
		eps, err := hostlist.Build("localhost", nil)
		Expect(err).To(BeNil())
		Expect(eps).To(HaveLen(1))
		Expect(eps[0].Host).To(Equal("localhost"))
		Expect(eps[0].Port).To(Equal(hostlist.DefaultPort))
		Expect(eps[0].Family).To(Equal(hostlist.FamilyDNS))
	})

	It("parses a mixed multi-host list preserving order", func() {
		eps, err := hostlist.Build("a,b:27018", nil)
		Expect(err).To(BeNil())
		Expect(eps).To(HaveLen(2))
		Expect(eps[0].Display()).To(Equal("a:27017"))
		Expect(eps[1].Display()).To(Equal("b:27018"))
	})

	It("parses a bracketed IPv6 literal with port", func() {
		eps, err := hostlist.Build("[::1]:1234", nil)
		Expect(err).To(BeNil())
		Expect(eps).To(HaveLen(1))
		Expect(eps[0].Family).To(Equal(hostlist.FamilyIPv6))
		Expect(eps[0].Port).To(Equal(uint16(1234)))
		Expect(eps[0].Display()).To(Equal("[::1]:1234"))
	})

	It("parses a UNIX socket path", func() {
		eps, err := hostlist.Build("/tmp/mongodb-27017.sock", nil)
		Expect(err).To(BeNil())
		Expect(eps).To(HaveLen(1))
		Expect(eps[0].Family).To(Equal(hostlist.FamilyUnix))
		Expect(eps[0].Display()).To(Equal("/tmp/mongodb-27017.sock"))
	})

	It("rejects port 0", func() {
		_, err := hostlist.Build("h:0", nil)
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(hostlist.InvalidPort)).To(BeTrue())
	})

	It("rejects an empty host section", func() {
		_, err := hostlist.Build("", nil)
		Expect(err).ToNot(BeNil())
	})

	It("does not deduplicate textually identical hosts", func() {
		eps, err := hostlist.Build("a,a", nil)
		Expect(err).To(BeNil())
		Expect(eps).To(HaveLen(2))
	})
})

var _ = Describe("SplitSection", func() {
	It("stops at the first '/' for a plain host", func() {
		hosts, rest := hostlist.SplitSection("localhost/mydb")
		Expect(hosts).To(Equal("localhost"))
		Expect(rest).To(Equal("/mydb"))
	})

	It("stops at the first '?' when there is no database", func() {
		hosts, rest := hostlist.SplitSection("localhost?ssl=true")
		Expect(hosts).To(Equal("localhost"))
		Expect(rest).To(Equal("?ssl=true"))
	})

	It("consumes the whole string when there is no trailing section", func() {
		hosts, rest := hostlist.SplitSection("a,b:27018")
		Expect(hosts).To(Equal("a,b:27018"))
		Expect(rest).To(Equal(""))
	})

	It("treats a leading '/' followed by .sock as part of the host, not a delimiter", func() {
		hosts, rest := hostlist.SplitSection("/tmp/mongodb-27017.sock/mydb")
		Expect(hosts).To(Equal("/tmp/mongodb-27017.sock"))
		Expect(rest).To(Equal("/mydb"))
	})

	It("closes a socket entry at the .sock suffix even mid comma-list", func() {
		hosts, rest := hostlist.SplitSection("a,/tmp/x.sock,b/db")
		Expect(hosts).To(Equal("a,/tmp/x.sock,b"))
		Expect(rest).To(Equal("/db"))
	})

	It("does not treat a bare leading '/' with no .sock as part of the host", func() {
		hosts, rest := hostlist.SplitSection("/mydb?ssl=true")
		Expect(hosts).To(Equal(""))
		Expect(rest).To(Equal("/mydb?ssl=true"))
	})

	It("does not let a .sock past a later host's comma close the current entry", func() {
		hosts, rest := hostlist.SplitSection("/a,b.sock")
		Expect(hosts).To(Equal(""))
		Expect(rest).To(Equal("/a,b.sock"))
	})
})

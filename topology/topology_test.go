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

package topology_test

import (
	"github.com/nabbar/mongouri/connstring"
	"github.com/nabbar/mongouri/hostlist"
	"github.com/nabbar/mongouri/readpref"
	"github.com/nabbar/mongouri/topology"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Topology", func() {
	var (
		server0 = hostlist.Endpoint{Host: "server0", Port: 27017, Family: hostlist.FamilyDNS}
		server1 = hostlist.Endpoint{Host: "server1", Port: 27017, Family: hostlist.FamilyDNS}
	)

	It("discovers a peer reported by the seed and then drops it once the primary stops listing it", func() {
		cfg, err := connstring.Parse("mongodb://server0/?replicaSet=rs&connectTimeoutMS=10", nil)
		Expect(err).To(BeNil())

		topo := topology.New(cfg)
		Expect(topo.Members()).To(HaveLen(1))

		// server0 (secondary) reports the full set, discovering server1.
		topo.Reconcile(server0, topology.RoleSecondary, nil, []hostlist.Endpoint{server0, server1})
		Expect(topo.Members()).To(HaveLen(2))

		// server1 (primary) reports the full set too -- selecting primary finds it.
		topo.Reconcile(server1, topology.RolePrimary, nil, []hostlist.Endpoint{server0, server1})

		ep, ok := topo.Select(&readpref.ReadPref{Mode: readpref.Primary})
		Expect(ok).To(BeTrue())
		Expect(ep).To(Equal(server1))

		// server1 (primary) now reports server0 gone and itself tagged.
		topo.Reconcile(server1, topology.RolePrimary, map[string]string{"key": "value"}, []hostlist.Endpoint{server1})

		members := topo.Members()
		Expect(members).To(HaveLen(1))
		Expect(members[0].Endpoint).To(Equal(server1))

		ep, ok = topo.Select(&readpref.ReadPref{
			Mode: readpref.Nearest,
			Tags: []map[string]string{{"key": "value"}},
		})
		Expect(ok).To(BeTrue())
		Expect(ep).To(Equal(server1))
	})

	It("reports no match when no member satisfies the requested mode", func() {
		cfg, err := connstring.Parse("mongodb://server0", nil)
		Expect(err).To(BeNil())

		topo := topology.New(cfg)
		_, ok := topo.Select(&readpref.ReadPref{Mode: readpref.Secondary})
		Expect(ok).To(BeFalse())
	})
})

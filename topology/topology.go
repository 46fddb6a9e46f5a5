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

// Package topology is a companion demonstration consumer of connstring: it
// shows how a driver's server-discovery layer would take the seed list out
// of a Configuration and reconcile it against what each node reports about
// its peers, without performing any of the actual network I/O that belongs
// to that layer. It deliberately knows nothing about sockets, timers, or
// goroutines -- it is a pure, synchronous view over a set of Member facts
// the caller supplies, one ismaster-style response at a time, the same
// reconciliation this module's original driver performs inside its topology
// scanner: a previously unseen host mentioned by a primary gets added to the
// watch list, and a host the primary no longer reports gets dropped from it.
package topology

import (
	"strings"

	"github.com/nabbar/mongouri/connstring"
	"github.com/nabbar/mongouri/hostlist"
	"github.com/nabbar/mongouri/readpref"
)

// Role is what a Member last reported about itself.
type Role uint8

const (
	RoleUnknown Role = iota
	RolePrimary
	RoleSecondary
	RoleMongos
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	case RoleMongos:
		return "mongos"
	default:
		return "unknown"
	}
}

// Member is one node of the topology, as last reported.
type Member struct {
	Endpoint hostlist.Endpoint
	Role     Role
	Tags     map[string]string
}

func (m Member) key() string {
	return strings.ToLower(m.Endpoint.Display())
}

// Topology is the in-memory view of a deployment's members, seeded from a
// Configuration's host list and kept current by Reconcile.
type Topology struct {
	replicaSet string
	members    []Member
	index      map[string]int
}

// New seeds a Topology from cfg's host list. Every seed starts RoleUnknown;
// the first Reconcile call from any member's response establishes roles.
func New(cfg *connstring.Configuration) *Topology {
	t := &Topology{
		replicaSet: cfg.GetUTF8("replicaset", ""),
		index:      make(map[string]int),
	}

	for _, ep := range cfg.Hosts() {
		t.upsert(Member{Endpoint: ep, Role: RoleUnknown})
	}

	return t
}

func (t *Topology) upsert(m Member) {
	k := m.key()
	if i, ok := t.index[k]; ok {
		t.members[i] = m
		return
	}
	t.index[k] = len(t.members)
	t.members = append(t.members, m)
}

// Members returns a snapshot of the current member list.
func (t *Topology) Members() []Member {
	out := make([]Member, len(t.members))
	copy(out, t.members)
	return out
}

// Reconcile folds one node's report into the topology: source is the
// endpoint that answered, role is what it reported about itself, tags are
// its reported tags (nil for none), and hosts is the full membership list it
// claims to see. When source reports RolePrimary, its host view is
// authoritative: any known member absent from hosts is dropped, mirroring
// the seed-list pruning a real topology scanner performs once the primary
// is found and no longer lists a since-removed secondary.
func (t *Topology) Reconcile(source hostlist.Endpoint, role Role, tags map[string]string, hosts []hostlist.Endpoint) {
	t.upsert(Member{Endpoint: source, Role: role, Tags: tags})

	for _, ep := range hosts {
		k := strings.ToLower(ep.Display())
		if _, ok := t.index[k]; !ok {
			t.upsert(Member{Endpoint: ep, Role: RoleUnknown})
		}
	}

	if role != RolePrimary {
		return
	}

	known := make(map[string]bool, len(hosts))
	for _, ep := range hosts {
		known[strings.ToLower(ep.Display())] = true
	}
	sourceKey := strings.ToLower(source.Display())

	kept := t.members[:0]
	t.index = make(map[string]int, len(t.members))
	for _, m := range t.members {
		if m.key() != sourceKey && !known[m.key()] {
			continue
		}
		t.index[m.key()] = len(kept)
		kept = append(kept, m)
	}
	t.members = kept
}

// Select returns the first member matching pref's mode and tag set, the same
// linear selection a test harness performs against a mock deployment: primary
// preference requires RolePrimary, anything preferring secondaries accepts
// RoleSecondary, and any requested tag must be present with the same value.
func (t *Topology) Select(pref *readpref.ReadPref) (hostlist.Endpoint, bool) {
	for _, m := range t.members {
		if !roleMatches(pref.Mode, m.Role) {
			continue
		}
		if !tagsMatch(pref.Tags, m.Tags) {
			continue
		}
		return m.Endpoint, true
	}
	return hostlist.Endpoint{}, false
}

func roleMatches(mode readpref.Mode, role Role) bool {
	switch mode {
	case readpref.Primary:
		return role == RolePrimary
	case readpref.Secondary:
		return role == RoleSecondary
	case readpref.PrimaryPreferred:
		return role == RolePrimary || role == RoleSecondary
	case readpref.SecondaryPreferred, readpref.Nearest:
		return role == RoleSecondary || role == RolePrimary
	default:
		return false
	}
}

// tagsMatch reports whether m satisfies at least one requested tag set, or
// whether no tag sets were requested at all.
func tagsMatch(requested []map[string]string, have map[string]string) bool {
	if len(requested) == 0 {
		return true
	}

	for _, want := range requested {
		if subsetOf(want, have) {
			return true
		}
	}

	return false
}

func subsetOf(want, have map[string]string) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}

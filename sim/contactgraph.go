package sim

import (
	"math"
	"sort"

	"github.com/dtnsim/dtnsim/sim/internal/stablehash"
	"gonum.org/v1/gonum/graph/simple"
)

// vertexKind distinguishes the three kinds of ContactGraph vertex (§3).
type vertexKind int

const (
	vertexContact vertexKind = iota
	vertexSourceNominal
	vertexDestNominal
)

// gvertex is one vertex of the time-expanded contact graph. It
// implements gonum's graph.Node so the graph's vertex/edge set is backed
// by gonum's simple.DirectedGraph storage; successor ORDER, which
// determinism depends on, is resolved by sorting at read time in
// Successors rather than trusted from gonum's own iteration.
type gvertex struct {
	gid     int64
	kind    vertexKind
	contact Contact // valid when kind == vertexContact
	node    NodeID  // valid when kind != vertexContact
}

func (v *gvertex) ID() int64 { return v.gid }

// edgeToTime is the time a packet arriving at this vertex must depart
// before, used both for edge feasibility and successor sort order.
func (v *gvertex) edgeToTime() int64 {
	if v.kind == vertexContact {
		return v.contact.ToTime
	}
	return math.MaxInt64
}

// edgeToNode is the node this vertex ultimately hands a packet to.
func (v *gvertex) edgeToNode() NodeID {
	if v.kind == vertexContact {
		return v.contact.To
	}
	return v.node
}

func contactVertexKey(id ContactID) string { return "c:" + string(id) }
func sourceNominalKey(n NodeID) string     { return "s:" + string(n) }
func destNominalKey(n NodeID) string       { return "d:" + string(n) }

// ContactGraph is the time-expanded graph derived from a ContactPlan:
// one vertex per plan contact plus a source-nominal and destination-
// nominal vertex per node id (§3). It is built once and shared across
// all routing queries; queries select which nominal vertices to search
// from/to by node id.
type ContactGraph struct {
	g         *simple.DirectedGraph
	byKey     map[string]*gvertex
	byContact map[ContactID]*gvertex
	nextID    int64
}

// NewContactGraph builds a ContactGraph from an already-normalized plan
// (see ContactPlan.Normalize). Construction is deterministic: vertex
// creation order follows ContactPlan.Sorted and ContactPlan.NodeIDs.
// Adjacency itself lives in the gonum directed graph; Successors reads
// it back through g.From and sorts the result before returning it, so
// gonum's own iteration order is never consulted for ranking, only for
// membership.
func NewContactGraph(plan ContactPlan) *ContactGraph {
	cg := &ContactGraph{
		g:         simple.NewDirectedGraph(),
		byKey:     make(map[string]*gvertex),
		byContact: make(map[ContactID]*gvertex),
	}

	for _, n := range plan.NodeIDs() {
		cg.addVertex(sourceNominalKey(n), &gvertex{kind: vertexSourceNominal, node: n})
		cg.addVertex(destNominalKey(n), &gvertex{kind: vertexDestNominal, node: n})
	}
	sorted := plan.Sorted()
	for _, c := range sorted {
		v := &gvertex{kind: vertexContact, contact: c}
		cg.addVertex(contactVertexKey(c.ID()), v)
		cg.byContact[c.ID()] = v
	}

	// contact -> contact edges
	for _, c1 := range sorted {
		u := cg.byContact[c1.ID()]
		for _, c2 := range sorted {
			if c1.To != c2.From {
				continue
			}
			if c1.FromTime+c1.Delay < c2.ToTime {
				cg.addEdge(u, cg.byContact[c2.ID()])
			}
		}
	}
	// nominal edges
	for _, c := range sorted {
		src := cg.byKey[sourceNominalKey(c.From)]
		dst := cg.byKey[destNominalKey(c.To)]
		cv := cg.byContact[c.ID()]
		cg.addEdge(src, cv)
		cg.addEdge(cv, dst)
	}

	return cg
}

func (cg *ContactGraph) addVertex(key string, v *gvertex) {
	v.gid = cg.nextID
	cg.nextID++
	cg.g.AddNode(v)
	cg.byKey[key] = v
}

func (cg *ContactGraph) addEdge(u, v *gvertex) {
	cg.g.SetEdge(cg.g.NewEdge(u, v))
}

// SourceNominal returns the source-nominal vertex for node n.
func (cg *ContactGraph) SourceNominal(n NodeID) *gvertex { return cg.byKey[sourceNominalKey(n)] }

// DestNominal returns the destination-nominal vertex for node n.
func (cg *ContactGraph) DestNominal(n NodeID) *gvertex { return cg.byKey[destNominalKey(n)] }

// Successors returns v's successor list, read from the underlying gonum
// directed graph and sorted into the fixed deterministic order routing
// requires: (ToTime ascending, stable hash of ToNode ascending). Gonum's
// own iteration order over v's out-edges is never exposed to callers.
func (cg *ContactGraph) Successors(v *gvertex) []*gvertex {
	it := cg.g.From(v.gid)
	var out []*gvertex
	for it.Next() {
		out = append(out, it.Node().(*gvertex))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.edgeToTime() != b.edgeToTime() {
			return a.edgeToTime() < b.edgeToTime()
		}
		return stablehash.String(string(a.edgeToNode())) < stablehash.String(string(b.edgeToNode()))
	})
	return out
}

// Contact returns the plan-entry contact for a vertex, if it is a
// contact vertex.
func (v *gvertex) Contact() (Contact, bool) {
	if v.kind != vertexContact {
		return Contact{}, false
	}
	return v.contact, true
}

// IsDestNominal reports whether v is a destination-nominal vertex.
func (v *gvertex) IsDestNominal() bool { return v.kind == vertexDestNominal }

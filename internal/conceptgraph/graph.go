package conceptgraph

import (
	"strings"

	"gonum.org/v1/gonum/graph/simple"
)

// Graph holds the concept nodes and edges with precomputed indices.
type Graph struct {
	nodes  []Node
	edges  []Edge
	byID   map[int]int // node id -> index into nodes
	g      *simple.UndirectedGraph
	length map[[2]int]int
	degree map[int]float64
}

// New validates nodes and edges and builds the graph indices.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	if err := validate(nodes, edges); err != nil {
		return nil, err
	}

	gr := &Graph{
		nodes:  append([]Node(nil), nodes...),
		edges:  append([]Edge(nil), edges...),
		byID:   make(map[int]int, len(nodes)),
		g:      simple.NewUndirectedGraph(),
		length: make(map[[2]int]int, len(edges)),
	}

	for i, n := range gr.nodes {
		gr.byID[n.ID] = i
		gr.g.AddNode(simple.Node(int64(n.ID)))
	}
	for _, e := range gr.edges {
		gr.g.SetEdge(gr.g.NewEdge(simple.Node(int64(e.From)), simple.Node(int64(e.To))))
		l := DefaultEdgeLength
		if e.Length != nil {
			l = *e.Length
		}
		gr.length[edgeKey(e.From, e.To)] = l
	}
	gr.degree = scaleDegrees(gr)

	return gr, nil
}

// FromDocument builds a Graph from its wire representation.
func FromDocument(doc Document) (*Graph, error) {
	return New(doc.Nodes, doc.Edges)
}

// Len returns the number of nodes.
func (gr *Graph) Len() int {
	return len(gr.nodes)
}

// Nodes returns all nodes in load order.
func (gr *Graph) Nodes() []Node {
	return append([]Node(nil), gr.nodes...)
}

// Edges returns all edges in load order.
func (gr *Graph) Edges() []Edge {
	return append([]Edge(nil), gr.edges...)
}

// Has reports whether a node with the given id exists.
func (gr *Graph) Has(id int) bool {
	_, ok := gr.byID[id]
	return ok
}

// Node returns the node with the given id.
func (gr *Graph) Node(id int) (Node, bool) {
	i, ok := gr.byID[id]
	if !ok {
		return Node{}, false
	}
	return gr.nodes[i], true
}

// Resolve maps ids to nodes, preserving order and skipping unknown ids.
func (gr *Graph) Resolve(ids []int) []Node {
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := gr.Node(id); ok {
			out = append(out, n)
		}
	}
	return out
}

// Connected returns the nodes sharing an edge with id, in load order.
func (gr *Graph) Connected(id int) []Node {
	if !gr.Has(id) {
		return nil
	}
	neighbors := gr.g.From(int64(id))
	adjacent := make(map[int]bool, neighbors.Len())
	for neighbors.Next() {
		adjacent[int(neighbors.Node().ID())] = true
	}

	var out []Node
	for _, n := range gr.nodes {
		if adjacent[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// EdgeLength returns the length of the edge between two nodes.
func (gr *Graph) EdgeLength(from, to int) (int, bool) {
	l, ok := gr.length[edgeKey(from, to)]
	return l, ok
}

// Search returns nodes whose label or details contain query,
// case-insensitively. A blank query matches nothing.
func (gr *Graph) Search(query string) []Node {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Node
	for _, n := range gr.nodes {
		if strings.Contains(strings.ToLower(n.Label), q) ||
			strings.Contains(strings.ToLower(n.Details), q) {
			out = append(out, n)
		}
	}
	return out
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

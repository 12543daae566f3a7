package conceptgraph

// Node is a single concept in the graph. Nodes are immutable once loaded.
type Node struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Details  string `json:"details"`
	Category string `json:"category,omitempty"`

	// Importance is optional in the data file; see Graph.Importance for
	// the fallback.
	Importance *float64 `json:"importance,omitempty"`

	// IsHub marks the most connected node of its category.
	IsHub bool `json:"isHub,omitempty"`
}

// Edge connects two nodes. Length is the display distance between them,
// shorter meaning more closely related.
type Edge struct {
	From   int  `json:"from"`
	To     int  `json:"to"`
	Length *int `json:"length,omitempty"`
}

// DefaultEdgeLength is used for edges that carry no length.
const DefaultEdgeLength = 100

// Document is the wire shape of a graph: the body of GET /api/data and
// the contents of a local data file.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

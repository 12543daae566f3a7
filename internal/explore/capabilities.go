package explore

// Capabilities switches optional behaviour of the explore and study views.
type Capabilities struct {
	// RandomMode offers random card order in study.
	RandomMode bool `yaml:"random_mode"`

	// ImportanceColoring tints nodes by importance.
	ImportanceColoring bool `yaml:"importance_coloring"`

	// ConnectedNodeNav enables stepping through a node's neighbors.
	ConnectedNodeNav bool `yaml:"connected_node_nav"`

	// EdgeLengths shows the length of each edge to a neighbor.
	EdgeLengths bool `yaml:"edge_lengths"`
}

// AllCapabilities enables every optional behaviour.
func AllCapabilities() Capabilities {
	return Capabilities{
		RandomMode:         true,
		ImportanceColoring: true,
		ConnectedNodeNav:   true,
		EdgeLengths:        true,
	}
}

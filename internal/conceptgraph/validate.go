package conceptgraph

import (
	"fmt"
	"strings"
)

// validate performs all structural checks on the given nodes and edges.
// Returns a combined error describing all problems found, or nil if valid.
func validate(nodes []Node, edges []Edge) error {
	var errs []string

	idSet := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		if idSet[n.ID] {
			errs = append(errs, fmt.Sprintf("duplicate node ID: %d", n.ID))
		}
		idSet[n.ID] = true
	}

	for _, e := range edges {
		if e.From == e.To {
			errs = append(errs, fmt.Sprintf("edge %d-%d is a self loop", e.From, e.To))
			continue
		}
		if !idSet[e.From] {
			errs = append(errs, fmt.Sprintf("edge %d-%d references nonexistent node %d", e.From, e.To, e.From))
		}
		if !idSet[e.To] {
			errs = append(errs, fmt.Sprintf("edge %d-%d references nonexistent node %d", e.From, e.To, e.To))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("concept graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

package check

import "github.com/av-efi/eficonv/pkg/efi"

// ReferenceGraph is the reverse adjacency of a batch: for every referenced
// identifier, the slots of the records referring to it.
type ReferenceGraph struct {
	targets    []efi.Identifier
	dependents map[efi.Identifier][]int
}

// BuildReferenceGraph collects the outgoing references of every record for
// which skip returns false. Targets keep first-seen order so that checks
// over the graph are deterministic.
func BuildReferenceGraph(batch efi.Batch, skip func(slot int) bool) (*ReferenceGraph, error) {
	g := &ReferenceGraph{dependents: make(map[efi.Identifier][]int)}
	for slot, rec := range batch {
		if skip != nil && skip(slot) {
			continue
		}
		attrs, err := efi.ReferenceAttributes(rec.Kind)
		if err != nil {
			return nil, &efi.ModelError{Slot: slot, Kind: rec.Kind}
		}
		for _, attr := range attrs {
			for _, ref := range rec.References(attr) {
				deps, seen := g.dependents[ref]
				if !seen {
					g.targets = append(g.targets, ref)
				}
				g.dependents[ref] = append(deps, slot)
			}
		}
	}
	return g, nil
}

// Targets returns every referenced identifier in first-seen order.
func (g *ReferenceGraph) Targets() []efi.Identifier {
	return g.targets
}

// Dependents returns the slots of records referring to id, in batch order.
func (g *ReferenceGraph) Dependents(id efi.Identifier) []int {
	return g.dependents[id]
}

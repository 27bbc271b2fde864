package isochrones

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
)

// arc is a single traversable direction of an edge
type arc struct {
	edgeIdx int
	head    VertexID
	cost    float64
}

// graphIndex is an immutable adjacency view over the edge set. It is built
// once per request and shared (read-only) across all start-vertex traversals.
type graphIndex struct {
	edges      []Edge
	adjacency  map[VertexID][]arc
	vertexGeom map[VertexID]orb.Point
}

// buildGraphIndex indexes traversable edges. Edges that can not be traversed
// in either direction never contribute to any isochrone, so they are dropped
// with a diagnostic instead of failing the whole request.
func buildGraphIndex(edges []Edge, warn io.Writer) *graphIndex {
	index := &graphIndex{
		edges:      make([]Edge, 0, len(edges)),
		adjacency:  make(map[VertexID][]arc),
		vertexGeom: make(map[VertexID]orb.Point),
	}
	for _, edge := range edges {
		if edge.deadEnded() {
			fmt.Fprintf(warn, "Warning. Edge %d is not traversable in any direction. Skipping it\n", edge.ID)
			continue
		}
		edgeIdx := len(index.edges)
		index.edges = append(index.edges, edge)
		if edge.Cost >= 0 {
			index.adjacency[edge.Source] = append(index.adjacency[edge.Source], arc{edgeIdx: edgeIdx, head: edge.Target, cost: edge.Cost})
		}
		if edge.ReverseCost >= 0 {
			index.adjacency[edge.Target] = append(index.adjacency[edge.Target], arc{edgeIdx: edgeIdx, head: edge.Source, cost: edge.ReverseCost})
		}
		if _, ok := index.vertexGeom[edge.Source]; !ok {
			index.vertexGeom[edge.Source] = edge.Geom[0]
		}
		if _, ok := index.vertexGeom[edge.Target]; !ok {
			index.vertexGeom[edge.Target] = edge.Geom[len(edge.Geom)-1]
		}
	}
	return index
}

func (index *graphIndex) hasVertex(vertex VertexID) bool {
	_, ok := index.vertexGeom[vertex]
	return ok
}

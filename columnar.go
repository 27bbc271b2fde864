package isochrones

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrInvalidNetworkData is returned when the provided edge collection is malformed
var ErrInvalidNetworkData = errors.New("invalid network data")

// EdgesFromColumns adapts columnar edge data (parallel arrays, one entry per
// edge) into Edge records. All arrays must have the same length. It fails
// fast on the first inconsistency so no partially converted network can leak
// into a computation.
func EdgesFromColumns(ids []int64, sources []int64, targets []int64, costs []float64, reverseCosts []float64, lengths []float64, geometries []orb.LineString) ([]Edge, error) {
	totalEdges := len(ids)
	if len(sources) != totalEdges || len(targets) != totalEdges ||
		len(costs) != totalEdges || len(reverseCosts) != totalEdges ||
		len(lengths) != totalEdges || len(geometries) != totalEdges {
		return nil, errors.Wrapf(ErrInvalidNetworkData,
			"mismatched columns: ids=%d sources=%d targets=%d costs=%d reverse_costs=%d lengths=%d geometries=%d",
			totalEdges, len(sources), len(targets), len(costs), len(reverseCosts), len(lengths), len(geometries),
		)
	}
	edges := make([]Edge, totalEdges)
	for i := 0; i < totalEdges; i++ {
		edges[i] = Edge{
			ID:           EdgeID(ids[i]),
			Source:       VertexID(sources[i]),
			Target:       VertexID(targets[i]),
			Cost:         costs[i],
			ReverseCost:  reverseCosts[i],
			LengthMeters: lengths[i],
			Geom:         geometries[i],
		}
		if err := edges[i].Validate(); err != nil {
			return nil, err
		}
	}
	return edges, nil
}

package isochrones

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

type EdgeID int64

type VertexID int64

// Edge is a single directed edge of the network.
//
// Cost is the cost of traversing the edge from Source to Target, ReverseCost
// from Target to Source. A negative cost marks that direction as not
// traversable. Geom describes the spatial path from Source to Target and must
// contain at least two points; cost is assumed to accrue linearly along it.
type Edge struct {
	ID           EdgeID
	Source       VertexID
	Target       VertexID
	Cost         float64
	ReverseCost  float64
	LengthMeters float64
	Geom         orb.LineString
}

// Validate checks that the edge carries enough geometry to be clipped
func (edge Edge) Validate() error {
	if len(edge.Geom) < 2 {
		return errors.Wrapf(ErrInvalidNetworkData, "edge %d has %d geometry points, need at least 2", edge.ID, len(edge.Geom))
	}
	return nil
}

func (edge Edge) deadEnded() bool {
	return edge.Cost < 0 && edge.ReverseCost < 0
}

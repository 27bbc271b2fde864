package isochrones

import (
	"math"
)

type edgeCoverage int

const (
	coverageExcluded = edgeCoverage(iota)
	coverageCovered
	coverageStraddling
)

// resolveEdge classifies a single edge against one reach label and one
// distance limit. Both endpoints within the limit means the edge is fully
// covered; exactly one endpoint within means the limit is exhausted somewhere
// along the edge and the geometry is clipped at the fraction where the
// cumulative cost hits the limit (cost accrues linearly along the edge).
// Neither endpoint within means the edge does not contribute.
//
// The function is pure: it reads the completed label and shares no mutable
// state, so edges can be resolved independently (and concurrently).
func resolveEdge(edge Edge, labels reachLabel, limit float64) (IsochroneNetworkEdge, edgeCoverage) {
	sourceCost, sourceReached := labels[edge.Source]
	targetCost, targetReached := labels[edge.Target]
	sourceIn := sourceReached && sourceCost <= limit
	targetIn := targetReached && targetCost <= limit

	switch {
	case sourceIn && targetIn:
		return IsochroneNetworkEdge{
			EdgeID:    edge.ID,
			StartPerc: 0,
			EndPerc:   1,
			StartCost: sourceCost,
			EndCost:   targetCost,
			Shape:     copyLine(edge.Geom),
		}, coverageCovered
	case sourceIn:
		// Entering from the source side, so the forward direction must be open
		// and there must be budget left to advance into the edge at all
		if edge.Cost <= 0 || sourceCost >= limit {
			return IsochroneNetworkEdge{}, coverageExcluded
		}
		t := (limit - sourceCost) / edge.Cost
		t = math.Min(t, 1)
		return IsochroneNetworkEdge{
			EdgeID:    edge.ID,
			StartPerc: 0,
			EndPerc:   t,
			StartCost: sourceCost,
			EndCost:   limit,
			Shape:     lineSubstring(edge.Geom, 0, t),
		}, coverageStraddling
	case targetIn:
		if edge.ReverseCost <= 0 || targetCost >= limit {
			return IsochroneNetworkEdge{}, coverageExcluded
		}
		t := (limit - targetCost) / edge.ReverseCost
		t = math.Min(t, 1)
		return IsochroneNetworkEdge{
			EdgeID:    edge.ID,
			StartPerc: 1 - t,
			EndPerc:   1,
			StartCost: limit,
			EndCost:   targetCost,
			Shape:     lineSubstring(edge.Geom, 1-t, 1),
		}, coverageStraddling
	default:
		return IsochroneNetworkEdge{}, coverageExcluded
	}
}

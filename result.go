package isochrones

import (
	"github.com/paulmach/orb"
)

// IsochroneShape is the closed polygon boundary approximating the area
// reachable from StartID within DistanceLimit. The ring is explicitly closed
// (first and last points are equal).
type IsochroneShape struct {
	StartID       VertexID
	DistanceLimit float64
	Shape         orb.Ring
}

// IsochroneNetworkEdge is the portion of a single network edge covered from
// StartID within DistanceLimit. Percentages are fractional positions in [0,1]
// along the edge geometry (source to target); StartCost/EndCost are the
// cumulative costs at those positions. For a straddling edge the clipped end
// carries the interpolated values while the reachable end keeps its own.
type IsochroneNetworkEdge struct {
	StartID       VertexID
	DistanceLimit float64
	EdgeID        EdgeID
	StartPerc     float64
	EndPerc       float64
	StartCost     float64
	EndCost       float64
	Shape         orb.LineString
}

// Result aggregates isochrones for every requested (start vertex, distance
// limit) pair. It is owned solely by the caller; the engine keeps no state
// once it has been returned.
type Result struct {
	Shapes  []IsochroneShape
	Network []IsochroneNetworkEdge
}

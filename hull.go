package isochrones

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// convexHull returns the smallest convex polygon enclosing the given points
// as an explicitly closed counter-clockwise ring (Andrew's monotone chain).
// Fewer than 3 distinct points yield a degenerate ring: a point or a segment.
func convexHull(points []orb.Point) orb.Ring {
	pts := distinctPoints(points)
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return orb.Ring{pts[0], pts[0]}
	case 2:
		return orb.Ring{pts[0], pts[1], pts[0]}
	}

	var lower, upper []orb.Point
	for _, pt := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], pt) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, pt)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		pt := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], pt) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, pt)
	}

	ring := make(orb.Ring, 0, len(lower)+len(upper)-1)
	ring = append(ring, lower[:len(lower)-1]...)
	ring = append(ring, upper[:len(upper)-1]...)
	ring = append(ring, ring[0])
	return ring
}

// concaveHull tightens the convex hull of the given points by digging hull
// edges towards nearby inner points. An edge is dug when the ratio of its
// length to the distance of the nearest inner point exceeds the concavity
// factor and that point is not closer to some other hull edge; the inner
// point then splits the edge and both halves are reconsidered. Smaller
// concavity values dig more aggressively.
func concaveHull(points []orb.Point, concavity float64) orb.Ring {
	closed := convexHull(points)
	if concavity <= 0 || len(closed) <= 4 {
		return closed
	}
	ring := closed[:len(closed)-1]
	onHull := make(map[orb.Point]bool, len(ring))
	for _, pt := range ring {
		onHull[pt] = true
	}
	var inner []orb.Point
	for _, pt := range distinctPoints(points) {
		if !onHull[pt] {
			inner = append(inner, pt)
		}
	}

	for i := 0; i < len(ring) && len(inner) > 0; {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		edgeLength := planar.Distance(a, b)

		nearest := -1
		nearestDist := 0.0
		for j, pt := range inner {
			d := distanceToSegment(a, b, pt)
			if nearest < 0 || d < nearestDist {
				nearest = j
				nearestDist = d
			}
		}
		if nearestDist <= 0 || edgeLength/nearestDist <= concavity || !closestToEdge(ring, i, inner[nearest], nearestDist) {
			i++
			continue
		}
		// Split edge (a,b) at the inner point and revisit (a, point)
		ring = append(ring, orb.Point{})
		copy(ring[i+2:], ring[i+1:])
		ring[i+1] = inner[nearest]
		inner = append(inner[:nearest], inner[nearest+1:]...)
	}

	return append(ring, ring[0])
}

// closestToEdge reports whether the given hull edge is the nearest one to the
// candidate point. Digging an edge that is not the nearest could produce a
// self-intersecting ring.
func closestToEdge(ring orb.Ring, edgeIdx int, pt orb.Point, dist float64) bool {
	for i := range ring {
		if i == edgeIdx {
			continue
		}
		if distanceToSegment(ring[i], ring[(i+1)%len(ring)], pt) < dist {
			return false
		}
	}
	return true
}

// cross is the z-component of (b-a)x(c-a); positive for a left turn
func cross(a, b, c orb.Point) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

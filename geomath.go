package isochrones

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// pointOnSegmentByFraction returns a point on given segment assuming knowledge about fraction
func pointOnSegmentByFraction(p, q orb.Point, fraction float64) orb.Point {
	return orb.Point{
		(1-fraction)*p.X() + fraction*q.X(),
		(1-fraction)*p.Y() + fraction*q.Y(),
	}
}

// lineSubstring returns the part of the line between two fractions of its
// total planar length (0 <= from < to <= 1). Clip points are located in two
// steps: first the segment bracketing the target length is found, then the
// point is interpolated inside that segment.
func lineSubstring(line orb.LineString, from, to float64) orb.LineString {
	totalLength := planar.Length(line)
	if totalLength == 0 {
		return copyLine(line)
	}
	if from < 0 {
		from = 0
	}
	if to > 1 {
		to = 1
	}
	fromDist := from * totalLength
	toDist := to * totalLength

	var result orb.LineString
	passed := 0.0
	for i := 1; i < len(line); i++ {
		segmentLength := planar.Distance(line[i-1], line[i])
		segmentStart := passed
		segmentEnd := passed + segmentLength
		passed = segmentEnd
		if segmentEnd < fromDist || segmentLength == 0 {
			continue
		}
		if len(result) == 0 {
			if fromDist <= segmentStart {
				result = append(result, line[i-1])
			} else {
				result = append(result, pointOnSegmentByFraction(line[i-1], line[i], (fromDist-segmentStart)/segmentLength))
			}
		}
		if toDist <= segmentEnd {
			result = append(result, pointOnSegmentByFraction(line[i-1], line[i], (toDist-segmentStart)/segmentLength))
			break
		}
		result = append(result, line[i])
	}
	if len(result) == 1 {
		// Degenerate clip interval collapses to a point
		result = append(result, result[0])
	}
	return result
}

// distanceToSegment returns planar distance from point to segment [a, b]
func distanceToSegment(a, b, pt orb.Point) float64 {
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()
	if dx == 0 && dy == 0 {
		return planar.Distance(a, pt)
	}
	t := ((pt.X()-a.X())*dx + (pt.Y()-a.Y())*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return planar.Distance(orb.Point{a.X() + t*dx, a.Y() + t*dy}, pt)
}

// copyLine returns new slice with copied points of given line
func copyLine(line orb.LineString) orb.LineString {
	output := make(orb.LineString, len(line))
	copy(output, line)
	return output
}

// distinctPoints returns sorted unique points. Sorting keeps every consumer
// deterministic no matter how the input set was accumulated
func distinctPoints(points []orb.Point) []orb.Point {
	if len(points) == 0 {
		return nil
	}
	sorted := make([]orb.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X() == sorted[j].X() {
			return sorted[i].Y() < sorted[j].Y()
		}
		return sorted[i].X() < sorted[j].X()
	})
	unique := sorted[:1]
	for _, pt := range sorted[1:] {
		if pt != unique[len(unique)-1] {
			unique = append(unique, pt)
		}
	}
	return unique
}

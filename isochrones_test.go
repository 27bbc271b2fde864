package isochrones

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func networkFor(result *Result, start VertexID, limit float64) []IsochroneNetworkEdge {
	var records []IsochroneNetworkEdge
	for _, record := range result.Network {
		if record.StartID == start && record.DistanceLimit == limit {
			records = append(records, record)
		}
	}
	return records
}

func shapeFor(result *Result, start VertexID, limit float64) (IsochroneShape, bool) {
	for _, shape := range result.Shapes {
		if shape.StartID == start && shape.DistanceLimit == limit {
			return shape, true
		}
	}
	return IsochroneShape{}, false
}

func TestComputeLineGraphScenario(t *testing.T) {
	result, err := Compute(lineGraphOneWay(), []VertexID{1}, []float64{15}, true)
	require.NoError(t, err)

	require.Len(t, result.Shapes, 1)
	records := networkFor(result, 1, 15)
	require.Len(t, records, 2)

	assert.Equal(t, EdgeID(1), records[0].EdgeID)
	assert.Equal(t, 1.0, records[0].EndPerc)
	assert.Equal(t, 10.0, records[0].EndCost)

	assert.Equal(t, EdgeID(2), records[1].EdgeID)
	assert.InDelta(t, 0.5, records[1].EndPerc, 1e-9)
	assert.InDelta(t, 15.0, records[1].EndCost, 1e-9)

	shape, ok := shapeFor(result, 1, 15)
	require.True(t, ok)
	// Covered path is a straight west-east line, so the shape degenerates to a segment
	require.Equal(t, orb.Ring{{0, 0}, {15, 0}, {0, 0}}, shape.Shape)
}

func crossGraph() []Edge {
	return []Edge{
		{ID: 1, Source: 1, Target: 2, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{0, 0}, {10, 0}}},
		{ID: 2, Source: 1, Target: 3, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{0, 0}, {0, 10}}},
		{ID: 3, Source: 2, Target: 4, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{10, 0}, {20, 0}}},
	}
}

func TestComputeMonotonicity(t *testing.T) {
	result, err := Compute(crossGraph(), []VertexID{1}, []float64{15, 5}, true)
	require.NoError(t, err)

	// Limits are processed in ascending order no matter how they were given
	require.Len(t, result.Shapes, 2)
	assert.Equal(t, 5.0, result.Shapes[0].DistanceLimit)
	assert.Equal(t, 15.0, result.Shapes[1].DistanceLimit)

	narrow := networkFor(result, 1, 5)
	wide := networkFor(result, 1, 15)
	covered := make(map[EdgeID]bool)
	for _, record := range wide {
		covered[record.EdgeID] = true
	}
	for _, record := range narrow {
		assert.True(t, covered[record.EdgeID], "edge %d covered at limit 5 must be covered at limit 15 as well", record.EdgeID)
	}

	narrowShape, _ := shapeFor(result, 1, 5)
	wideShape, _ := shapeFor(result, 1, 15)
	assert.LessOrEqual(t, math.Abs(planar.Area(narrowShape.Shape)), math.Abs(planar.Area(wideShape.Shape)))
}

func TestComputeIdempotence(t *testing.T) {
	first, err := Compute(crossGraph(), []VertexID{1, 2}, []float64{5, 15}, false)
	require.NoError(t, err)
	second, err := Compute(crossGraph(), []VertexID{1, 2}, []float64{5, 15}, false)
	require.NoError(t, err)
	require.Equal(t, first, second)

	serial, err := Compute(crossGraph(), []VertexID{1, 2}, []float64{5, 15}, false, WithParallelism(1))
	require.NoError(t, err)
	require.Equal(t, first, serial)
}

func TestComputeDisjointComponents(t *testing.T) {
	edges := []Edge{
		{ID: 1, Source: 1, Target: 2, Cost: 10, ReverseCost: 10, LengthMeters: 10, Geom: orb.LineString{{0, 0}, {10, 0}}},
		{ID: 2, Source: 10, Target: 11, Cost: 10, ReverseCost: 10, LengthMeters: 10, Geom: orb.LineString{{100, 100}, {110, 100}}},
	}
	result, err := Compute(edges, []VertexID{1, 10}, []float64{60}, true)
	require.NoError(t, err)

	require.Len(t, result.Shapes, 2)
	firstComponent := networkFor(result, 1, 60)
	require.Len(t, firstComponent, 1)
	assert.Equal(t, EdgeID(1), firstComponent[0].EdgeID)

	secondComponent := networkFor(result, 10, 60)
	require.Len(t, secondComponent, 1)
	assert.Equal(t, EdgeID(2), secondComponent[0].EdgeID)

	// No cross-leakage of reach costs: the first shape stays within its component
	firstShape, _ := shapeFor(result, 1, 60)
	for _, pt := range firstShape.Shape {
		assert.True(t, pt.X() <= 10 && pt.Y() == 0, "point %v does not belong to the first component", pt)
	}
}

func TestComputeUnknownStart(t *testing.T) {
	result, err := Compute(lineGraphOneWay(), []VertexID{999}, []float64{15}, true)
	require.NoError(t, err)
	assert.Empty(t, result.Shapes)
	assert.Empty(t, result.Network)
}

func TestComputeZeroLimit(t *testing.T) {
	result, err := Compute(lineGraphOneWay(), []VertexID{1}, []float64{0}, true)
	require.NoError(t, err)
	require.Len(t, result.Shapes, 1)
	assert.Empty(t, result.Network)
	// Only the start vertex itself is reachable
	require.Equal(t, orb.Ring{{0, 0}, {0, 0}}, result.Shapes[0].Shape)
}

func TestComputeInvalidInputs(t *testing.T) {
	badGeometry := []Edge{{ID: 1, Source: 1, Target: 2, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{0, 0}}}}
	_, err := Compute(badGeometry, []VertexID{1}, []float64{15}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNetworkData))

	_, err = Compute(lineGraphOneWay(), []VertexID{1}, nil, true)
	require.Error(t, err)

	_, err = Compute(lineGraphOneWay(), []VertexID{1}, []float64{-5}, true)
	require.Error(t, err)
}

func TestComputeWarnsOnDeadEdges(t *testing.T) {
	edges := append(lineGraphOneWay(), Edge{ID: 42, Source: 7, Target: 8, Cost: -1, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{50, 50}, {60, 50}}})
	warn := bytes.Buffer{}
	result, err := Compute(edges, []VertexID{1}, []float64{15}, true, WithWarnings(&warn))
	require.NoError(t, err)
	assert.True(t, strings.Contains(warn.String(), "Warning. Edge 42"))
	assert.Len(t, networkFor(result, 1, 15), 2)
}

func TestComputeConcaveShape(t *testing.T) {
	// Star of four spokes with a long north one: the concave shape follows
	// the spokes tighter than the minimum convex cover does
	edges := []Edge{
		{ID: 1, Source: 1, Target: 2, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{0, 0}, {10, 0}}},
		{ID: 2, Source: 1, Target: 3, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{0, 0}, {-10, 0}}},
		{ID: 3, Source: 1, Target: 4, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{0, 0}, {0, 10}}},
		{ID: 4, Source: 1, Target: 5, Cost: 10, ReverseCost: -1, LengthMeters: 10, Geom: orb.LineString{{0, 0}, {0, -10}}},
	}
	convexResult, err := Compute(edges, []VertexID{1}, []float64{10}, true)
	require.NoError(t, err)
	concaveResult, err := Compute(edges, []VertexID{1}, []float64{10}, false, WithConcavity(0.5))
	require.NoError(t, err)

	convexShape, _ := shapeFor(convexResult, 1, 10)
	concaveShape, _ := shapeFor(concaveResult, 1, 10)
	require.Equal(t, concaveShape.Shape[0], concaveShape.Shape[len(concaveShape.Shape)-1])
	assert.LessOrEqual(t, math.Abs(planar.Area(concaveShape.Shape)), math.Abs(planar.Area(convexShape.Shape)))
}

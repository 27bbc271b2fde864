package isochrones

import (
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const defaultConcavity = 2.0

type computeConfig struct {
	concavity   float64
	parallelism int
	warn        io.Writer
}

type ComputeOption func(*computeConfig)

// WithConcavity sets the concavity factor used by the concave hull mode
// (onlyMinimumCover=false). Default is 2; smaller values hug the network tighter.
func WithConcavity(concavity float64) ComputeOption {
	return func(cfg *computeConfig) {
		cfg.concavity = concavity
	}
}

// WithParallelism bounds the number of start vertices processed concurrently.
// Default is the number of CPUs.
func WithParallelism(parallelism int) ComputeOption {
	return func(cfg *computeConfig) {
		cfg.parallelism = parallelism
	}
}

// WithWarnings redirects non-fatal diagnostics (e.g. dropped dead edges).
// Default is standard output.
func WithWarnings(w io.Writer) ComputeOption {
	return func(cfg *computeConfig) {
		cfg.warn = w
	}
}

// Compute builds isochrones for every (start vertex, distance limit) pair.
//
// For each start vertex a single bounded traversal is run with the largest
// requested limit as horizon and reused for all limits. Per limit every edge
// is classified as covered, straddling (clipped where the cumulative cost
// hits the limit) or excluded, and the collected coordinates are wrapped into
// a closed polygon: convex when onlyMinimumCover is true (the minimum convex
// cover of the reached area), concave otherwise.
//
// Start vertices are independent: each traversal owns its reach costs and
// only shares the immutable graph index, so they are fanned out in parallel.
// Results are assembled in deterministic order: start vertices as given,
// limits ascending, edges as given.
//
// A start vertex absent from the network yields no records and no error.
func Compute(edges []Edge, startVertices []VertexID, distanceLimits []float64, onlyMinimumCover bool, options ...ComputeOption) (*Result, error) {
	cfg := computeConfig{
		concavity:   defaultConcavity,
		parallelism: runtime.NumCPU(),
		warn:        os.Stdout,
	}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.parallelism < 1 {
		cfg.parallelism = 1
	}

	for _, edge := range edges {
		if err := edge.Validate(); err != nil {
			return nil, err
		}
	}
	if len(distanceLimits) == 0 {
		return nil, errors.Wrap(ErrInvalidNetworkData, "no distance limits given")
	}
	limits := make([]float64, len(distanceLimits))
	copy(limits, distanceLimits)
	sort.Float64s(limits)
	if limits[0] < 0 {
		return nil, errors.Wrapf(ErrInvalidNetworkData, "distance limit %f is negative", limits[0])
	}
	maxCost := limits[len(limits)-1]

	index := buildGraphIndex(edges, cfg.warn)

	perStart := make([]Result, len(startVertices))
	var workers errgroup.Group
	workers.SetLimit(cfg.parallelism)
	for i := range startVertices {
		i := i
		workers.Go(func() error {
			perStart[i] = computeForStart(index, startVertices[i], limits, maxCost, onlyMinimumCover, cfg.concavity)
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, part := range perStart {
		result.Shapes = append(result.Shapes, part.Shapes...)
		result.Network = append(result.Network, part.Network...)
	}
	return result, nil
}

// computeForStart runs one traversal and derives shapes and covered edges for
// every distance limit from it. Limits are processed in ascending order.
func computeForStart(index *graphIndex, start VertexID, limits []float64, maxCost float64, onlyMinimumCover bool, concavity float64) Result {
	part := Result{}
	labels := index.traverse(start, maxCost)
	if len(labels) == 0 {
		return part
	}
	for _, limit := range limits {
		var points []orb.Point
		for vertex, cost := range labels {
			if cost <= limit {
				points = append(points, index.vertexGeom[vertex])
			}
		}
		for _, edge := range index.edges {
			record, coverage := resolveEdge(edge, labels, limit)
			if coverage == coverageExcluded {
				continue
			}
			record.StartID = start
			record.DistanceLimit = limit
			part.Network = append(part.Network, record)
			points = append(points, record.Shape...)
		}
		var shape orb.Ring
		if onlyMinimumCover {
			shape = convexHull(points)
		} else {
			shape = concaveHull(points, concavity)
		}
		part.Shapes = append(part.Shapes, IsochroneShape{
			StartID:       start,
			DistanceLimit: limit,
			Shape:         shape,
		})
	}
	return part
}

package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LdDl/isochrones"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

var (
	networkFileName = flag.String("file", "network.csv", "Filename of network file. Line format: id,source,target,cost,reverse_cost,length,[[x,y],[x,y],...] (first line is a header)")
	startsStr       = flag.String("starts", "", "Start vertices (separated by commas)")
	limitsStr       = flag.String("limits", "", "Distance limits (separated by commas)")
	minimumCover    = flag.Bool("mincover", false, "Build minimum (convex) cover instead of concave shape?")
	concavity       = flag.Float64("concavity", 2.0, "Concavity factor for concave shapes")
	geomFormat      = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	out             = flag.String("out", "isochrones.csv", "Filename of 'Comma-Separated Values' (CSV) formatted output. E.g.: if file name is 'isochrones.csv' then 2 files will be produced: 'isochrones_shapes.csv' and 'isochrones_network.csv'")
)

func main() {
	flag.Parse()

	edges, err := readNetworkFile(*networkFileName)
	if err != nil {
		fmt.Println(err)
		return
	}
	startVertices, err := parseVertices(*startsStr)
	if err != nil {
		fmt.Println(err)
		return
	}
	distanceLimits, err := parseLimits(*limitsStr)
	if err != nil {
		fmt.Println(err)
		return
	}

	st := time.Now()
	result, err := isochrones.Compute(edges, startVertices, distanceLimits, *minimumCover, isochrones.WithConcavity(*concavity))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Done %d shapes and %d network edges in %v\n", len(result.Shapes), len(result.Network), time.Since(st))

	fnamePart := strings.Split(*out, ".csv") // to guarantee proper filename and its extension
	fnameShapes := fmt.Sprintf(fnamePart[0] + "_shapes.csv")
	fnameNetwork := fmt.Sprintf(fnamePart[0] + "_network.csv")

	if err := writeShapes(fnameShapes, result.Shapes); err != nil {
		fmt.Println(err)
		return
	}
	if err := writeNetwork(fnameNetwork, result.Network); err != nil {
		fmt.Println(err)
		return
	}
}

func writeShapes(fname string, shapes []isochrones.IsochroneShape) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create shapes file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"start_id", "distance_limit", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, shape := range shapes {
		geomStr := ""
		if strings.ToLower(*geomFormat) == "geojson" {
			geomStr = isochrones.PrepareGeoJSONPolygon(shape.Shape)
		} else {
			geomStr = isochrones.PrepareWKTPolygon(shape.Shape)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", shape.StartID),
			fmt.Sprintf("%f", shape.DistanceLimit),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write shape")
		}
	}
	return nil
}

func writeNetwork(fname string, network []isochrones.IsochroneNetworkEdge) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create network file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"start_id", "distance_limit", "edge_id", "start_perc", "end_perc", "start_cost", "end_cost", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, record := range network {
		geomStr := ""
		if strings.ToLower(*geomFormat) == "geojson" {
			geomStr = isochrones.PrepareGeoJSONLinestring(record.Shape)
		} else {
			geomStr = isochrones.PrepareWKTLinestring(record.Shape)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", record.StartID),
			fmt.Sprintf("%f", record.DistanceLimit),
			fmt.Sprintf("%d", record.EdgeID),
			fmt.Sprintf("%f", record.StartPerc),
			fmt.Sprintf("%f", record.EndPerc),
			fmt.Sprintf("%f", record.StartCost),
			fmt.Sprintf("%f", record.EndCost),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write network edge")
		}
	}
	return nil
}

// readNetworkFile reads edges from CSV-ish file where geometry is inlined as
// [[x,y],[x,y],...] in the last column
func readNetworkFile(fname string) ([]isochrones.Edge, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open network file")
	}
	defer file.Close()

	var edges []isochrones.Edge
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if lineNum == 1 || line == "" { // ignore header line
			continue
		}
		edge, err := parseNetworkLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't parse line %d", lineNum)
		}
		edges = append(edges, edge)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't read network file")
	}
	return edges, nil
}

func parseNetworkLine(line string) (isochrones.Edge, error) {
	segmented := strings.SplitN(line, ",[[", 2)
	if len(segmented) != 2 {
		return isochrones.Edge{}, fmt.Errorf("no geometry part in '%s'", line)
	}
	props := strings.Split(segmented[0], ",")
	if len(props) != 6 {
		return isochrones.Edge{}, fmt.Errorf("expected 6 properties, got %d in '%s'", len(props), segmented[0])
	}
	id, err := strconv.ParseInt(props[0], 10, 64)
	if err != nil {
		return isochrones.Edge{}, errors.Wrap(err, "Can't parse edge ID")
	}
	source, err := strconv.ParseInt(props[1], 10, 64)
	if err != nil {
		return isochrones.Edge{}, errors.Wrap(err, "Can't parse source vertex")
	}
	target, err := strconv.ParseInt(props[2], 10, 64)
	if err != nil {
		return isochrones.Edge{}, errors.Wrap(err, "Can't parse target vertex")
	}
	cost, err := strconv.ParseFloat(props[3], 64)
	if err != nil {
		return isochrones.Edge{}, errors.Wrap(err, "Can't parse cost")
	}
	reverseCost, err := strconv.ParseFloat(props[4], 64)
	if err != nil {
		return isochrones.Edge{}, errors.Wrap(err, "Can't parse reverse cost")
	}
	length, err := strconv.ParseFloat(props[5], 64)
	if err != nil {
		return isochrones.Edge{}, errors.Wrap(err, "Can't parse length")
	}

	coordsPart := strings.TrimSuffix(segmented[1], "]]")
	coords := strings.Split(coordsPart, "],[")
	geom := make(orb.LineString, 0, len(coords))
	for _, coord := range coords {
		xy := strings.Split(coord, ",")
		if len(xy) != 2 {
			return isochrones.Edge{}, fmt.Errorf("bad coordinate pair '%s'", coord)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return isochrones.Edge{}, errors.Wrap(err, "Can't parse X coordinate")
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return isochrones.Edge{}, errors.Wrap(err, "Can't parse Y coordinate")
		}
		geom = append(geom, orb.Point{x, y})
	}

	return isochrones.Edge{
		ID:           isochrones.EdgeID(id),
		Source:       isochrones.VertexID(source),
		Target:       isochrones.VertexID(target),
		Cost:         cost,
		ReverseCost:  reverseCost,
		LengthMeters: length,
		Geom:         geom,
	}, nil
}

func parseVertices(s string) ([]isochrones.VertexID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("no start vertices given (use -starts)")
	}
	parts := strings.Split(s, ",")
	vertices := make([]isochrones.VertexID, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "Can't parse start vertex")
		}
		vertices = append(vertices, isochrones.VertexID(v))
	}
	return vertices, nil
}

func parseLimits(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("no distance limits given (use -limits)")
	}
	parts := strings.Split(s, ",")
	limits := make([]float64, 0, len(parts))
	for _, part := range parts {
		limit, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.Wrap(err, "Can't parse distance limit")
		}
		limits = append(limits, limit)
	}
	return limits, nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/twpayne/go-elevationprofile"
)

// readFile returns the parts in filename. GPX files contain WGS84 coordinates.
func readFile(filename string) ([][][]float64, error) {
	if strings.EqualFold(filepath.Ext(filename), ".gpx") {
		gpxData, err := gpx.ParseFile(filename)
		if err != nil {
			return nil, err
		}
		return partsFromGPX(gpxData), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return partsFromGeoJSON(data)
}

// partsFromGPX returns one part per track segment, or one part per route if
// there are no tracks.
func partsFromGPX(gpxData *gpx.GPX) [][][]float64 {
	var parts [][][]float64
	for _, track := range gpxData.Tracks {
		for _, segment := range track.Segments {
			parts = append(parts, gpxPointsToCoords(segment.Points))
		}
	}
	if len(parts) > 0 {
		return parts
	}
	for _, route := range gpxData.Routes {
		parts = append(parts, gpxPointsToCoords(route.Points))
	}
	return parts
}

func gpxPointsToCoords(points []gpx.GPXPoint) [][]float64 {
	coords := make([][]float64, 0, len(points))
	for _, point := range points {
		coords = append(coords, []float64{point.Longitude, point.Latitude})
	}
	return coords
}

// partsFromGeoJSON returns the parts of a GeoJSON FeatureCollection, Feature,
// or Geometry. A FeatureCollection must contain exactly one feature.
func partsFromGeoJSON(data []byte) ([][][]float64, error) {
	var object struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return nil, err
	}

	var g orb.Geometry
	switch object.Type {
	case "FeatureCollection":
		featureCollection, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		switch len(featureCollection.Features) {
		case 0:
			return nil, elevationprofile.ErrInputMissing
		case 1:
			g = featureCollection.Features[0].Geometry
		default:
			return nil, fmt.Errorf("%d features: %w", len(featureCollection.Features), elevationprofile.ErrMultiFeatureUnsupported)
		}
	case "Feature":
		feature, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		g = feature.Geometry
	default:
		geometry, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		g = geometry.Geometry()
	}
	return elevationprofile.PartsFromGeometry(g)
}

// parsePoints parses a single part of the form "x,y x,y ...".
func parsePoints(s string) ([][]float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, elevationprofile.ErrInputMissing
	}
	coords := make([][]float64, 0, len(fields))
	for _, field := range fields {
		xStr, yStr, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("%s: invalid point", field)
		}
		x, err := strconv.ParseFloat(xStr, 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(yStr, 64)
		if err != nil {
			return nil, err
		}
		coords = append(coords, []float64{x, y})
	}
	return coords, nil
}

var errNoInput = errors.New("syntax: elevation-profile [flags] (FILE | -points \"x,y x,y ...\")")

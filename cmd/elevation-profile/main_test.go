package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-elevationprofile"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(filepath.Join("testdata", "config.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, &config{
		BackendURL:     "http://localhost:8080/profile.json",
		Timeout:        5 * time.Second,
		MaxChunkPoints: 1000,
		CacheSize:      256,
		LogLevel:       "debug",
	}, cfg)
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestReadFileGPX(t *testing.T) {
	parts, err := readFile(filepath.Join("testdata", "track.gpx"))
	assert.NoError(t, err)
	assert.Equal(t, [][][]float64{
		{{8.4920, 47.3497}, {8.4880, 47.3520}},
		{{8.4850, 47.3540}, {8.4830, 47.3560}, {8.4810, 47.3580}},
	}, parts)
}

func TestPartsFromGeoJSON(t *testing.T) {
	for _, tc := range []struct {
		name        string
		data        string
		expected    [][][]float64
		expectedErr error
	}{
		{
			name:     "geometry",
			data:     `{"type":"LineString","coordinates":[[8.49,47.35],[8.48,47.36]]}`,
			expected: [][][]float64{{{8.49, 47.35}, {8.48, 47.36}}},
		},
		{
			name:     "feature",
			data:     `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[8.49,47.35],[8.48,47.36]]},"properties":{}}`,
			expected: [][][]float64{{{8.49, 47.35}, {8.48, 47.36}}},
		},
		{
			name:     "feature_collection",
			data:     `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"MultiLineString","coordinates":[[[0,1],[2,3]],[[4,5],[6,7]]]},"properties":{}}]}`,
			expected: [][][]float64{{{0, 1}, {2, 3}}, {{4, 5}, {6, 7}}},
		},
		{
			name:        "feature_collection_empty",
			data:        `{"type":"FeatureCollection","features":[]}`,
			expectedErr: elevationprofile.ErrInputMissing,
		},
		{
			name:        "multi_polygon",
			data:        `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}`,
			expectedErr: elevationprofile.ErrMultiFeatureUnsupported,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := partsFromGeoJSON([]byte(tc.data))
			if tc.expectedErr != nil {
				assert.True(t, errors.Is(err, tc.expectedErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParsePoints(t *testing.T) {
	actual, err := parsePoints("2600000,1200000 2600100,1200050")
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{2600000, 1200000}, {2600100, 1200050}}, actual)

	_, err = parsePoints("2600000")
	assert.Error(t, err)

	_, err = parsePoints(" ")
	assert.True(t, errors.Is(err, elevationprofile.ErrInputMissing))
}

func TestPrintProfile(t *testing.T) {
	profile := &elevationprofile.Profile{
		Segments: []elevationprofile.Segment{
			{
				Points: []elevationprofile.Point{
					{Dist: 0, HasDist: true, Elevation: 500, HasElevationData: true},
					{Dist: 10, HasDist: true},
				},
			},
		},
	}
	var sb strings.Builder
	assert.NoError(t, printProfile(&sb, profile))
	assert.Equal(t, strings.Join([]string{
		"# distance 0m slope distance 0m ascent 0m descent 0m min 0.0m max 0.0m hiking time 0s",
		"# segment 0",
		"0.0 500.0",
		"10.0 -",
		"",
	}, "\n"), sb.String())
}

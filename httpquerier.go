package elevationprofile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/maypok86/otter/v2"

	"github.com/twpayne/go-elevationprofile/coordsys"
)

const (
	DefaultBaseURL          = "https://api3.geo.admin.ch/rest/services/profile.json"
	DefaultMaxBackendPoints = 5000

	maxResponseBodySize = 64 << 20 // 64MB.
)

// An HTTPQuerier queries an elevation backend over HTTP.
type HTTPQuerier struct {
	baseURL      string
	httpClient   *http.Client
	maxPoints    int
	cacheSize    int
	requestCache *otter.Cache[requestKey, []BackendPoint]
}

// An HTTPQuerierOption sets an option on an HTTPQuerier.
type HTTPQuerierOption func(*HTTPQuerier)

// A requestKey identifies a backend request. body holds coordinates already
// rounded to the coordinate system's precision.
type requestKey struct {
	srid int
	body string
}

type lineStringGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// NewHTTPQuerier returns a new HTTPQuerier.
func NewHTTPQuerier(options ...HTTPQuerierOption) (*HTTPQuerier, error) {
	q := &HTTPQuerier{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		maxPoints:  DefaultMaxBackendPoints,
		cacheSize:  256,
	}
	for _, option := range options {
		option(q)
	}

	if _, err := url.Parse(q.baseURL); err != nil {
		return nil, err
	}
	if q.cacheSize > 0 {
		var err error
		q.requestCache, err = otter.New(&otter.Options[requestKey, []BackendPoint]{
			MaximumSize: q.cacheSize,
		})
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}

func WithBaseURL(baseURL string) HTTPQuerierOption {
	return func(q *HTTPQuerier) {
		q.baseURL = baseURL
	}
}

// WithCacheSize sets the number of responses cached. Zero disables caching.
func WithCacheSize(cacheSize int) HTTPQuerierOption {
	return func(q *HTTPQuerier) {
		q.cacheSize = cacheSize
	}
}

func WithHTTPClient(httpClient *http.Client) HTTPQuerierOption {
	return func(q *HTTPQuerier) {
		q.httpClient = httpClient
	}
}

// WithMaxPoints sets the largest request sent to the backend.
func WithMaxPoints(maxPoints int) HTTPQuerierOption {
	return func(q *HTTPQuerier) {
		q.maxPoints = maxPoints
	}
}

// Query implements Querier.
func (q *HTTPQuerier) Query(ctx context.Context, cs *coordsys.CoordinateSystem, coords [][]float64) ([]BackendPoint, error) {
	if len(coords) > q.maxPoints {
		return nil, fmt.Errorf("%d points exceeds backend limit of %d: %w", len(coords), q.maxPoints, ErrTooManyPoints)
	}
	body, err := json.Marshal(lineStringGeometry{
		Type:        "LineString",
		Coordinates: coords,
	})
	if err != nil {
		return nil, err
	}

	backendRequests.Inc()
	key := requestKey{
		srid: cs.Code(),
		body: string(body),
	}
	if q.requestCache == nil {
		return q.fetch(ctx, key)
	}
	return q.requestCache.Get(ctx, key, otter.LoaderFunc[requestKey, []BackendPoint](q.fetch))
}

// fetch sends the request identified by key to the backend.
func (q *HTTPQuerier) fetch(ctx context.Context, key requestKey) ([]BackendPoint, error) {
	backendCacheMisses.Inc()

	requestURL, err := url.Parse(q.baseURL)
	if err != nil {
		return nil, err
	}
	values := requestURL.Query()
	values.Set("sr", strconv.Itoa(key.srid))
	values.Set("offset", "0")
	values.Set("distinct_points", "true")
	requestURL.RawQuery = values.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL.String(), strings.NewReader(key.body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := q.httpClient.Do(request)
	if err != nil {
		backendRequestErrors.Inc()
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBodySize))
	if err != nil {
		backendRequestErrors.Inc()
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	switch {
	case response.StatusCode == http.StatusRequestEntityTooLarge,
		response.StatusCode == http.StatusBadRequest && bytes.Contains(bytes.ToLower(responseBody), []byte("too many")):
		backendRequestErrors.Inc()
		return nil, fmt.Errorf("%s: %w", response.Status, ErrTooManyPoints)
	case response.StatusCode != http.StatusOK:
		backendRequestErrors.Inc()
		return nil, fmt.Errorf("%w: %s", ErrNetwork, response.Status)
	}

	var backendPoints []BackendPoint
	if err := json.Unmarshal(responseBody, &backendPoints); err != nil {
		backendRequestErrors.Inc()
		return nil, fmt.Errorf("%w: %w", ErrIncompleteBackendResponse, err)
	}
	// Errors are not cached, so a short response is retried on the next query.
	if len(backendPoints) <= 2 {
		backendRequestErrors.Inc()
		return nil, fmt.Errorf("%d points: %w", len(backendPoints), ErrIncompleteBackendResponse)
	}
	return backendPoints, nil
}

package coordsys

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twpayne/go-proj/v11"
)

var (
	projCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevationprofile_proj_cache_hits_total",
		Help: "The total number of hits on the transformation cache",
	})
	projCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevationprofile_proj_cache_misses_total",
		Help: "The total number of misses on the transformation cache",
	})
)

// A Reprojector transforms coordinates between coordinate systems. It must not
// modify its arguments.
type Reprojector interface {
	Reproject(source, target *CoordinateSystem, coords [][]float64) ([][]float64, error)
}

type transformationKey struct {
	source int
	target int
}

// A ProjReprojector is a Reprojector backed by PROJ.
type ProjReprojector struct {
	mutex     sync.Mutex
	cacheSize int
	pjCache   *lru.Cache[transformationKey, *proj.PJ]
}

// A ProjReprojectorOption sets an option on a ProjReprojector.
type ProjReprojectorOption func(*ProjReprojector)

// NewProjReprojector returns a new ProjReprojector.
func NewProjReprojector(options ...ProjReprojectorOption) (*ProjReprojector, error) {
	r := &ProjReprojector{
		cacheSize: 16,
	}
	for _, option := range options {
		option(r)
	}

	var err error
	r.pjCache, err = lru.NewWithEvict(r.cacheSize, func(key transformationKey, pj *proj.PJ) {
		pj.Destroy()
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// WithProjCacheSize sets the number of transformations kept open.
func WithProjCacheSize(cacheSize int) ProjReprojectorOption {
	return func(r *ProjReprojector) {
		r.cacheSize = cacheSize
	}
}

// Reproject returns coords transformed from source to target. Coordinates are
// in x, y (easting, northing or longitude, latitude) order.
func (r *ProjReprojector) Reproject(source, target *CoordinateSystem, coords [][]float64) ([][]float64, error) {
	reprojected := cloneCoords(coords)
	if source.Equal(target) || len(coords) == 0 {
		return reprojected, nil
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	pj, err := r.getPJCached(source, target)
	if err != nil {
		return nil, err
	}
	if err := pj.ForwardFloat64Slices(reprojected); err != nil {
		return nil, err
	}
	return reprojected, nil
}

// Close releases all transformations held by r.
func (r *ProjReprojector) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.pjCache.Purge()
}

// getPJCached returns the transformation from source to target, using the
// cache if possible. r.mutex must be held.
func (r *ProjReprojector) getPJCached(source, target *CoordinateSystem) (*proj.PJ, error) {
	key := transformationKey{
		source: source.Code(),
		target: target.Code(),
	}
	if pj, ok := r.pjCache.Get(key); ok {
		projCacheHits.Inc()
		return pj, nil
	}
	projCacheMisses.Inc()

	pj, err := proj.NewCRSToCRS(source.ProjDefinition(), target.ProjDefinition(), nil)
	if err != nil {
		return nil, err
	}
	defer pj.Destroy()

	// Force x, y order regardless of the axis order declared by the CRS.
	normalizedPJ, err := pj.NormalizeForVisualization()
	if err != nil {
		return nil, err
	}
	r.pjCache.Add(key, normalizedPJ)
	return normalizedPJ, nil
}

package sphere

import (
	"fmt"
	"math"

	geo "github.com/kellydunn/golang-geo"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/geometry"
)

var _ geometry.Geodesy = (*Geodesy)(nil)

// Geodesy uses golang-geo's haversine formulas (mean Earth radius 6371 km).
type Geodesy struct{}

func NewGeodesy() *Geodesy {
	return &Geodesy{}
}

func (g *Geodesy) Distance(a, b domain.GeoPoint) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return toPoint(a).GreatCircleDistance(toPoint(b)), nil
}

func (g *Geodesy) Destination(p domain.GeoPoint, distanceKm float64, bearing geometry.Bearing) (domain.GeoPoint, error) {
	if err := p.Validate(); err != nil {
		return domain.GeoPoint{}, err
	}
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return domain.GeoPoint{}, fmt.Errorf("distance %v: %w", distanceKm, domain.ErrInvalidRadius)
	}
	dst := toPoint(p).PointAtDistanceAndBearing(distanceKm, float64(bearing))
	return domain.GeoPoint{Lat: dst.Lat(), Lon: dst.Lng()}, nil
}

func toPoint(p domain.GeoPoint) *geo.Point {
	return geo.NewPoint(p.Lat, p.Lon)
}

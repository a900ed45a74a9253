package geometry

import (
	"github.com/mt-rahman/geofencing/module/core/domain"
)

// Bearing is a compass bearing in degrees clockwise from north.
type Bearing float64

const (
	North Bearing = 0
	East  Bearing = 90
	South Bearing = 180
	West  Bearing = 270
)

// Geodesy works on a spherical Earth in kilometres.
type Geodesy interface {
	Distance(a, b domain.GeoPoint) (float64, error)
	Destination(p domain.GeoPoint, distanceKm float64, bearing Bearing) (domain.GeoPoint, error)
}

// Planar treats (latitude, longitude) as flat (x, y) coordinates.
type Planar interface {
	Polygon(vertices []domain.GeoPoint) (Area, error)
	Buffer(path []domain.GeoPoint, distance float64) (Area, error)
}

// Area is a closed planar region. Contains is true only for interior
// points; points on the boundary are outside.
type Area interface {
	Contains(p domain.GeoPoint) bool
	GeoJSON() ([]byte, error)
}

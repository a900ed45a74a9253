package domain

import (
	"fmt"
	"math"
)

type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate reports ErrInvalidCoordinate when p lies outside WGS84 ranges.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v: %w", p.Lat, ErrInvalidCoordinate)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v: %w", p.Lon, ErrInvalidCoordinate)
	}
	return nil
}

type Circle struct {
	Center   GeoPoint
	RadiusKm float64
}

func NewCircle(center GeoPoint, radiusKm float64) (Circle, error) {
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		return Circle{}, fmt.Errorf("circle radius %v: %w", radiusKm, ErrInvalidRadius)
	}
	return Circle{Center: center, RadiusKm: radiusKm}, nil
}

// Polygon is an implicitly closed ring.
type Polygon struct {
	Vertices []GeoPoint
}

func NewPolygon(vertices []GeoPoint) (Polygon, error) {
	for _, v := range vertices {
		if err := v.Validate(); err != nil {
			return Polygon{}, fmt.Errorf("polygon vertex: %w", err)
		}
	}
	if n := distinctVertices(vertices); n < 3 {
		return Polygon{}, fmt.Errorf("polygon has %d distinct vertices, need 3: %w", n, ErrInvalidPolygon)
	}
	return Polygon{Vertices: vertices}, nil
}

// Corridor is an open route widened by PlanarRadius on each side.
// PlanarRadius is expressed in coordinate units (degrees on a flat plane),
// not kilometres; one degree of longitude shrinks with latitude.
type Corridor struct {
	Route        []GeoPoint
	PlanarRadius float64
}

func NewCorridor(route []GeoPoint, planarRadius float64) (Corridor, error) {
	if len(route) < 2 {
		return Corridor{}, fmt.Errorf("route has %d vertices, need 2: %w", len(route), ErrInvalidRoute)
	}
	for _, v := range route {
		if err := v.Validate(); err != nil {
			return Corridor{}, fmt.Errorf("route vertex: %w", err)
		}
	}
	if math.IsNaN(planarRadius) || planarRadius < 0 {
		return Corridor{}, fmt.Errorf("corridor radius %v: %w", planarRadius, ErrInvalidRadius)
	}
	return Corridor{Route: route, PlanarRadius: planarRadius}, nil
}

func distinctVertices(vertices []GeoPoint) int {
	seen := make(map[GeoPoint]struct{}, len(vertices))
	for _, v := range vertices {
		seen[v] = struct{}{}
	}
	return len(seen)
}

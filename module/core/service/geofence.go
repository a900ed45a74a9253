package service

import (
	"fmt"
	"math"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/geometry"
)

// GeofenceService answers containment questions for circles, rectangles,
// polygons and corridors. It holds no mutable state and is safe for
// concurrent use.
type GeofenceService struct {
	geodesy    geometry.Geodesy
	planar     geometry.Planar
	precedence domain.Precedence
}

func NewGeofenceService(geodesy geometry.Geodesy, planar geometry.Planar, precedence domain.Precedence) *GeofenceService {
	if precedence == "" {
		precedence = domain.PreferDerived
	}
	return &GeofenceService{
		geodesy:    geodesy,
		planar:     planar,
		precedence: precedence,
	}
}

// IsWithinCircle reports whether obj is at most radiusKm great-circle
// kilometres from center.
func (s *GeofenceService) IsWithinCircle(obj, center domain.GeoPoint, radiusKm float64) (bool, error) {
	circle, err := domain.NewCircle(center, radiusKm)
	if err != nil {
		return false, err
	}
	dist, err := s.geodesy.Distance(obj, circle.Center)
	if err != nil {
		return false, err
	}
	return dist <= circle.RadiusKm, nil
}

// IsWithinRectangle resolves in and tests obj against the resulting box.
// An input without a precedence uses the service default.
func (s *GeofenceService) IsWithinRectangle(obj domain.GeoPoint, in domain.RectangleInput) (bool, error) {
	if in.Precedence == "" {
		in.Precedence = s.precedence
	}
	cfg, err := in.Resolve()
	if err != nil {
		return false, err
	}
	return s.IsWithinBounds(obj, cfg)
}

func (s *GeofenceService) IsWithinBounds(obj domain.GeoPoint, cfg domain.RectangleConfig) (bool, error) {
	if err := obj.Validate(); err != nil {
		return false, err
	}
	bounds, err := s.RectangleBounds(cfg)
	if err != nil {
		return false, err
	}
	return bounds.Contains(obj), nil
}

// RectangleBounds returns the boundaries of cfg. Derived rectangles project
// the centre half the height north and south and half the width east and
// west; across the antimeridian East exceeds 180 or West falls below -180.
func (s *GeofenceService) RectangleBounds(cfg domain.RectangleConfig) (domain.Bounds, error) {
	switch c := cfg.(type) {
	case domain.Bounds:
		if err := c.Validate(); err != nil {
			return domain.Bounds{}, err
		}
		return c, nil
	case domain.DerivedRectangle:
		if err := c.Validate(); err != nil {
			return domain.Bounds{}, err
		}
		return s.deriveBounds(c)
	default:
		return domain.Bounds{}, fmt.Errorf("rectangle config %T: %w", cfg, domain.ErrIncompleteConfiguration)
	}
}

func (s *GeofenceService) deriveBounds(d domain.DerivedRectangle) (domain.Bounds, error) {
	north, err := s.geodesy.Destination(d.Center, d.HeightKm/2, geometry.North)
	if err != nil {
		return domain.Bounds{}, fmt.Errorf("north bound: %w", err)
	}
	south, err := s.geodesy.Destination(d.Center, d.HeightKm/2, geometry.South)
	if err != nil {
		return domain.Bounds{}, fmt.Errorf("south bound: %w", err)
	}
	east, err := s.geodesy.Destination(d.Center, d.WidthKm/2, geometry.East)
	if err != nil {
		return domain.Bounds{}, fmt.Errorf("east bound: %w", err)
	}
	west, err := s.geodesy.Destination(d.Center, d.WidthKm/2, geometry.West)
	if err != nil {
		return domain.Bounds{}, fmt.Errorf("west bound: %w", err)
	}
	return domain.Bounds{
		North: north.Lat,
		South: south.Lat,
		East:  unwrapLon(east.Lon, d.Center.Lon),
		West:  unwrapLon(west.Lon, d.Center.Lon),
	}, nil
}

// golang-geo wraps projected longitudes into [-180, 180). Taking the
// offset from the centre modulo one turn undoes that, so a box crossing
// the antimeridian keeps East >= center >= West.
func unwrapLon(lon, center float64) float64 {
	return center + math.Remainder(lon-center, 360)
}

// IsWithinPolygon treats the vertices as a flat (lat, lon) ring. Points on
// the ring itself are not within.
func (s *GeofenceService) IsWithinPolygon(obj domain.GeoPoint, vertices []domain.GeoPoint) (bool, error) {
	if err := obj.Validate(); err != nil {
		return false, err
	}
	polygon, err := domain.NewPolygon(vertices)
	if err != nil {
		return false, err
	}
	area, err := s.planar.Polygon(polygon.Vertices)
	if err != nil {
		return false, err
	}
	return area.Contains(obj), nil
}

// IsWithinCorridor buffers route by planarRadius and tests obj against the
// interior. planarRadius is in coordinate degrees, not kilometres.
func (s *GeofenceService) IsWithinCorridor(obj domain.GeoPoint, route []domain.GeoPoint, planarRadius float64) (bool, error) {
	if err := obj.Validate(); err != nil {
		return false, err
	}
	area, err := s.corridorArea(route, planarRadius)
	if err != nil {
		return false, err
	}
	return area.Contains(obj), nil
}

// CorridorArea returns the buffered route as a GeoJSON polygon.
func (s *GeofenceService) CorridorArea(route []domain.GeoPoint, planarRadius float64) ([]byte, error) {
	area, err := s.corridorArea(route, planarRadius)
	if err != nil {
		return nil, err
	}
	return area.GeoJSON()
}

func (s *GeofenceService) corridorArea(route []domain.GeoPoint, planarRadius float64) (geometry.Area, error) {
	corridor, err := domain.NewCorridor(route, planarRadius)
	if err != nil {
		return nil, err
	}
	return s.planar.Buffer(corridor.Route, corridor.PlanarRadius)
}

// Check dispatches req to the check named by req.Shape.
func (s *GeofenceService) Check(req *domain.CheckRequest) (bool, error) {
	switch req.Shape {
	case domain.ShapeCircle:
		if req.Center == nil {
			return false, fmt.Errorf("circle center required: %w", domain.ErrInvalidCoordinate)
		}
		return s.IsWithinCircle(req.Object, *req.Center, req.RadiusKm)
	case domain.ShapeRectangle:
		if req.Rectangle == nil {
			return false, fmt.Errorf("rectangle required: %w", domain.ErrIncompleteConfiguration)
		}
		return s.IsWithinRectangle(req.Object, *req.Rectangle)
	case domain.ShapePolygon:
		return s.IsWithinPolygon(req.Object, req.Vertices)
	case domain.ShapeCorridor:
		return s.IsWithinCorridor(req.Object, req.Vertices, req.PlanarRadius)
	default:
		return false, fmt.Errorf("shape %q: %w", req.Shape, domain.ErrUnknownShape)
	}
}

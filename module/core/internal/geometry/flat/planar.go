package flat

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/geometry"
)

var _ geometry.Planar = (*Planar)(nil)

// DefaultQuadSegments is the number of segments used to approximate a
// quarter circle in buffer caps and joins.
const DefaultQuadSegments = 16

// Planar maps latitude to X and longitude to Y and works on ctessum/geom
// polygons.
type Planar struct {
	quadSegments int
}

func NewPlanar(quadSegments int) *Planar {
	if quadSegments <= 0 {
		quadSegments = DefaultQuadSegments
	}
	return &Planar{quadSegments: quadSegments}
}

func (p *Planar) Polygon(vertices []domain.GeoPoint) (geometry.Area, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("ring has %d vertices: %w", len(vertices), domain.ErrInvalidPolygon)
	}
	ring := make([]geom.Point, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, toPoint(v))
	}
	return &area{parts: []geom.Polygon{{closeRing(ring)}}}, nil
}

// Buffer widens path by distance on both sides with round caps and joins.
// The result is kept as one capsule per segment; their union is the
// buffered area. A zero distance yields an empty area.
func (p *Planar) Buffer(path []domain.GeoPoint, distance float64) (geometry.Area, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("path has %d vertices: %w", len(path), domain.ErrInvalidRoute)
	}
	if math.IsNaN(distance) || distance < 0 {
		return nil, fmt.Errorf("buffer distance %v: %w", distance, domain.ErrInvalidRadius)
	}
	if distance == 0 {
		return &area{}, nil
	}

	pts := make([]geom.Point, 0, len(path))
	for _, v := range path {
		pt := toPoint(v)
		if len(pts) > 0 && pts[len(pts)-1].Equals(pt) {
			continue
		}
		pts = append(pts, pt)
	}

	if len(pts) == 1 {
		return &area{parts: []geom.Polygon{p.disc(pts[0], distance)}}, nil
	}

	parts := make([]geom.Polygon, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		parts = append(parts, p.capsule(pts[i-1], pts[i], distance))
	}
	return &area{parts: parts}, nil
}

// capsule is the set of points within r of segment ab, drawn
// counter-clockwise: half circle around b, then half circle around a.
func (p *Planar) capsule(a, b geom.Point, r float64) geom.Polygon {
	theta := math.Atan2(b.Y-a.Y, b.X-a.X)
	steps := 2 * p.quadSegments

	ring := make([]geom.Point, 0, 2*(steps+1)+1)
	ring = appendArc(ring, b, r, theta-math.Pi/2, steps)
	ring = appendArc(ring, a, r, theta+math.Pi/2, steps)
	return geom.Polygon{closeRing(ring)}
}

func (p *Planar) disc(c geom.Point, r float64) geom.Polygon {
	steps := 4 * p.quadSegments
	ring := make([]geom.Point, 0, steps+1)
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		ring = append(ring, geom.Point{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)})
	}
	return geom.Polygon{closeRing(ring)}
}

// appendArc adds a half circle of radius r around c starting at angle start.
func appendArc(ring []geom.Point, c geom.Point, r, start float64, steps int) []geom.Point {
	for i := 0; i <= steps; i++ {
		angle := start + math.Pi*float64(i)/float64(steps)
		ring = append(ring, geom.Point{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)})
	}
	return ring
}

func closeRing(ring []geom.Point) []geom.Point {
	if len(ring) > 0 && !ring[0].Equals(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring
}

func toPoint(p domain.GeoPoint) geom.Point {
	return geom.Point{X: p.Lat, Y: p.Lon}
}

type area struct {
	parts []geom.Polygon
}

// Contains ignores boundary points of each part, so a point on the outline
// of one capsule still counts when it is interior to a neighbouring one.
func (a *area) Contains(p domain.GeoPoint) bool {
	pt := toPoint(p)
	for _, part := range a.parts {
		if pt.Within(part) == geom.Inside {
			return true
		}
	}
	return false
}

// GeoJSON encodes the outline as a Polygon geometry in [longitude, latitude]
// order.
func (a *area) GeoJSON() ([]byte, error) {
	outline := geom.Polygon{}
	if len(a.parts) > 0 {
		outline = a.parts[0]
		for _, part := range a.parts[1:] {
			outline = outline.Union(part)
		}
	}

	lonLat := make(geom.Polygon, len(outline))
	for i, ring := range outline {
		lonLat[i] = make([]geom.Point, len(ring))
		for j, pt := range ring {
			lonLat[i][j] = geom.Point{X: pt.Y, Y: pt.X}
		}
	}

	b, err := geojson.Encode(lonLat)
	if err != nil {
		return nil, fmt.Errorf("encode area: %w", err)
	}
	return b, nil
}

package domain

import (
	"fmt"
	"math"
)

// RectangleConfig is either a DerivedRectangle or explicit Bounds.
type RectangleConfig interface {
	rectangleConfig()
}

// DerivedRectangle is centred on Center and spans HeightKm north-south and
// WidthKm west-east over a spherical Earth.
type DerivedRectangle struct {
	Center   GeoPoint
	HeightKm float64
	WidthKm  float64
}

func (DerivedRectangle) rectangleConfig() {}

func (d DerivedRectangle) Validate() error {
	if err := d.Center.Validate(); err != nil {
		return fmt.Errorf("rectangle center: %w", err)
	}
	if math.IsNaN(d.HeightKm) || d.HeightKm < 0 || math.IsNaN(d.WidthKm) || d.WidthKm < 0 {
		return fmt.Errorf("rectangle size %vx%v km: %w", d.HeightKm, d.WidthKm, ErrInvalidRadius)
	}
	return nil
}

// Bounds are boundary latitudes (North, South) and longitudes (East, West).
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

func (Bounds) rectangleConfig() {}

// Validate rejects bounds outside WGS84 ranges or with north < south or
// east < west. Explicit boxes cannot cross the antimeridian; derived boxes
// that do carry East > 180 or West < -180 instead.
func (b Bounds) Validate() error {
	if err := (GeoPoint{Lat: b.North, Lon: b.East}).Validate(); err != nil {
		return fmt.Errorf("north/east bound: %w", ErrInvalidBounds)
	}
	if err := (GeoPoint{Lat: b.South, Lon: b.West}).Validate(); err != nil {
		return fmt.Errorf("south/west bound: %w", ErrInvalidBounds)
	}
	if b.North < b.South {
		return fmt.Errorf("north %v below south %v: %w", b.North, b.South, ErrInvalidBounds)
	}
	if b.East < b.West {
		return fmt.Errorf("east %v below west %v: %w", b.East, b.West, ErrInvalidBounds)
	}
	return nil
}

// Contains is inclusive on all four edges. The longitude is also tried one
// turn east and west so boxes extending past ±180 match wrapped points.
func (b Bounds) Contains(p GeoPoint) bool {
	if p.Lat < b.South || p.Lat > b.North {
		return false
	}
	for _, lon := range []float64{p.Lon, p.Lon - 360, p.Lon + 360} {
		if b.West <= lon && lon <= b.East {
			return true
		}
	}
	return false
}

type Precedence string

const (
	// PreferDerived lets a complete derived configuration override any
	// explicit bounds supplied alongside it.
	PreferDerived  Precedence = "derived"
	PreferExplicit Precedence = "explicit"
)

// ParsePrecedence accepts "derived", "explicit" or an empty string, which
// means PreferDerived. Matching is exact.
func ParsePrecedence(s string) (Precedence, error) {
	switch p := Precedence(s); p {
	case "":
		return PreferDerived, nil
	case PreferDerived, PreferExplicit:
		return p, nil
	default:
		return "", fmt.Errorf("precedence %q, want %q or %q: %w", s, PreferDerived, PreferExplicit, ErrInvalidPrecedence)
	}
}

// RectangleInput is the loose, optional-argument form of a rectangle.
// Resolve turns it into a RectangleConfig.
type RectangleInput struct {
	Center     *GeoPoint  `json:"center,omitempty"`
	HeightKm   *float64   `json:"height_km,omitempty"`
	WidthKm    *float64   `json:"width_km,omitempty"`
	North      *float64   `json:"north,omitempty"`
	South      *float64   `json:"south,omitempty"`
	East       *float64   `json:"east,omitempty"`
	West       *float64   `json:"west,omitempty"`
	Precedence Precedence `json:"precedence,omitempty"`
}

// Resolve picks the rectangle mode. A derived configuration is a candidate
// only when center, height and width are all present and valid; explicit
// bounds only when all four are present. Which candidate wins when both
// exist follows Precedence (derived by default). Without any candidate the
// result is ErrIncompleteConfiguration.
func (in RectangleInput) Resolve() (RectangleConfig, error) {
	derived, derivedErr := in.derived()
	explicit, explicitErr := in.explicit()

	switch in.Precedence {
	case "", PreferDerived:
		if derivedErr == nil {
			return derived, nil
		}
		if explicitErr == nil {
			return explicit, nil
		}
	case PreferExplicit:
		if explicitErr == nil {
			return explicit, nil
		}
		if derivedErr == nil {
			return derived, nil
		}
	default:
		return nil, fmt.Errorf("precedence %q: %w", in.Precedence, ErrInvalidPrecedence)
	}

	return nil, fmt.Errorf("derived mode: %v; explicit mode: %v: %w", derivedErr, explicitErr, ErrIncompleteConfiguration)
}

func (in RectangleInput) derived() (DerivedRectangle, error) {
	if in.Center == nil || in.HeightKm == nil || in.WidthKm == nil {
		return DerivedRectangle{}, fmt.Errorf("center, height_km and width_km required")
	}
	d := DerivedRectangle{Center: *in.Center, HeightKm: *in.HeightKm, WidthKm: *in.WidthKm}
	if err := d.Validate(); err != nil {
		return DerivedRectangle{}, err
	}
	return d, nil
}

func (in RectangleInput) explicit() (Bounds, error) {
	if in.North == nil || in.South == nil || in.East == nil || in.West == nil {
		return Bounds{}, fmt.Errorf("north, south, east and west required")
	}
	return Bounds{North: *in.North, South: *in.South, East: *in.East, West: *in.West}, nil
}

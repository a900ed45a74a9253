package domain

type Shape string

const (
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rectangle"
	ShapePolygon   Shape = "polygon"
	ShapeCorridor  Shape = "corridor"
)

// CheckRequest carries one containment check over any transport. Only the
// fields relevant to Shape are read.
type CheckRequest struct {
	RequestID string   `json:"request_id,omitempty"`
	ReplyTo   string   `json:"reply_to,omitempty"`
	Shape     Shape    `json:"shape"`
	Object    GeoPoint `json:"object"`

	// circle
	Center   *GeoPoint `json:"center,omitempty"`
	RadiusKm float64   `json:"radius_km,omitempty"`

	// rectangle
	Rectangle *RectangleInput `json:"rectangle,omitempty"`

	// polygon vertices or corridor route
	Vertices []GeoPoint `json:"vertices,omitempty"`

	// corridor, in coordinate units rather than kilometres
	PlanarRadius float64 `json:"planar_radius,omitempty"`
}

type CheckResult struct {
	RequestID string `json:"request_id,omitempty"`
	Shape     Shape  `json:"shape"`
	Within    bool   `json:"within"`
	Error     string `json:"error,omitempty"`
}

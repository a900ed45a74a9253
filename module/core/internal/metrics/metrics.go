package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mt-rahman/geofencing/module/core/domain"
)

const (
	TransportHTTP = "http"
	TransportMQTT = "mqtt"
	TransportAMQP = "amqp"
)

var checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "geofencing",
	Subsystem: "checks",
	Name:      "total",
	Help:      "Containment checks answered, by transport, shape and outcome",
}, []string{"transport", "shape", "outcome"})

// ObserveCheck records one answered check. outcome is "within", "outside",
// "invalid" for rejected input or "error".
func ObserveCheck(transport string, shape domain.Shape, within bool, err error) {
	checksTotal.WithLabelValues(transport, shapeLabel(shape), outcome(within, err)).Inc()
}

func shapeLabel(shape domain.Shape) string {
	switch shape {
	case domain.ShapeCircle, domain.ShapeRectangle, domain.ShapePolygon, domain.ShapeCorridor:
		return string(shape)
	}
	return "unknown"
}

func outcome(within bool, err error) string {
	switch {
	case err != nil && domain.IsInputError(err):
		return "invalid"
	case err != nil:
		return "error"
	case within:
		return "within"
	default:
		return "outside"
	}
}

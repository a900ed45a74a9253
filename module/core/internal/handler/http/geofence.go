package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/metrics"
)

type geofenceService interface {
	Check(req *domain.CheckRequest) (bool, error)
	CorridorArea(route []domain.GeoPoint, planarRadius float64) ([]byte, error)
}

type checkResponse struct {
	Shape  domain.Shape `json:"shape"`
	Within bool         `json:"within"`
}

type corridorAreaRequest struct {
	Route        []domain.GeoPoint `json:"route" binding:"required"`
	PlanarRadius float64           `json:"planar_radius"`
}

type GeofenceHandler struct {
	geofenceSvc geofenceService
}

func NewGeofenceHandler(geofenceSvc geofenceService) *GeofenceHandler {
	return &GeofenceHandler{geofenceSvc: geofenceSvc}
}

func (h *GeofenceHandler) Register(r *gin.RouterGroup) {
	r.POST("/geofences/:shape/check", h.Check)
	r.POST("/areas/corridor", h.CorridorArea)
}

func (h *GeofenceHandler) Check(c *gin.Context) {
	var req domain.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Shape = domain.Shape(c.Param("shape"))

	within, err := h.geofenceSvc.Check(&req)
	metrics.ObserveCheck(metrics.TransportHTTP, req.Shape, within, err)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkResponse{Shape: req.Shape, Within: within})
}

func (h *GeofenceHandler) CorridorArea(c *gin.Context) {
	var req corridorAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	body, err := h.geofenceSvc.CorridorArea(req.Route, req.PlanarRadius)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/geo+json", body)
}

func writeError(c *gin.Context, err error) {
	if domain.IsInputError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "geofence check failed"})
}

package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/adapters/amap"
	"github.com/seafuel/service-voyage/internal/domain/route"
	"github.com/seafuel/service-voyage/internal/platform/apperr"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/seafuel/service-voyage/internal/platform/middleware"
	"github.com/seafuel/service-voyage/internal/platform/response"
)

// ReverseGeocoder resolves a coordinate to an address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, p route.Point) (*amap.Location, error)
}

// GeocodeHandler serves reverse-geocoding lookups for the map page.
type GeocodeHandler struct {
	geocoder ReverseGeocoder
}

// NewGeocodeHandler creates a new GeocodeHandler.
func NewGeocodeHandler(geocoder ReverseGeocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder}
}

// RegisterRoutes registers the lookup route.
func (h *GeocodeHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/get_location/:lng/:lat", middleware.AuthMiddleware(jwtManager), h.GetLocation)
}

// GetLocation handles GET /get_location/:lng/:lat.
func (h *GeocodeHandler) GetLocation(c *gin.Context) {
	lng, err := strconv.ParseFloat(c.Param("lng"), 64)
	if err != nil {
		response.Error(c, apperr.NewFieldError("lng", "must be a number"))
		return
	}
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		response.Error(c, apperr.NewFieldError("lat", "must be a number"))
		return
	}
	p := route.Point{Lng: lng, Lat: lat}
	if !p.Valid() {
		response.Error(c, apperr.NewValidationError("coordinates out of range: lng must be within [-180, 180] and lat within [-90, 90]"))
		return
	}

	loc, err := h.geocoder.ReverseGeocode(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, loc)
}

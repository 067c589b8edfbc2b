package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/application"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/seafuel/service-voyage/internal/platform/middleware"
	"github.com/seafuel/service-voyage/internal/platform/response"
)

// RouteHandler handles HTTP requests for route lookups.
type RouteHandler struct {
	service *application.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers all route API routes.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtManager))
	{
		api.GET("/routes", h.ListRoutes)
		api.GET("/routes/resolve", h.Resolve)
		api.GET("/places", h.ListPlaces)
	}
}

// ListRoutes handles GET /api/v1/routes.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	response.Success(c, h.service.ListRoutes())
}

// ListPlaces handles GET /api/v1/places.
func (h *RouteHandler) ListPlaces(c *gin.Context) {
	response.Success(c, h.service.ListPlaces())
}

// Resolve handles GET /api/v1/routes/resolve?start=&end=.
func (h *RouteHandler) Resolve(c *gin.Context) {
	result, err := h.service.Resolve(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/application"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/seafuel/service-voyage/internal/platform/middleware"
)

// PageHandler serves the landing redirect and the route map page.
type PageHandler struct {
	routes  *application.RouteService
	amapKey string
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(routes *application.RouteService, amapKey string) *PageHandler {
	return &PageHandler{routes: routes, amapKey: amapKey}
}

// RegisterRoutes registers the page routes.
func (h *PageHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/", h.Index)

	pages := r.Group("")
	pages.Use(middleware.PageAuthMiddleware(jwtManager, LoginPagePath))
	{
		pages.GET(RouteMapPath, h.RouteMap)
	}
}

// Index redirects to the sign-in page.
func (h *PageHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPagePath)
}

// RouteMap renders the map with the port selectors and the calculator.
func (h *PageHandler) RouteMap(c *gin.Context) {
	data := gin.H{
		"AmapKey": h.amapKey,
		"Places":  h.routes.ListPlaces(),
	}
	if key, ok := h.routes.DefaultRoute(); ok {
		data["Default"] = key
	}
	username, _ := middleware.GetUsername(c)
	data["Username"] = username

	c.HTML(http.StatusOK, "route_map.html", data)
}

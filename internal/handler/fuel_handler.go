package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/application"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/seafuel/service-voyage/internal/platform/middleware"
	"github.com/seafuel/service-voyage/internal/platform/response"
)

// FuelHandler serves the fuel-saving calculator as a page and as JSON.
type FuelHandler struct {
	service *application.FuelService
}

// NewFuelHandler creates a new FuelHandler.
func NewFuelHandler(service *application.FuelService) *FuelHandler {
	return &FuelHandler{service: service}
}

// RegisterRoutes registers the calculator routes.
func (h *FuelHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/fuel_saving", middleware.PageAuthMiddleware(jwtManager, LoginPagePath), h.ResultPage)
	r.POST("/api/v1/fuel-saving", middleware.AuthMiddleware(jwtManager), h.Calculate)
}

// Calculate handles POST /api/v1/fuel-saving with a JSON or form body.
func (h *FuelHandler) Calculate(c *gin.Context) {
	var req application.FuelSavingRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	username, _ := middleware.GetUsername(c)
	result, err := h.service.Calculate(c.Request.Context(), username, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ResultPage handles GET /fuel_saving and renders the result page.
func (h *FuelHandler) ResultPage(c *gin.Context) {
	var req application.FuelSavingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.HTML(http.StatusBadRequest, "fuel_result.html", gin.H{"Error": err.Error()})
		return
	}

	username, _ := middleware.GetUsername(c)
	result, err := h.service.Calculate(c.Request.Context(), username, req)
	if err != nil {
		status, message := response.StatusOf(err)
		c.HTML(status, "fuel_result.html", gin.H{"Error": message})
		return
	}

	c.HTML(http.StatusOK, "fuel_result.html", gin.H{
		"Result":    result,
		"ExportURL": exportURL(result, c.Query("start"), c.Query("end")),
	})
}

func exportURL(result *application.FuelSavingDTO, start, end string) string {
	q := url.Values{}
	q.Set("original_speed", formatFloat(result.OriginalSpeed))
	q.Set("optimized_speed", formatFloat(result.OptimizedSpeed))
	q.Set("distance", formatFloat(result.Distance))
	q.Set("saving", formatFloat(result.Saving))
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	return "/export_pdf?" + q.Encode()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/application"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/seafuel/service-voyage/internal/platform/middleware"
	"github.com/seafuel/service-voyage/internal/platform/response"
)

// ReportHandler serves report downloads.
type ReportHandler struct {
	service *application.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *application.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers the export route.
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/export_pdf", middleware.PageAuthMiddleware(jwtManager, LoginPagePath), h.ExportPDF)
}

// ExportPDF handles GET /export_pdf.
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	var req application.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.HTML(http.StatusBadRequest, "fuel_result.html", gin.H{"Error": err.Error()})
		return
	}

	username, _ := middleware.GetUsername(c)
	out, err := h.service.Export(c.Request.Context(), username, req)
	if err != nil {
		status, message := response.StatusOf(err)
		c.HTML(status, "fuel_result.html", gin.H{"Error": message})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Header("X-Report-ID", out.ID)
	c.Data(http.StatusOK, out.ContentType, out.Body)
}

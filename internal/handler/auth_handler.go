package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/application"
	"github.com/seafuel/service-voyage/internal/platform/middleware"
	"github.com/seafuel/service-voyage/internal/platform/response"
)

// Page paths used for redirects.
const (
	LoginPagePath = "/login_page"
	RouteMapPath  = "/route_map"
)

// AuthHandler handles login and logout for both the browser and the API.
type AuthHandler struct {
	service      *application.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session
// cookie as HTTPS-only.
func NewAuthHandler(service *application.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, secureCookie: secureCookie}
}

// RegisterRoutes registers the login routes. None of them require authentication.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(LoginPagePath, h.LoginPage)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.FormLogin)
	r.GET("/logout", h.Logout)

	r.POST("/api/v1/auth/login", h.APILogin)
}

// LoginPage renders the sign-in form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Username": "", "Error": ""})
}

// FormLogin handles POST /login from the sign-in form.
func (h *AuthHandler) FormLogin(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Username": "", "Error": application.MsgCredentialsRequired})
		return
	}

	tok, err := h.service.Login(c.Request.Context(), req, application.ChannelForm)
	if err != nil {
		status, message := response.StatusOf(err)
		c.HTML(status, "login.html", gin.H{"Error": message, "Username": req.Username})
		return
	}

	maxAge := int(time.Until(tok.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, tok.AccessToken, maxAge, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, RouteMapPath)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, LoginPagePath)
}

// APILogin handles POST /api/v1/auth/login and returns a bearer token.
func (h *AuthHandler) APILogin(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, application.MsgCredentialsRequired)
		return
	}

	tok, err := h.service.Login(c.Request.Context(), req, application.ChannelAPI)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tok)
}

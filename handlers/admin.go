package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/internal/admin"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
	"github.com/signupdesk/signupdesk/backend/pkg/metrics"
	"github.com/signupdesk/signupdesk/backend/pkg/middleware"
)

// LoginRequest is the admin login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminHandler serves admin login and logout.
type AdminHandler struct {
	guard *admin.Guard
}

func NewAdminHandler(g *admin.Guard) *AdminHandler {
	return &AdminHandler{guard: g}
}

// Register mounts /api/admin routes on r; logout sits behind the auth gate.
func (h *AdminHandler) Register(r gin.IRouter, limit ...gin.HandlerFunc) {
	a := r.Group("/api/admin")
	a.POST("/login", append(limit, h.Login)...)
	a.POST("/logout", middleware.AuthMiddleware(h.guard), h.Logout)
}

// Login checks the credential pair and returns {token}.
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		metrics.AdminLogins.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	token, err := h.guard.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrUnauthorized) {
			metrics.AdminLogins.WithLabelValues("rejected").Inc()
			logger.Warnw("admin login rejected", "username", req.Username, "ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		fail(c, http.StatusInternalServerError, "Login failed", err)
		return
	}
	metrics.AdminLogins.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout revokes the caller's token when the guard issues revocable tokens.
func (h *AdminHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	if err := h.guard.Logout(c.Request.Context(), token); err != nil {
		fail(c, http.StatusInternalServerError, "Logout failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged-out"})
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/internal/admin"
	"github.com/signupdesk/signupdesk/backend/internal/broadcast"
	"github.com/signupdesk/signupdesk/backend/internal/submission/service"
	"github.com/signupdesk/signupdesk/backend/pkg/middleware"
)

// Deps carries everything the HTTP surface needs. Exporter and PublicLimit
// are optional.
type Deps struct {
	Guard       *admin.Guard
	Submissions *service.Service
	Broadcast   *broadcast.Service
	Exporter    Exporter
	// PublicLimit runs in front of the unauthenticated intake and login routes.
	PublicLimit gin.HandlerFunc
}

// Register mounts intake, admin and broadcast routes on r.
func Register(r *gin.Engine, d Deps) {
	var public []gin.HandlerFunc
	if d.PublicLimit != nil {
		public = append(public, d.PublicLimit)
	}

	RegisterSubmit(r, d.Submissions, public...)
	NewAdminHandler(d.Guard).Register(r, public...)

	api := r.Group("/api", middleware.AuthMiddleware(d.Guard))
	NewCustomerHandler(d.Submissions, d.Exporter).Register(api)
	NewSMSHandler(d.Broadcast).Register(api)
}

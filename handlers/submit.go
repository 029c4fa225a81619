package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/internal/submission"
	"github.com/signupdesk/signupdesk/backend/internal/submission/service"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
)

// RegisterSubmit mounts the public POST /submit intake endpoint. Extra
// handlers (rate limiting) run before intake.
func RegisterSubmit(r gin.IRouter, svc *service.Service, before ...gin.HandlerFunc) {
	r.POST("/submit", append(before, submitHandler(svc))...)
}

func submitHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p submission.Payload
		if err := bindOptionalJSON(c, &p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		rec, err := svc.Submit(c.Request.Context(), p)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Failed to save submission", err)
			return
		}
		logger.Debugf("submission stored id=%s", rec.ID)
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

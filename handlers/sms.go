package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/internal/broadcast"
)

const defaultHistoryLimit = 50

// SMSHandler serves broadcast dispatch and its history.
type SMSHandler struct {
	svc *broadcast.Service
}

func NewSMSHandler(svc *broadcast.Service) *SMSHandler {
	return &SMSHandler{svc: svc}
}

// Register mounts the routes on an already authenticated group.
func (h *SMSHandler) Register(api gin.IRouter) {
	api.POST("/send-sms", h.Send)
	api.GET("/sms/history", h.History)
}

func (h *SMSHandler) Send(c *gin.Context) {
	var req broadcast.Request
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	d, err := h.svc.Send(c.Request.Context(), req)
	switch {
	case errors.Is(err, broadcast.ErrMessageRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
		return
	case errors.Is(err, broadcast.ErrInvalidMode):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid mode"})
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, "SMS sending failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "recipients": len(d.Recipients), "dispatchId": d.ID})
}

func (h *SMSHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		limit = n
	}
	items, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load SMS history", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/internal/storage"
	"github.com/signupdesk/signupdesk/backend/internal/submission/service"
)

// Exporter uploads a snapshot and returns a download URL.
type Exporter interface {
	Export(ctx context.Context, key string, data []byte) (string, error)
}

// CustomerHandler serves the admin record surface. exporter may be nil.
type CustomerHandler struct {
	svc      *service.Service
	exporter Exporter
	now      func() time.Time
}

func NewCustomerHandler(svc *service.Service, exp Exporter) *CustomerHandler {
	return &CustomerHandler{svc: svc, exporter: exp, now: time.Now}
}

// Register mounts the routes on an already authenticated group.
func (h *CustomerHandler) Register(api gin.IRouter) {
	api.GET("/customers", h.List)
	api.GET("/customers/export", h.Export)
	api.DELETE("/customers/:id", h.Delete)
	api.POST("/customers/bulk-delete", h.BulkDelete)
}

func (h *CustomerHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load customers", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteOne(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, http.StatusInternalServerError, "Delete failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// BulkDelete reports count as the number of ids requested; removed is the
// number of records that actually existed.
func (h *CustomerHandler) BulkDelete(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.IDs == nil {
		req.IDs = []string{}
	}
	res, err := h.svc.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Bulk delete failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "bulk-deleted", "count": res.Requested, "removed": res.Removed})
}

// Export returns the collection as an indented JSON attachment, or uploads it
// and returns {url, key} when an exporter is configured.
func (h *CustomerHandler) Export(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Export failed", err)
		return
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		fail(c, http.StatusInternalServerError, "Export failed", err)
		return
	}
	key := storage.SnapshotKey(h.now())
	if h.exporter == nil {
		c.Header("Content-Disposition", `attachment; filename="submissions.json"`)
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}
	url, err := h.exporter.Export(c.Request.Context(), key, data)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Export failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "key": key, "count": len(records)})
}

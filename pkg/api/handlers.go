package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture/pkg/logger"
	"lead-capture/pkg/services"
)

// MaxBodyBytes caps the size of a lead submission body
const MaxBodyBytes = 16 << 10

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	leadService services.LeadService
	logger      *logger.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(leadService services.LeadService, log *logger.Logger) *Handlers {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handlers{
		leadService: leadService,
		logger:      log.WithComponent("api"),
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// CreateLead accepts a submission from the landing page form
func (h *Handlers) CreateLead(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "errors": []string{"Request body too large"}})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []string{"Invalid JSON body"}})
		return
	}
	if payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []string{"Invalid JSON body"}})
		return
	}

	lead, problems, err := h.leadService.Submit(c.Request.Context(), payload, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.internalError(c, "Error saving lead", err)
		return
	}
	if len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": problems})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"ok": true, "id": lead.ID})
}

// ListLeads exports every stored lead to an administrator
func (h *Handlers) ListLeads(c *gin.Context) {
	leads, err := h.leadService.List(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		h.serviceError(c, "Error listing leads", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": leads})
}

// DeleteLead erases the first lead matching the id or email in the path
func (h *Handlers) DeleteLead(c *gin.Context) {
	err := h.leadService.Delete(c.Request.Context(), c.GetHeader("Authorization"), c.Param("idOrEmail"))
	if err != nil {
		h.serviceError(c, "Error deleting lead", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handlers) serviceError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, services.ErrAdminDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "Admin API disabled"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
	case errors.Is(err, services.ErrLeadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Not found"})
	default:
		h.internalError(c, msg, err)
	}
}

func (h *Handlers) internalError(c *gin.Context, msg string, err error) {
	h.logger.Errorw(msg, "path", c.Request.URL.Path, "error", err)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Internal server error"})
}

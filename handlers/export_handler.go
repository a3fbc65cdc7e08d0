package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"uzazi-salama-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportHandler handles snapshot exports of a user's sections
type ExportHandler struct {
	exportService *service.ExportService
	log           *zap.SugaredLogger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService, log *zap.SugaredLogger) *ExportHandler {
	return &ExportHandler{exportService: exportService, log: log}
}

func exportPath(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("path"), "/")
}

// CreateExport handles POST /api/user/export
func (h *ExportHandler) CreateExport(c *gin.Context) {
	userID := currentUser(c)
	export, err := h.exportService.CreateExport(c.Request.Context(), userID, userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Infow("export created",
		"userID", userID,
		"path", export.StoragePath,
		"size", export.Size,
	)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    export,
	})
}

// DownloadExport handles GET /api/user/export/*path
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	p := exportPath(c)
	rc, err := h.exportService.OpenExport(c.Request.Context(), currentUser(c), p)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+path.Base(p)+`"`)
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.log.Warnw("export download interrupted", "path", p, "error", err)
	}
}

// DeleteExport handles DELETE /api/user/export/*path
func (h *ExportHandler) DeleteExport(c *gin.Context) {
	if err := h.exportService.DeleteExport(c.Request.Context(), currentUser(c), exportPath(c)); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Export deleted",
	})
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"uzazi-salama-backend/section"
	"uzazi-salama-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserDataHandler serves the per-user section document
type UserDataHandler struct {
	dataService *service.UserDataService
	log         *zap.SugaredLogger
}

// NewUserDataHandler creates a new user data handler
func NewUserDataHandler(dataService *service.UserDataService, log *zap.SugaredLogger) *UserDataHandler {
	return &UserDataHandler{dataService: dataService, log: log}
}

// SaveUserDataRequest represents the request body for saving a section
type SaveUserDataRequest struct {
	DataType string          `json:"dataType"`
	Data     json.RawMessage `json:"data"`
}

func (r SaveUserDataRequest) missing() bool {
	trimmed := bytes.TrimSpace(r.Data)
	return r.DataType == "" || len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// SaveUserData handles POST /api/user/data
func (h *UserDataHandler) SaveUserData(c *gin.Context) {
	var req SaveUserDataRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.missing() {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "dataType and data are required")
		return
	}

	userID := currentUser(c)
	result, err := h.dataService.PutSection(c.Request.Context(), service.PutSectionRequest{
		CallerID: userID,
		UserID:   userID,
		Kind:     section.Kind(req.DataType),
		Data:     req.Data,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data saved successfully",
		"data":    result.Data,
	})
}

// GetUserData handles GET /api/user/data/:dataType
func (h *UserDataHandler) GetUserData(c *gin.Context) {
	userID := currentUser(c)
	result, err := h.dataService.GetSection(c.Request.Context(), service.GetSectionRequest{
		CallerID: userID,
		UserID:   userID,
		Kind:     section.Kind(c.Param("dataType")),
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	// A nil RawMessage encodes as null for never-written sections
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Data,
	})
}

// GetAllUserData handles GET /api/user/data
func (h *UserDataHandler) GetAllUserData(c *gin.Context) {
	userID := currentUser(c)
	all, err := h.dataService.GetAllSections(c.Request.Context(), userID, userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    all,
	})
}

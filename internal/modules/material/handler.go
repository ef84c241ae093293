package material

import (
	"net/http"
	"strconv"

	"studysphere/internal/domain"
	"studysphere/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterTutorRoutes(rg *gin.RouterGroup) {
	rg.POST("/materials", h.AddMaterial)
	rg.GET("/tutor/materials", h.ListMine)
	rg.DELETE("/materials/:id", h.DeleteMaterial)
}

func (h *Handler) RegisterAuthenticatedRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions/:id/materials", h.ListForSession)
}

func (h *Handler) AddMaterial(c *gin.Context) {
	var req AddMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.AddMaterial(c.Request.Context(), c.GetString("email"), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title and link are required")
		case ErrSessionNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only add materials to your own sessions")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add material")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"material": m})
}

func (h *Handler) ListForSession(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	materials, err := h.service.ListForSession(
		c.Request.Context(),
		sessionID,
		c.GetString("email"),
		domain.UserRole(c.GetString("role")),
	)
	if err != nil {
		switch err {
		case ErrSessionNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Enroll in the session to access its materials")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list materials")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"materials": materials})
}

func (h *Handler) ListMine(c *gin.Context) {
	materials, err := h.service.ListMine(c.Request.Context(), c.GetString("email"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list materials")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"materials": materials})
}

func (h *Handler) DeleteMaterial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid material ID")
		return
	}

	if err := h.service.DeleteMaterial(c.Request.Context(), id, c.GetString("email")); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Material not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete material")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

package admin

import (
	"net/http"
	"strconv"

	"studysphere/internal/domain"
	"studysphere/internal/modules/session"
	"studysphere/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    *Service
	moderation SessionModerator
}

func NewHandler(service *Service, moderation SessionModerator) *Handler {
	return &Handler{service: service, moderation: moderation}
}

// RegisterRoutes expects rg to already carry the admin capability guard.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/admin")
	{
		adminGroup.GET("/moderation/pending", h.ListPendingSessions)
		adminGroup.POST("/sessions/:id/approve", h.ApproveSession)
		adminGroup.POST("/sessions/:id/reject", h.RejectSession)
		adminGroup.PUT("/sessions/:id", h.UpdateSession)
		adminGroup.DELETE("/sessions/:id", h.DeleteSession)

		adminGroup.GET("/users", h.ListUsers)
		adminGroup.PATCH("/users/:id/role", h.UpdateUserRole)
		adminGroup.GET("/statistics", h.GetStatistics)
	}
}

// ListPendingSessions returns the moderation queue, oldest first.
func (h *Handler) ListPendingSessions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	sessions, total, err := h.moderation.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load moderation queue")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    total,
	})
}

func (h *Handler) ApproveSession(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	var decision session.FeeDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Fee decision must be free or paid")
		return
	}

	sess, err := h.moderation.Approve(c.Request.Context(), id, decision)
	if err != nil {
		h.writeModerationError(c, err, "Failed to approve session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": sess})
}

func (h *Handler) RejectSession(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	var req session.RejectSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason code is required")
		return
	}

	sess, err := h.moderation.Reject(c.Request.Context(), id, req.ReasonCode, req.Feedback)
	if err != nil {
		h.writeModerationError(c, err, "Failed to reject session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": sess})
}

func (h *Handler) UpdateSession(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	var req session.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sess, err := h.moderation.UpdateSession(c.Request.Context(), id, domain.RoleAdmin, c.GetString("email"), req)
	if err != nil {
		h.writeModerationError(c, err, "Failed to update session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": sess})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	if err := h.moderation.DeleteSession(c.Request.Context(), id); err != nil {
		switch err {
		case session.ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
		case session.ErrHasBookings:
			response.Error(c, http.StatusConflict, "HAS_BOOKINGS", "Session has active bookings and cannot be deleted")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete session")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := UserListFilter{
		Role:  c.Query("role"),
		Query: c.Query("q"),
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Role must be student, tutor or admin")
		return
	}

	user, err := h.service.UpdateUserRole(c.Request.Context(), c.GetInt64("user_id"), userID, domain.UserRole(req.Role))
	if err != nil {
		switch err {
		case ErrInvalidRole:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown role")
		case ErrSelfDemotion:
			response.Error(c, http.StatusConflict, "SELF_DEMOTION", "You cannot remove your own admin role")
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update role")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) writeModerationError(c *gin.Context, err error, fallback string) {
	switch err {
	case session.ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
	case session.ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid moderation request")
	case session.ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Session is not in a state that allows this decision")
	case session.ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

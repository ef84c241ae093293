package booking

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Enroll)
	rg.GET("/bookings/my", h.MyBookings)
	rg.GET("/bookings/eligibility/:session_id", h.CheckEligibility)
}

func (h *Handler) Enroll(c *gin.Context) {
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Enroll(
		c.Request.Context(),
		req,
		c.GetInt64("user_id"),
		c.GetString("email"),
		domain.UserRole(c.GetString("role")),
	)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only students can enroll")
		case ErrNotBookable:
			response.Error(c, http.StatusConflict, "NOT_BOOKABLE", "Session is not open for enrollment")
		case ErrRegistrationClosed:
			response.Error(c, http.StatusConflict, "REGISTRATION_CLOSED", "Registration window is closed")
		case ErrAlreadyBooked:
			response.Error(c, http.StatusConflict, "ALREADY_BOOKED", "You are already enrolled in this session")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to enroll")
		}
		return
	}

	status := http.StatusCreated
	if result.PaymentRequired {
		// No booking yet; the gateway callback will create it.
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

func (h *Handler) MyBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := h.service.MyBookings(c.Request.Context(), c.GetString("email"), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) CheckEligibility(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("session_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	resp, err := h.service.CheckEligibility(
		c.Request.Context(),
		sessionID,
		c.GetString("email"),
		domain.UserRole(c.GetString("role")),
	)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check eligibility")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

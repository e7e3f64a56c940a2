package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-tour-booking/internal/service"
	apperrors "go-tour-booking/pkg/app_errors"
	"go-tour-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("bookings", h.GetBookings)
		router.GET("bookings/:id", h.GetBooking)
		router.POST("bookings/:id/draft", h.OpenEditor)
		router.PUT("bookings/:id/confirm", h.ConfirmBooking)
		router.PUT("bookings/:id/cancel", h.CancelBooking)
		router.DELETE("bookings/:id", h.DeleteBooking)
	}
}

func (h *BookingHandler) GetBookings(c *gin.Context) {
	bookings, err := h.service.BookingList(c)
	if err != nil {
		h.handleBookingError(c, err, "GetBookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}
	booking, err := h.service.GetBookingByID(c, idInt)
	if err != nil {
		h.handleBookingError(c, err, "GetBooking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// OpenEditor starts an edit session: a fresh draft pre-seeded from the
// persisted booking, including its line snapshots.
func (h *BookingHandler) OpenEditor(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}
	d, err := h.service.CreateDraftFromBooking(c, idInt)
	if err != nil {
		h.handleBookingError(c, err, "OpenEditor")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}
	if err := h.service.ConfirmBooking(c, idInt); err != nil {
		h.handleBookingError(c, err, "ConfirmBooking")
		return
	}
	c.Status(http.StatusOK)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}
	if err := h.service.CancelBooking(c, idInt); err != nil {
		h.handleBookingError(c, err, "CancelBooking")
		return
	}
	c.Status(http.StatusOK)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}
	if err := h.service.DeleteBooking(c, idInt); err != nil {
		h.handleBookingError(c, err, "DeleteBooking")
		return
	}
	c.Status(http.StatusOK)
}

// Helper functions

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, apperrors.ErrInvalidBookingStatus):
		log.Warn("Invalid booking status")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid booking status",
		})
	case errors.Is(err, apperrors.ErrTotalMismatch):
		log.Warn("Total mismatch")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Total does not match line subtotals",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

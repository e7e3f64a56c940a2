package handler

import (
	"errors"
	"net/http"

	"go-tour-booking/internal/draft"
	"go-tour-booking/internal/service"
	apperrors "go-tour-booking/pkg/app_errors"
	"go-tour-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftHandler drives the order composition flow shared by the admin booking
// editor and the customer ticket picker.
type DraftHandler struct {
	service service.BookingService
}

func NewDraftHandler(service service.BookingService) *DraftHandler {
	return &DraftHandler{service: service}
}

func (h *DraftHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("drafts", h.CreateDraft)
		router.GET("drafts/:id", h.GetDraft)
		router.DELETE("drafts/:id", h.DiscardDraft)
		router.GET("drafts/:id/catalog", h.GetCatalog)
		router.PUT("drafts/:id/tour", h.SelectTour)
		router.PUT("drafts/:id/customer", h.SetCustomer)
		router.POST("drafts/:id/lines", h.AddLine)
		router.PUT("drafts/:id/lines/:lineId/tier", h.SetTier)
		router.PUT("drafts/:id/lines/:lineId/quantity", h.SetQuantity)
		router.DELETE("drafts/:id/lines/:lineId", h.RemoveLine)
		router.POST("drafts/:id/submit", h.SubmitDraft)
	}
}

type SelectTourRequest struct {
	TourID int `json:"tour_id" binding:"required"`
}

type SetTierRequest struct {
	TierID int `json:"tier_id" binding:"required"`
}

// Quantity is a pointer so a literal 0 survives binding and is rejected by
// the engine rather than read as a missing field.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type SetCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}

func (h *DraftHandler) CreateDraft(c *gin.Context) {
	created, err := h.service.CreateDraft(c)
	if err != nil {
		h.handleDraftError(c, err, "CreateDraft")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	d, err := h.service.GetDraft(c, draftID)
	if err != nil {
		h.handleDraftError(c, err, "GetDraft")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	if err := h.service.DiscardDraft(c, draftID); err != nil {
		h.handleDraftError(c, err, "DiscardDraft")
		return
	}
	c.Status(http.StatusOK)
}

func (h *DraftHandler) GetCatalog(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	ticketTypes, err := h.service.GetDraftCatalog(c, draftID)
	if err != nil {
		h.handleDraftError(c, err, "GetCatalog")
		return
	}
	c.JSON(http.StatusOK, ticketTypes)
}

func (h *DraftHandler) SelectTour(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	var req SelectTourRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	d, err := h.service.SelectTour(c, draftID, req.TourID)
	if err != nil {
		h.handleDraftError(c, err, "SelectTour")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) SetCustomer(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	var req SetCustomerRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	d, err := h.service.SetCustomer(c, draftID, req.Name, req.Contact)
	if err != nil {
		h.handleDraftError(c, err, "SetCustomer")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) AddLine(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	d, err := h.service.AddLine(c, draftID)
	if err != nil {
		h.handleDraftError(c, err, "AddLine")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DraftHandler) SetTier(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	lineID, ok := h.parseLineID(c)
	if !ok {
		return
	}
	var req SetTierRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	d, err := h.service.SetTier(c, draftID, lineID, req.TierID)
	if err != nil {
		h.handleDraftError(c, err, "SetTier")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) SetQuantity(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	lineID, ok := h.parseLineID(c)
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	d, err := h.service.SetQuantity(c, draftID, lineID, *req.Quantity)
	if err != nil {
		h.handleDraftError(c, err, "SetQuantity")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) RemoveLine(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	lineID, ok := h.parseLineID(c)
	if !ok {
		return
	}
	d, err := h.service.RemoveLine(c, draftID, lineID)
	if err != nil {
		h.handleDraftError(c, err, "RemoveLine")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	draftID, ok := h.parseDraftID(c)
	if !ok {
		return
	}
	booking, err := h.service.SubmitDraft(c, draftID)
	if err != nil {
		h.handleDraftError(c, err, "SubmitDraft")
		return
	}
	c.JSON(http.StatusAccepted, booking)
}

// Helper functions

func (h *DraftHandler) parseDraftID(c *gin.Context) (uuid.UUID, bool) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft id"})
		return uuid.Nil, false
	}
	return draftID, true
}

func (h *DraftHandler) parseLineID(c *gin.Context) (uuid.UUID, bool) {
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line id"})
		return uuid.Nil, false
	}
	return lineID, true
}

func (h *DraftHandler) handleDraftError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var validationErr *draft.ValidationError
	if errors.As(err, &validationErr) {
		log.Warn("Submission rejected")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Submission rejected",
			"violations": validationErr.Violations,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrDraftNotFound):
		log.Warn("Draft not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Draft not found",
		})
	case errors.Is(err, apperrors.ErrLineNotFound):
		log.Warn("Line not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Line not found",
		})
	case errors.Is(err, apperrors.ErrTourNotFound):
		log.Warn("Tour not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Tour not found",
		})
	case errors.Is(err, apperrors.ErrNoTourSelected):
		log.Warn("No tour selected")
		c.JSON(http.StatusConflict, gin.H{
			"error": "No tour selected",
		})
	case errors.Is(err, apperrors.ErrInvalidQuantity):
		log.Warn("Invalid quantity")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantity must be at least 1",
		})
	case errors.Is(err, apperrors.ErrCatalogUnavailable):
		log.Warn("Catalog unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Catalog unavailable, try again",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

package handler

import (
	"errors"
	"net/http"

	"go-tour-booking/internal/model"
	"go-tour-booking/internal/service"
	apperrors "go-tour-booking/pkg/app_errors"
	"go-tour-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TourHandler struct {
	service service.TourService
	catalog service.CatalogService
}

func NewTourHandler(service service.TourService, catalog service.CatalogService) *TourHandler {
	return &TourHandler{service: service, catalog: catalog}
}

func (h *TourHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("tours", h.List)
		router.GET("tours/:uuid", h.GetByTourID)
		router.GET("tours/:uuid/ticket-types", h.GetTicketTypes)
		router.POST("tours", h.Create)
		router.PUT("tours/:uuid", h.UpdateByTourID)
		router.DELETE("tours/:uuid", h.DeleteByTourID)
	}
}

type CreateTourRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	DurationDays int     `json:"duration_days" binding:"required,min=1"`
	ImageURL     *string `json:"image_url"`
}

type UpdateTourRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DurationDays *int    `json:"duration_days"`
	ImageURL     *string `json:"image_url"`
}

func (h *TourHandler) List(c *gin.Context) {
	tours, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, tours)
}

func (h *TourHandler) GetByTourID(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour uuid"})
		return
	}
	tour, err := h.service.GetByTourID(c, tourID)
	if err != nil {
		h.handleError(c, err, "GetByTourID")
		return
	}
	c.JSON(http.StatusOK, tour)
}

// GetTicketTypes returns the purchasable catalog of a tour. An empty list is
// a valid answer: the tour has nothing on sale yet.
func (h *TourHandler) GetTicketTypes(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour uuid"})
		return
	}
	tour, err := h.service.GetByTourID(c, tourID)
	if err != nil {
		h.handleError(c, err, "GetTicketTypes")
		return
	}
	ticketTypes, err := h.catalog.GetTicketTypes(c, tour.ID)
	if err != nil {
		h.handleError(c, err, "GetTicketTypes")
		return
	}
	c.JSON(http.StatusOK, ticketTypes)
}

func (h *TourHandler) Create(c *gin.Context) {
	var req CreateTourRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	tour := &model.Tour{
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		ImageURL:     req.ImageURL,
	}
	created, err := h.service.Create(c, tour)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TourHandler) UpdateByTourID(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour uuid"})
		return
	}
	var req UpdateTourRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if req.Name == nil && req.Description == nil && req.DurationDays == nil && req.ImageURL == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field is required"})
		return
	}
	updated, err := h.service.UpdateByTourID(c, tourID, model.UpdateTourParams{
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		h.handleError(c, err, "UpdateByTourID")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TourHandler) DeleteByTourID(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour uuid"})
		return
	}
	if err := h.service.DeleteByTourID(c, tourID); err != nil {
		h.handleError(c, err, "DeleteByTourID")
		return
	}
	c.Status(http.StatusOK)
}

func (h *TourHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrTourNotFound):
		log.Warn("Tour not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Tour not found",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

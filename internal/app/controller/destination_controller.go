package controller

import (
	"errors"
	"net/http"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/service"
	apperrors "github.com/flavr-travel/flavr-backend/internal/errors"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DestinationController struct {
	destinationService service.DestinationService
}

func NewDestinationController(destinationService service.DestinationService) *DestinationController {
	return &DestinationController{
		destinationService: destinationService,
	}
}

type CreateDestinationRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateDestinationRequest uses pointers so absent fields stay untouched.
type UpdateDestinationRequest struct {
	Name        *string `json:"name"`
	Country     *string `json:"country"`
	Region      *string `json:"region"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func (req *UpdateDestinationRequest) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.Region != nil {
		fields["region"] = *req.Region
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	return fields
}

// List returns all destinations, optionally grouped by region
// GET /api/v1/destinations?grouped=true
func (ctrl *DestinationController) List(c *gin.Context) {
	destinations := ctrl.destinationService.List()

	if c.Query("grouped") == "true" {
		grouped, regions := service.GroupByRegion(destinations)
		c.JSON(http.StatusOK, gin.H{
			"grouped": grouped,
			"regions": regions,
			"total":   len(destinations),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"destinations": destinations,
		"total":        len(destinations),
	})
}

// Get returns a single destination
// GET /api/v1/destinations/:id
func (ctrl *DestinationController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	destination, err := ctrl.destinationService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			apperrors.NotFound(c, apperrors.ContentDestinationNotFound, "Destination not found")
			return
		}
		log.Error("Failed to get destination", err, map[string]interface{}{
			"destination_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get destination")
		return
	}

	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

// Create adds a destination
// POST /api/v1/destinations
func (ctrl *DestinationController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create destination request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Destination name is required")
		return
	}

	destination := &model.Destination{
		ID:          req.ID,
		Name:        req.Name,
		Country:     req.Country,
		Region:      req.Region,
		Description: req.Description,
		Image:       req.Image,
	}

	if err := ctrl.destinationService.Create(destination); err != nil {
		log.Error("Failed to create destination", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create destination")
		return
	}

	log.Info("Destination created", map[string]interface{}{
		"destination_id": destination.ID,
		"name":           destination.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Destination created",
		"destination": destination,
	})
}

// Update applies a partial update to a destination
// PATCH /api/v1/destinations/:id
func (ctrl *DestinationController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req UpdateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update destination request", map[string]interface{}{
			"destination_id": id,
			"error":          err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid destination payload")
		return
	}

	if err := ctrl.destinationService.Update(id, req.fields()); err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			apperrors.NotFound(c, apperrors.ContentDestinationNotFound, "Destination not found")
			return
		}
		log.Error("Failed to update destination", err, map[string]interface{}{
			"destination_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update destination")
		return
	}

	log.Info("Destination updated", map[string]interface{}{
		"destination_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Destination updated"})
}

// Delete removes a destination
// DELETE /api/v1/destinations/:id
func (ctrl *DestinationController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.destinationService.Delete(id); err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			apperrors.NotFound(c, apperrors.ContentDestinationNotFound, "Destination not found")
			return
		}
		log.Error("Failed to delete destination", err, map[string]interface{}{
			"destination_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete destination")
		return
	}

	log.Info("Destination deleted", map[string]interface{}{
		"destination_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Destination deleted"})
}

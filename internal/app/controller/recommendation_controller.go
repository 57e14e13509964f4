package controller

import (
	"errors"
	"net/http"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/service"
	apperrors "github.com/flavr-travel/flavr-backend/internal/errors"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type RecommendationController struct {
	recommendationService service.RecommendationService
}

func NewRecommendationController(recommendationService service.RecommendationService) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
	}
}

type CreateRecommendationRequest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name" binding:"required"`
	Type          string   `json:"type"`
	Cuisine       string   `json:"cuisine"`
	Rating        float64  `json:"rating"`
	PriceLevel    string   `json:"price_level"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Address       string   `json:"address"`
	Neighborhood  string   `json:"neighborhood"`
	Hours         string   `json:"hours"`
	Phone         string   `json:"phone"`
	Website       string   `json:"website"`
	Instagram     string   `json:"instagram"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	OurReview     string   `json:"our_review"`
	DestinationID string   `json:"destination_id"`
	PersonIDs     []string `json:"person_ids"`
}

// UpdateRecommendationRequest uses pointers so absent fields stay untouched.
// A non-nil PersonIDs triggers full reconciliation of the person links.
type UpdateRecommendationRequest struct {
	Name          *string   `json:"name"`
	Type          *string   `json:"type"`
	Cuisine       *string   `json:"cuisine"`
	Rating        *float64  `json:"rating"`
	PriceLevel    *string   `json:"price_level"`
	Description   *string   `json:"description"`
	Image         *string   `json:"image"`
	Images        *[]string `json:"images"`
	Address       *string   `json:"address"`
	Neighborhood  *string   `json:"neighborhood"`
	Hours         *string   `json:"hours"`
	Phone         *string   `json:"phone"`
	Website       *string   `json:"website"`
	Instagram     *string   `json:"instagram"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	OurReview     *string   `json:"our_review"`
	DestinationID *string   `json:"destination_id"`
	PersonIDs     *[]string `json:"person_ids"`
}

func (req *UpdateRecommendationRequest) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Cuisine != nil {
		fields["cuisine"] = *req.Cuisine
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.PriceLevel != nil {
		fields["price_level"] = *req.PriceLevel
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Images != nil {
		fields["images"] = pq.StringArray(*req.Images)
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Neighborhood != nil {
		fields["neighborhood"] = *req.Neighborhood
	}
	if req.Hours != nil {
		fields["hours"] = *req.Hours
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.Instagram != nil {
		fields["instagram"] = *req.Instagram
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.OurReview != nil {
		fields["our_review"] = *req.OurReview
	}
	if req.DestinationID != nil {
		fields["destination_id"] = *req.DestinationID
	}
	return fields
}

// List returns all recommendations, optionally filtered by destination
// GET /api/v1/recommendations?destination_id=xxx
func (ctrl *RecommendationController) List(c *gin.Context) {
	recommendations := ctrl.recommendationService.List()

	destinationID := c.Query("destination_id")
	filtered := service.FilterByDestination(recommendations, destinationID)

	c.JSON(http.StatusOK, gin.H{
		"recommendations": filtered,
		"total":           len(filtered),
	})
}

// Get returns a single recommendation with its linked person ids
// GET /api/v1/recommendations/:id
func (ctrl *RecommendationController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	recommendation, err := ctrl.recommendationService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrRecommendationNotFound) {
			apperrors.NotFound(c, apperrors.ContentRecommendationNotFound, "Recommendation not found")
			return
		}
		log.Error("Failed to get recommendation", err, map[string]interface{}{
			"recommendation_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get recommendation")
		return
	}

	// The edit dialog seeds its people picker from this list.
	personIDs, err := ctrl.recommendationService.ListPersonIDs(id)
	if err != nil {
		log.Error("Failed to list person links", err, map[string]interface{}{
			"recommendation_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get recommendation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendation": recommendation,
		"person_ids":     personIDs,
	})
}

// Create adds a recommendation and its person links
// POST /api/v1/recommendations
func (ctrl *RecommendationController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create recommendation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Recommendation name is required")
		return
	}

	recommendation := &model.Recommendation{
		ID:            req.ID,
		Name:          req.Name,
		Type:          req.Type,
		Cuisine:       req.Cuisine,
		Rating:        req.Rating,
		PriceLevel:    req.PriceLevel,
		Description:   req.Description,
		Image:         req.Image,
		Images:        pq.StringArray(req.Images),
		Address:       req.Address,
		Neighborhood:  req.Neighborhood,
		Hours:         req.Hours,
		Phone:         req.Phone,
		Website:       req.Website,
		Instagram:     req.Instagram,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		OurReview:     req.OurReview,
		DestinationID: req.DestinationID,
	}

	err := ctrl.recommendationService.Create(recommendation, req.PersonIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDestinations):
			log.Warn("Recommendation rejected: no destinations exist", nil)
			apperrors.BadRequest(c, apperrors.ContentDestinationRequired, "Create a destination before adding recommendations")
			return
		case errors.Is(err, service.ErrDestinationRequired):
			apperrors.BadRequest(c, apperrors.ContentDestinationRequired, "A destination is required")
			return
		case errors.Is(err, service.ErrPartiallySaved):
			log.Warn("Recommendation partially saved", map[string]interface{}{
				"recommendation_id": recommendation.ID,
			})
			apperrors.RespondWithError(c, http.StatusMultiStatus, apperrors.ContentPartiallySaved,
				"Recommendation saved, but linking people failed. Edit and save again to retry.")
			return
		}
		log.Error("Failed to create recommendation", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create recommendation")
		return
	}

	log.Info("Recommendation created", map[string]interface{}{
		"recommendation_id": recommendation.ID,
		"name":              recommendation.Name,
		"destination_id":    recommendation.DestinationID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Recommendation created",
		"recommendation": recommendation,
	})
}

// Update applies a partial update and reconciles person links if provided
// PATCH /api/v1/recommendations/:id
func (ctrl *RecommendationController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req UpdateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update recommendation request", map[string]interface{}{
			"recommendation_id": id,
			"error":             err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recommendation payload")
		return
	}

	if err := ctrl.recommendationService.Update(id, req.fields()); err != nil {
		if errors.Is(err, service.ErrRecommendationNotFound) {
			apperrors.NotFound(c, apperrors.ContentRecommendationNotFound, "Recommendation not found")
			return
		}
		log.Error("Failed to update recommendation", err, map[string]interface{}{
			"recommendation_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update recommendation")
		return
	}

	if req.PersonIDs != nil {
		if err := ctrl.recommendationService.ReconcilePeople(id, *req.PersonIDs); err != nil {
			if errors.Is(err, service.ErrPartiallySaved) {
				log.Warn("Person links partially saved", map[string]interface{}{
					"recommendation_id": id,
				})
				apperrors.RespondWithError(c, http.StatusMultiStatus, apperrors.ContentPartiallySaved,
					"Recommendation saved, but linking people failed. Edit and save again to retry.")
				return
			}
			log.Error("Failed to reconcile person links", err, map[string]interface{}{
				"recommendation_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update recommendation")
			return
		}
	}

	log.Info("Recommendation updated", map[string]interface{}{
		"recommendation_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Recommendation updated"})
}

// Delete removes a recommendation and its person links
// DELETE /api/v1/recommendations/:id
func (ctrl *RecommendationController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.recommendationService.Delete(id); err != nil {
		if errors.Is(err, service.ErrRecommendationNotFound) {
			apperrors.NotFound(c, apperrors.ContentRecommendationNotFound, "Recommendation not found")
			return
		}
		log.Error("Failed to delete recommendation", err, map[string]interface{}{
			"recommendation_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete recommendation")
		return
	}

	log.Info("Recommendation deleted", map[string]interface{}{
		"recommendation_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Recommendation deleted"})
}

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

type PersonController struct {
	personService service.PersonService
}

func NewPersonController(personService service.PersonService) *PersonController {
	return &PersonController{
		personService: personService,
	}
}

type CreatePersonRequest struct {
	Name  string `json:"name" binding:"required"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}

type UpdatePersonRequest struct {
	Name  *string `json:"name"`
	Bio   *string `json:"bio"`
	Image *string `json:"image"`
}

func (req *UpdatePersonRequest) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	return fields
}

// List returns all people
// GET /api/v1/people
func (ctrl *PersonController) List(c *gin.Context) {
	people := ctrl.personService.List()
	c.JSON(http.StatusOK, gin.H{
		"people": people,
		"total":  len(people),
	})
}

// Get returns a single person
// GET /api/v1/people/:id
func (ctrl *PersonController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	person, err := ctrl.personService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			apperrors.NotFound(c, apperrors.ContentPersonNotFound, "Person not found")
			return
		}
		log.Error("Failed to get person", err, map[string]interface{}{
			"person_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get person")
		return
	}

	c.JSON(http.StatusOK, gin.H{"person": person})
}

// Create adds a person; the ID is assigned server-side
// POST /api/v1/people
func (ctrl *PersonController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create person request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Person name is required")
		return
	}

	person := &model.Person{
		Name:  req.Name,
		Bio:   req.Bio,
		Image: req.Image,
	}

	if err := ctrl.personService.Create(person); err != nil {
		log.Error("Failed to create person", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create person")
		return
	}

	log.Info("Person created", map[string]interface{}{
		"person_id": person.ID,
		"name":      person.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Person created",
		"person":  person,
	})
}

// Update applies a partial update to a person
// PATCH /api/v1/people/:id
func (ctrl *PersonController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update person request", map[string]interface{}{
			"person_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid person payload")
		return
	}

	if err := ctrl.personService.Update(id, req.fields()); err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			apperrors.NotFound(c, apperrors.ContentPersonNotFound, "Person not found")
			return
		}
		log.Error("Failed to update person", err, map[string]interface{}{
			"person_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update person")
		return
	}

	log.Info("Person updated", map[string]interface{}{
		"person_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Person updated"})
}

// Delete removes a person and their recommendation links
// DELETE /api/v1/people/:id
func (ctrl *PersonController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.personService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			apperrors.NotFound(c, apperrors.ContentPersonNotFound, "Person not found")
			return
		}
		log.Error("Failed to delete person", err, map[string]interface{}{
			"person_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete person")
		return
	}

	log.Info("Person deleted", map[string]interface{}{
		"person_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Person deleted"})
}

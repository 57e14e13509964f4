package repository

import (
	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecommendationRepository covers the recommendations table plus the
// person_recommendations join table. The join operations are deliberately
// separate calls: the reconciliation strategy (delete everything, reinsert
// the current selection) lives in the service layer and the backend offers
// no cross-table transaction for it.
type RecommendationRepository interface {
	Create(recommendation *model.Recommendation) error
	FindAll() ([]model.Recommendation, error)
	FindByID(id string) (*model.Recommendation, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error

	ListPersonIDs(recommendationID string) ([]string, error)
	DeletePeople(recommendationID string) error
	AddPeople(recommendationID string, personIDs []string) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(recommendation *model.Recommendation) error {
	logger.Debug("Creating recommendation in database", map[string]interface{}{
		"recommendation_id": recommendation.ID,
		"name":              recommendation.Name,
		"destination_id":    recommendation.DestinationID,
	})

	if err := r.db.Create(recommendation).Error; err != nil {
		logger.Error("Failed to create recommendation in database", err, map[string]interface{}{
			"recommendation_id": recommendation.ID,
			"name":              recommendation.Name,
		})
		return err
	}
	return nil
}

func (r *recommendationRepository) FindAll() ([]model.Recommendation, error) {
	var recommendations []model.Recommendation
	if err := r.db.Order("created_at ASC").Find(&recommendations).Error; err != nil {
		logger.Error("Failed to fetch recommendations", err, nil)
		return nil, err
	}
	return recommendations, nil
}

func (r *recommendationRepository) FindByID(id string) (*model.Recommendation, error) {
	var recommendation model.Recommendation
	if err := r.db.First(&recommendation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recommendation, nil
}

func (r *recommendationRepository) Updates(id string, fields map[string]interface{}) error {
	logger.Debug("Updating recommendation in database", map[string]interface{}{
		"recommendation_id": id,
		"field_count":       len(fields),
	})

	if err := r.db.Model(&model.Recommendation{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		logger.Error("Failed to update recommendation in database", err, map[string]interface{}{
			"recommendation_id": id,
		})
		return err
	}
	return nil
}

func (r *recommendationRepository) Delete(id string) error {
	logger.Debug("Deleting recommendation from database", map[string]interface{}{
		"recommendation_id": id,
	})

	if err := r.db.Delete(&model.Recommendation{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete recommendation from database", err, map[string]interface{}{
			"recommendation_id": id,
		})
		return err
	}
	return nil
}

// ListPersonIDs returns the ids of people credited on a recommendation, in
// join-row creation order. Used to seed the edit dialog's selection.
func (r *recommendationRepository) ListPersonIDs(recommendationID string) ([]string, error) {
	var personIDs []string
	err := r.db.Model(&model.PersonRecommendation{}).
		Where("recommendation_id = ?", recommendationID).
		Order("created_at ASC").
		Pluck("person_id", &personIDs).Error
	if err != nil {
		logger.Error("Failed to fetch person associations", err, map[string]interface{}{
			"recommendation_id": recommendationID,
		})
		return nil, err
	}
	return personIDs, nil
}

// DeletePeople removes every join row for a recommendation.
func (r *recommendationRepository) DeletePeople(recommendationID string) error {
	logger.Debug("Deleting person associations", map[string]interface{}{
		"recommendation_id": recommendationID,
	})

	err := r.db.Where("recommendation_id = ?", recommendationID).
		Delete(&model.PersonRecommendation{}).Error
	if err != nil {
		logger.Error("Failed to delete person associations", err, map[string]interface{}{
			"recommendation_id": recommendationID,
		})
		return err
	}
	return nil
}

// AddPeople bulk-inserts one join row per person id. A no-op for an empty
// selection.
func (r *recommendationRepository) AddPeople(recommendationID string, personIDs []string) error {
	if len(personIDs) == 0 {
		return nil
	}

	logger.Debug("Inserting person associations", map[string]interface{}{
		"recommendation_id": recommendationID,
		"person_count":      len(personIDs),
	})

	rows := make([]model.PersonRecommendation, 0, len(personIDs))
	for _, personID := range personIDs {
		rows = append(rows, model.PersonRecommendation{
			PersonID:         personID,
			RecommendationID: recommendationID,
		})
	}

	if err := r.db.Create(&rows).Error; err != nil {
		logger.Error("Failed to insert person associations", err, map[string]interface{}{
			"recommendation_id": recommendationID,
			"person_count":      len(personIDs),
		})
		return err
	}
	return nil
}

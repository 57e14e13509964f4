package repository

import (
	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"gorm.io/gorm"
)

type DestinationRepository interface {
	Create(destination *model.Destination) error
	FindAll() ([]model.Destination, error)
	FindByID(id string) (*model.Destination, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Create(destination *model.Destination) error {
	logger.Debug("Creating destination in database", map[string]interface{}{
		"destination_id": destination.ID,
		"name":           destination.Name,
		"region":         destination.Region,
	})

	if err := r.db.Create(destination).Error; err != nil {
		logger.Error("Failed to create destination in database", err, map[string]interface{}{
			"destination_id": destination.ID,
			"name":           destination.Name,
		})
		return err
	}
	return nil
}

func (r *destinationRepository) FindAll() ([]model.Destination, error) {
	var destinations []model.Destination
	if err := r.db.Order("name ASC").Find(&destinations).Error; err != nil {
		logger.Error("Failed to fetch destinations", err, nil)
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) FindByID(id string) (*model.Destination, error) {
	var destination model.Destination
	if err := r.db.First(&destination, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) Updates(id string, fields map[string]interface{}) error {
	logger.Debug("Updating destination in database", map[string]interface{}{
		"destination_id": id,
		"field_count":    len(fields),
	})

	if err := r.db.Model(&model.Destination{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		logger.Error("Failed to update destination in database", err, map[string]interface{}{
			"destination_id": id,
		})
		return err
	}
	return nil
}

func (r *destinationRepository) Delete(id string) error {
	logger.Debug("Deleting destination from database", map[string]interface{}{
		"destination_id": id,
	})

	if err := r.db.Delete(&model.Destination{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete destination from database", err, map[string]interface{}{
			"destination_id": id,
		})
		return err
	}
	return nil
}

package repository

import (
	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(person *model.Person) error
	FindAll() ([]model.Person, error)
	FindByID(id string) (*model.Person, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error
	DeleteRecommendationLinks(personID string) error
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(person *model.Person) error {
	if err := r.db.Create(person).Error; err != nil {
		logger.Error("Failed to create person in database", err, map[string]interface{}{
			"name": person.Name,
		})
		return err
	}
	return nil
}

func (r *personRepository) FindAll() ([]model.Person, error) {
	var people []model.Person
	if err := r.db.Order("created_at ASC").Find(&people).Error; err != nil {
		logger.Error("Failed to fetch people", err, nil)
		return nil, err
	}
	return people, nil
}

func (r *personRepository) FindByID(id string) (*model.Person, error) {
	var person model.Person
	if err := r.db.First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) Updates(id string, fields map[string]interface{}) error {
	if err := r.db.Model(&model.Person{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		logger.Error("Failed to update person in database", err, map[string]interface{}{
			"person_id": id,
		})
		return err
	}
	return nil
}

func (r *personRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Person{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete person from database", err, map[string]interface{}{
			"person_id": id,
		})
		return err
	}
	return nil
}

// DeleteRecommendationLinks removes every recommendation link pointing at the
// person, so the person row can be deleted without tripping foreign keys.
func (r *personRepository) DeleteRecommendationLinks(personID string) error {
	if err := r.db.Where("person_id = ?", personID).Delete(&model.PersonRecommendation{}).Error; err != nil {
		logger.Error("Failed to delete person recommendation links", err, map[string]interface{}{
			"person_id": personID,
		})
		return err
	}
	return nil
}

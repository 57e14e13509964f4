package service

import (
	"errors"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrPersonNotFound = errors.New("person not found")

type PersonService interface {
	List() []model.Person
	GetByID(id string) (*model.Person, error)
	Create(person *model.Person) error
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type personService struct {
	repo  repository.PersonRepository
	store *cache.Store
}

func NewPersonService(repo repository.PersonRepository, store *cache.Store) PersonService {
	return &personService{repo: repo, store: store}
}

func (s *personService) List() []model.Person {
	return s.store.People()
}

func (s *personService) GetByID(id string) (*model.Person, error) {
	person, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

func (s *personService) Create(person *model.Person) error {
	if err := s.repo.Create(person); err != nil {
		return err
	}
	s.refreshStore("person created", person.ID)
	return nil
}

func (s *personService) Update(id string, fields map[string]interface{}) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	stripDerivedFields(fields)
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.Updates(id, fields); err != nil {
		return err
	}

	s.refreshStore("person updated", id)
	return nil
}

func (s *personService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	// Links go first so the person delete never hits a foreign key.
	if err := s.repo.DeleteRecommendationLinks(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.refreshStore("person deleted", id)
	return nil
}

func (s *personService) refreshStore(action, id string) {
	if err := s.store.Refresh(); err != nil {
		logger.Error("Store refresh failed after write", err, map[string]interface{}{
			"action": action,
			"id":     id,
		})
	}
}

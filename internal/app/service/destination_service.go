package service

import (
	"errors"
	"sort"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/flavr-travel/flavr-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrDestinationNotFound = errors.New("destination not found")

// DestinationService owns destination mutations. Reads are served from the
// central store; every successful write triggers a full store refresh so all
// collections stay consistent with one another.
type DestinationService interface {
	List() []model.Destination
	GetByID(id string) (*model.Destination, error)
	Create(destination *model.Destination) error
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type destinationService struct {
	repo  repository.DestinationRepository
	store *cache.Store
}

func NewDestinationService(repo repository.DestinationRepository, store *cache.Store) DestinationService {
	return &destinationService{repo: repo, store: store}
}

func (s *destinationService) List() []model.Destination {
	return s.store.Destinations()
}

func (s *destinationService) GetByID(id string) (*model.Destination, error) {
	destination, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return destination, nil
}

func (s *destinationService) Create(destination *model.Destination) error {
	if destination.ID == "" {
		destination.ID = util.NewID()
	}
	if destination.Region == "" {
		destination.Region = model.DefaultRegion
	}

	if err := s.repo.Create(destination); err != nil {
		return err
	}

	s.refreshStore("destination created", destination.ID)
	return nil
}

func (s *destinationService) Update(id string, fields map[string]interface{}) error {
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

	s.refreshStore("destination updated", id)
	return nil
}

func (s *destinationService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.refreshStore("destination deleted", id)
	return nil
}

func (s *destinationService) refreshStore(action, id string) {
	if err := s.store.Refresh(); err != nil {
		logger.Error("Store refresh failed after write", err, map[string]interface{}{
			"action": action,
			"id":     id,
		})
	}
}

// GroupByRegion buckets destinations under their region, with regions
// returned in alphabetical order. Destinations without a region fall under
// the default bucket. Order within each bucket follows the input order.
func GroupByRegion(destinations []model.Destination) (map[string][]model.Destination, []string) {
	grouped := make(map[string][]model.Destination)
	for _, d := range destinations {
		region := d.Region
		if region == "" {
			region = model.DefaultRegion
		}
		grouped[region] = append(grouped[region], d)
	}

	regions := make([]string, 0, len(grouped))
	for region := range grouped {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	return grouped, regions
}

// stripDerivedFields drops columns the database maintains itself, plus the
// primary key, from a partial update payload. Clients editing a row they
// fetched earlier would otherwise echo these back and clobber them.
func stripDerivedFields(fields map[string]interface{}) {
	delete(fields, "id")
	delete(fields, "name_search")
	delete(fields, "created_at")
	delete(fields, "updated_at")
}

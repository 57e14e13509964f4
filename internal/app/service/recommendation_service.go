package service

import (
	"errors"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/flavr-travel/flavr-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrNoDestinations         = errors.New("no destinations exist yet")
	ErrDestinationRequired    = errors.New("destination id is required")

	// ErrPartiallySaved reports that the recommendation row was written but
	// the person associations could not be, even after a retry. The row
	// exists; its people list may be stale or empty.
	ErrPartiallySaved = errors.New("recommendation saved but person links failed")
)

// RecommendationService owns recommendation mutations and the reconciliation
// of person links. Links are reconciled by deleting every existing row for
// the recommendation and re-inserting the current selection, so the join
// table always mirrors the latest save exactly.
type RecommendationService interface {
	List() []model.Recommendation
	GetByID(id string) (*model.Recommendation, error)
	Create(recommendation *model.Recommendation, personIDs []string) error
	Update(id string, fields map[string]interface{}) error
	ReconcilePeople(recommendationID string, personIDs []string) error
	Delete(id string) error
	ListPersonIDs(recommendationID string) ([]string, error)
}

type recommendationService struct {
	repo  repository.RecommendationRepository
	store *cache.Store
}

func NewRecommendationService(repo repository.RecommendationRepository, store *cache.Store) RecommendationService {
	return &recommendationService{repo: repo, store: store}
}

func (s *recommendationService) List() []model.Recommendation {
	return s.store.Recommendations()
}

func (s *recommendationService) GetByID(id string) (*model.Recommendation, error) {
	recommendation, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}
	return recommendation, nil
}

func (s *recommendationService) Create(recommendation *model.Recommendation, personIDs []string) error {
	// A recommendation cannot exist without a destination, so creation is
	// rejected up front while no destinations exist at all.
	if len(s.store.Destinations()) == 0 {
		return ErrNoDestinations
	}
	if recommendation.DestinationID == "" {
		return ErrDestinationRequired
	}
	if recommendation.ID == "" {
		recommendation.ID = util.NewID()
	}

	if err := s.repo.Create(recommendation); err != nil {
		return err
	}

	personIDs = dedupeIDs(personIDs)
	if len(personIDs) > 0 {
		if err := s.insertPeopleWithRetry(recommendation.ID, personIDs); err != nil {
			s.refreshStore("recommendation created", recommendation.ID)
			return ErrPartiallySaved
		}
	}

	s.refreshStore("recommendation created", recommendation.ID)
	return nil
}

func (s *recommendationService) Update(id string, fields map[string]interface{}) error {
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

	s.refreshStore("recommendation updated", id)
	return nil
}

// ReconcilePeople replaces the recommendation's person links with exactly the
// given selection. An empty selection clears all links. Replaying the same
// selection is a no-op in effect, which makes the operation safe to retry.
func (s *recommendationService) ReconcilePeople(recommendationID string, personIDs []string) error {
	if _, err := s.GetByID(recommendationID); err != nil {
		return err
	}

	personIDs = dedupeIDs(personIDs)

	if err := s.replacePeople(recommendationID, personIDs); err != nil {
		logger.Warn("Person link reconciliation failed, retrying", map[string]interface{}{
			"recommendation_id": recommendationID,
			"error":             err.Error(),
		})
		if err := s.replacePeople(recommendationID, personIDs); err != nil {
			logger.Error("Person link reconciliation failed after retry", err, map[string]interface{}{
				"recommendation_id": recommendationID,
			})
			s.refreshStore("people reconciled", recommendationID)
			return ErrPartiallySaved
		}
	}

	s.refreshStore("people reconciled", recommendationID)
	return nil
}

func (s *recommendationService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	// Join rows go first so the parent delete never hits a foreign key.
	if err := s.repo.DeletePeople(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.refreshStore("recommendation deleted", id)
	return nil
}

func (s *recommendationService) ListPersonIDs(recommendationID string) ([]string, error) {
	return s.repo.ListPersonIDs(recommendationID)
}

func (s *recommendationService) replacePeople(recommendationID string, personIDs []string) error {
	if err := s.repo.DeletePeople(recommendationID); err != nil {
		return err
	}
	return s.repo.AddPeople(recommendationID, personIDs)
}

func (s *recommendationService) insertPeopleWithRetry(recommendationID string, personIDs []string) error {
	if err := s.repo.AddPeople(recommendationID, personIDs); err != nil {
		logger.Warn("Person link insert failed, retrying", map[string]interface{}{
			"recommendation_id": recommendationID,
			"error":             err.Error(),
		})
		return s.repo.AddPeople(recommendationID, personIDs)
	}
	return nil
}

func (s *recommendationService) refreshStore(action, id string) {
	if err := s.store.Refresh(); err != nil {
		logger.Error("Store refresh failed after write", err, map[string]interface{}{
			"action": action,
			"id":     id,
		})
	}
}

// FilterByDestination narrows recommendations to one destination, preserving
// the input order. An empty id means no filter and returns the input as is.
func FilterByDestination(recommendations []model.Recommendation, destinationID string) []model.Recommendation {
	if destinationID == "" {
		return recommendations
	}
	filtered := make([]model.Recommendation, 0)
	for _, r := range recommendations {
		if r.DestinationID == destinationID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ToggleSelection adds the id to the selection if absent and removes it if
// present, keeping the relative order of the remaining ids.
func ToggleSelection(selection []string, id string) []string {
	for i, existing := range selection {
		if existing == id {
			result := make([]string, 0, len(selection)-1)
			result = append(result, selection[:i]...)
			return append(result, selection[i+1:]...)
		}
	}
	result := make([]string, 0, len(selection)+1)
	result = append(result, selection...)
	return append(result, id)
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

package service

import (
	"errors"
	"fmt"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/flavr-travel/flavr-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrBlogPostNotFound = errors.New("blog post not found")
	ErrSlugTaken        = errors.New("slug already in use")

	// ErrBlogPartiallySaved reports that the blog post row was written but
	// one of its link sets could not be, even after a retry.
	ErrBlogPartiallySaved = errors.New("blog post saved but links failed")
)

// BlogService owns blog post mutations and the reconciliation of the two
// link sets a post carries: destinations it covers and recommendations it
// mentions. Both follow delete-all-then-insert, same as person links on
// recommendations.
type BlogService interface {
	List() []model.BlogPost
	GetByID(id string) (*model.BlogPost, error)
	Create(post *model.BlogPost, destinationIDs, recommendationIDs []string) error
	Update(id string, fields map[string]interface{}) error
	ReconcileDestinations(blogPostID string, destinationIDs []string) error
	ReconcileRecommendations(blogPostID string, recommendationIDs []string) error
	Delete(id string) error
	ListDestinationIDs(blogPostID string) ([]string, error)
	ListRecommendationIDs(blogPostID string) ([]string, error)
}

type blogService struct {
	repo  repository.BlogPostRepository
	store *cache.Store
}

func NewBlogService(repo repository.BlogPostRepository, store *cache.Store) BlogService {
	return &blogService{repo: repo, store: store}
}

func (s *blogService) List() []model.BlogPost {
	return s.store.BlogPosts()
}

func (s *blogService) GetByID(id string) (*model.BlogPost, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *blogService) Create(post *model.BlogPost, destinationIDs, recommendationIDs []string) error {
	if post.ID == "" {
		post.ID = util.NewID()
	}
	if post.Slug == "" {
		post.Slug = util.Slugify(post.Title)
	}

	if err := s.ensureSlugFree(post.Slug, ""); err != nil {
		return err
	}

	if err := s.repo.Create(post); err != nil {
		return err
	}

	destinationIDs = dedupeIDs(destinationIDs)
	recommendationIDs = dedupeIDs(recommendationIDs)
	partial := false
	if len(destinationIDs) > 0 {
		if err := s.insertLinksWithRetry("destination", post.ID, destinationIDs, s.repo.AddDestinations); err != nil {
			partial = true
		}
	}
	if len(recommendationIDs) > 0 {
		if err := s.insertLinksWithRetry("recommendation", post.ID, recommendationIDs, s.repo.AddRecommendations); err != nil {
			partial = true
		}
	}

	s.refreshStore("blog post created", post.ID)
	if partial {
		return ErrBlogPartiallySaved
	}
	return nil
}

func (s *blogService) Update(id string, fields map[string]interface{}) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	stripDerivedFields(fields)
	if len(fields) == 0 {
		return nil
	}

	if slug, ok := fields["slug"].(string); ok {
		if err := s.ensureSlugFree(slug, id); err != nil {
			return err
		}
	}

	if err := s.repo.Updates(id, fields); err != nil {
		return err
	}

	s.refreshStore("blog post updated", id)
	return nil
}

// ReconcileDestinations replaces the post's destination links with exactly
// the given selection. An empty selection clears all links.
func (s *blogService) ReconcileDestinations(blogPostID string, destinationIDs []string) error {
	if _, err := s.GetByID(blogPostID); err != nil {
		return err
	}
	return s.reconcileLinks(
		"destination", blogPostID, dedupeIDs(destinationIDs),
		s.repo.DeleteDestinations, s.repo.AddDestinations,
	)
}

// ReconcileRecommendations replaces the post's recommendation links with
// exactly the given selection. An empty selection clears all links.
func (s *blogService) ReconcileRecommendations(blogPostID string, recommendationIDs []string) error {
	if _, err := s.GetByID(blogPostID); err != nil {
		return err
	}
	return s.reconcileLinks(
		"recommendation", blogPostID, dedupeIDs(recommendationIDs),
		s.repo.DeleteRecommendations, s.repo.AddRecommendations,
	)
}

func (s *blogService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	// Both link sets go first so the post delete never hits a foreign key.
	if err := s.repo.DeleteDestinations(id); err != nil {
		return err
	}
	if err := s.repo.DeleteRecommendations(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.refreshStore("blog post deleted", id)
	return nil
}

func (s *blogService) ListDestinationIDs(blogPostID string) ([]string, error) {
	return s.repo.ListDestinationIDs(blogPostID)
}

func (s *blogService) ListRecommendationIDs(blogPostID string) ([]string, error) {
	return s.repo.ListRecommendationIDs(blogPostID)
}

func (s *blogService) ensureSlugFree(slug, selfID string) error {
	existing, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSlugTaken, slug)
}

func (s *blogService) reconcileLinks(
	kind, blogPostID string,
	ids []string,
	deleteAll func(string) error,
	addAll func(string, []string) error,
) error {
	replace := func() error {
		if err := deleteAll(blogPostID); err != nil {
			return err
		}
		return addAll(blogPostID, ids)
	}

	if err := replace(); err != nil {
		logger.Warn("Blog link reconciliation failed, retrying", map[string]interface{}{
			"blog_post_id": blogPostID,
			"link_kind":    kind,
			"error":        err.Error(),
		})
		if err := replace(); err != nil {
			logger.Error("Blog link reconciliation failed after retry", err, map[string]interface{}{
				"blog_post_id": blogPostID,
				"link_kind":    kind,
			})
			s.refreshStore("blog links reconciled", blogPostID)
			return ErrBlogPartiallySaved
		}
	}

	s.refreshStore("blog links reconciled", blogPostID)
	return nil
}

func (s *blogService) insertLinksWithRetry(
	kind, blogPostID string,
	ids []string,
	addAll func(string, []string) error,
) error {
	if err := addAll(blogPostID, ids); err != nil {
		logger.Warn("Blog link insert failed, retrying", map[string]interface{}{
			"blog_post_id": blogPostID,
			"link_kind":    kind,
			"error":        err.Error(),
		})
		return addAll(blogPostID, ids)
	}
	return nil
}

func (s *blogService) refreshStore(action, id string) {
	if err := s.store.Refresh(); err != nil {
		logger.Error("Store refresh failed after write", err, map[string]interface{}{
			"action": action,
			"id":     id,
		})
	}
}

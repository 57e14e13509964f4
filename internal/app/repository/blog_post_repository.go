package repository

import (
	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"gorm.io/gorm"
)

// BlogPostRepository covers blog_posts plus its two join tables. Like the
// recommendation repository, the join operations are individual calls
// driven by the service-level reconciliation.
type BlogPostRepository interface {
	Create(post *model.BlogPost) error
	FindAll() ([]model.BlogPost, error)
	FindByID(id string) (*model.BlogPost, error)
	FindBySlug(slug string) (*model.BlogPost, error)
	Updates(id string, fields map[string]interface{}) error
	Delete(id string) error

	ListDestinationIDs(blogPostID string) ([]string, error)
	DeleteDestinations(blogPostID string) error
	AddDestinations(blogPostID string, destinationIDs []string) error

	ListRecommendationIDs(blogPostID string) ([]string, error)
	DeleteRecommendations(blogPostID string) error
	AddRecommendations(blogPostID string, recommendationIDs []string) error
}

type blogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

func (r *blogPostRepository) Create(post *model.BlogPost) error {
	logger.Debug("Creating blog post in database", map[string]interface{}{
		"blog_post_id": post.ID,
		"slug":         post.Slug,
	})

	if err := r.db.Create(post).Error; err != nil {
		logger.Error("Failed to create blog post in database", err, map[string]interface{}{
			"blog_post_id": post.ID,
			"slug":         post.Slug,
		})
		return err
	}
	return nil
}

func (r *blogPostRepository) FindAll() ([]model.BlogPost, error) {
	var posts []model.BlogPost
	if err := r.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		logger.Error("Failed to fetch blog posts", err, nil)
		return nil, err
	}
	return posts, nil
}

func (r *blogPostRepository) FindByID(id string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) FindBySlug(slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.db.First(&post, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) Updates(id string, fields map[string]interface{}) error {
	logger.Debug("Updating blog post in database", map[string]interface{}{
		"blog_post_id": id,
		"field_count":  len(fields),
	})

	if err := r.db.Model(&model.BlogPost{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		logger.Error("Failed to update blog post in database", err, map[string]interface{}{
			"blog_post_id": id,
		})
		return err
	}
	return nil
}

func (r *blogPostRepository) Delete(id string) error {
	if err := r.db.Delete(&model.BlogPost{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete blog post from database", err, map[string]interface{}{
			"blog_post_id": id,
		})
		return err
	}
	return nil
}

func (r *blogPostRepository) ListDestinationIDs(blogPostID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.BlogPostDestination{}).
		Where("blog_post_id = ?", blogPostID).
		Order("created_at ASC").
		Pluck("destination_id", &ids).Error
	if err != nil {
		logger.Error("Failed to fetch blog post destinations", err, map[string]interface{}{
			"blog_post_id": blogPostID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *blogPostRepository) DeleteDestinations(blogPostID string) error {
	err := r.db.Where("blog_post_id = ?", blogPostID).
		Delete(&model.BlogPostDestination{}).Error
	if err != nil {
		logger.Error("Failed to delete blog post destinations", err, map[string]interface{}{
			"blog_post_id": blogPostID,
		})
		return err
	}
	return nil
}

func (r *blogPostRepository) AddDestinations(blogPostID string, destinationIDs []string) error {
	if len(destinationIDs) == 0 {
		return nil
	}

	rows := make([]model.BlogPostDestination, 0, len(destinationIDs))
	for _, destinationID := range destinationIDs {
		rows = append(rows, model.BlogPostDestination{
			BlogPostID:    blogPostID,
			DestinationID: destinationID,
		})
	}

	if err := r.db.Create(&rows).Error; err != nil {
		logger.Error("Failed to insert blog post destinations", err, map[string]interface{}{
			"blog_post_id":      blogPostID,
			"destination_count": len(destinationIDs),
		})
		return err
	}
	return nil
}

func (r *blogPostRepository) ListRecommendationIDs(blogPostID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.BlogPostRecommendation{}).
		Where("blog_post_id = ?", blogPostID).
		Order("created_at ASC").
		Pluck("recommendation_id", &ids).Error
	if err != nil {
		logger.Error("Failed to fetch blog post recommendations", err, map[string]interface{}{
			"blog_post_id": blogPostID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *blogPostRepository) DeleteRecommendations(blogPostID string) error {
	err := r.db.Where("blog_post_id = ?", blogPostID).
		Delete(&model.BlogPostRecommendation{}).Error
	if err != nil {
		logger.Error("Failed to delete blog post recommendations", err, map[string]interface{}{
			"blog_post_id": blogPostID,
		})
		return err
	}
	return nil
}

func (r *blogPostRepository) AddRecommendations(blogPostID string, recommendationIDs []string) error {
	if len(recommendationIDs) == 0 {
		return nil
	}

	rows := make([]model.BlogPostRecommendation, 0, len(recommendationIDs))
	for _, recommendationID := range recommendationIDs {
		rows = append(rows, model.BlogPostRecommendation{
			BlogPostID:       blogPostID,
			RecommendationID: recommendationID,
		})
	}

	if err := r.db.Create(&rows).Error; err != nil {
		logger.Error("Failed to insert blog post recommendations", err, map[string]interface{}{
			"blog_post_id":         blogPostID,
			"recommendation_count": len(recommendationIDs),
		})
		return err
	}
	return nil
}

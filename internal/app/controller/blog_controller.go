package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/service"
	apperrors "github.com/flavr-travel/flavr-backend/internal/errors"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type BlogController struct {
	blogService service.BlogService
}

func NewBlogController(blogService service.BlogService) *BlogController {
	return &BlogController{
		blogService: blogService,
	}
}

type CreateBlogPostRequest struct {
	ID                string     `json:"id"`
	Title             string     `json:"title" binding:"required"`
	Slug              string     `json:"slug"`
	Content           string     `json:"content"`
	Excerpt           string     `json:"excerpt"`
	CoverImage        string     `json:"cover_image"`
	PublishedAt       *time.Time `json:"published_at"`
	AuthorID          *string    `json:"author_id"`
	DestinationIDs    []string   `json:"destination_ids"`
	RecommendationIDs []string   `json:"recommendation_ids"`
}

// UpdateBlogPostRequest uses pointers so absent fields stay untouched. A
// non-nil link slice triggers full reconciliation of that link set.
type UpdateBlogPostRequest struct {
	Title             *string    `json:"title"`
	Slug              *string    `json:"slug"`
	Content           *string    `json:"content"`
	Excerpt           *string    `json:"excerpt"`
	CoverImage        *string    `json:"cover_image"`
	PublishedAt       *time.Time `json:"published_at"`
	AuthorID          *string    `json:"author_id"`
	DestinationIDs    *[]string  `json:"destination_ids"`
	RecommendationIDs *[]string  `json:"recommendation_ids"`
}

func (req *UpdateBlogPostRequest) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Excerpt != nil {
		fields["excerpt"] = *req.Excerpt
	}
	if req.CoverImage != nil {
		fields["cover_image"] = *req.CoverImage
	}
	if req.PublishedAt != nil {
		fields["published_at"] = *req.PublishedAt
	}
	if req.AuthorID != nil {
		fields["author_id"] = *req.AuthorID
	}
	return fields
}

// List returns all blog posts
// GET /api/v1/blog-posts
func (ctrl *BlogController) List(c *gin.Context) {
	posts := ctrl.blogService.List()
	c.JSON(http.StatusOK, gin.H{
		"blog_posts": posts,
		"total":      len(posts),
	})
}

// Get returns a single blog post with both of its link sets
// GET /api/v1/blog-posts/:id
func (ctrl *BlogController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	post, err := ctrl.blogService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrBlogPostNotFound) {
			apperrors.NotFound(c, apperrors.ContentBlogPostNotFound, "Blog post not found")
			return
		}
		log.Error("Failed to get blog post", err, map[string]interface{}{
			"blog_post_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get blog post")
		return
	}

	destinationIDs, err := ctrl.blogService.ListDestinationIDs(id)
	if err != nil {
		log.Error("Failed to list destination links", err, map[string]interface{}{
			"blog_post_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get blog post")
		return
	}

	recommendationIDs, err := ctrl.blogService.ListRecommendationIDs(id)
	if err != nil {
		log.Error("Failed to list recommendation links", err, map[string]interface{}{
			"blog_post_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get blog post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blog_post":          post,
		"destination_ids":    destinationIDs,
		"recommendation_ids": recommendationIDs,
	})
}

// Create adds a blog post and its link sets
// POST /api/v1/blog-posts
func (ctrl *BlogController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create blog post request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Blog post title is required")
		return
	}

	post := &model.BlogPost{
		ID:          req.ID,
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		CoverImage:  req.CoverImage,
		PublishedAt: req.PublishedAt,
		AuthorID:    req.AuthorID,
	}

	err := ctrl.blogService.Create(post, req.DestinationIDs, req.RecommendationIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugTaken):
			apperrors.Conflict(c, apperrors.ContentSlugExists, "A post with this slug already exists")
			return
		case errors.Is(err, service.ErrBlogPartiallySaved):
			log.Warn("Blog post partially saved", map[string]interface{}{
				"blog_post_id": post.ID,
			})
			apperrors.RespondWithError(c, http.StatusMultiStatus, apperrors.ContentPartiallySaved,
				"Blog post saved, but some links failed. Edit and save again to retry.")
			return
		}
		log.Error("Failed to create blog post", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create blog post")
		return
	}

	log.Info("Blog post created", map[string]interface{}{
		"blog_post_id": post.ID,
		"slug":         post.Slug,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Blog post created",
		"blog_post": post,
	})
}

// Update applies a partial update and reconciles any provided link sets
// PATCH /api/v1/blog-posts/:id
func (ctrl *BlogController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update blog post request", map[string]interface{}{
			"blog_post_id": id,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid blog post payload")
		return
	}

	if err := ctrl.blogService.Update(id, req.fields()); err != nil {
		switch {
		case errors.Is(err, service.ErrBlogPostNotFound):
			apperrors.NotFound(c, apperrors.ContentBlogPostNotFound, "Blog post not found")
			return
		case errors.Is(err, service.ErrSlugTaken):
			apperrors.Conflict(c, apperrors.ContentSlugExists, "A post with this slug already exists")
			return
		}
		log.Error("Failed to update blog post", err, map[string]interface{}{
			"blog_post_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update blog post")
		return
	}

	if req.DestinationIDs != nil {
		if err := ctrl.blogService.ReconcileDestinations(id, *req.DestinationIDs); err != nil {
			ctrl.respondLinkError(c, log, id, err)
			return
		}
	}
	if req.RecommendationIDs != nil {
		if err := ctrl.blogService.ReconcileRecommendations(id, *req.RecommendationIDs); err != nil {
			ctrl.respondLinkError(c, log, id, err)
			return
		}
	}

	log.Info("Blog post updated", map[string]interface{}{
		"blog_post_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Blog post updated"})
}

// Delete removes a blog post and both of its link sets
// DELETE /api/v1/blog-posts/:id
func (ctrl *BlogController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.blogService.Delete(id); err != nil {
		if errors.Is(err, service.ErrBlogPostNotFound) {
			apperrors.NotFound(c, apperrors.ContentBlogPostNotFound, "Blog post not found")
			return
		}
		log.Error("Failed to delete blog post", err, map[string]interface{}{
			"blog_post_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete blog post")
		return
	}

	log.Info("Blog post deleted", map[string]interface{}{
		"blog_post_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted"})
}

func (ctrl *BlogController) respondLinkError(c *gin.Context, log *logger.Logger, id string, err error) {
	if errors.Is(err, service.ErrBlogPartiallySaved) {
		log.Warn("Blog post links partially saved", map[string]interface{}{
			"blog_post_id": id,
		})
		apperrors.RespondWithError(c, http.StatusMultiStatus, apperrors.ContentPartiallySaved,
			"Blog post saved, but some links failed. Edit and save again to retry.")
		return
	}
	log.Error("Failed to reconcile blog post links", err, map[string]interface{}{
		"blog_post_id": id,
	})
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update blog post")
}

package service

import (
	"testing"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBlogServiceTest(t *testing.T) (BlogService, *cache.Store, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	blogRepo := repository.NewBlogPostRepository(testDB)
	store := cache.NewStore(
		repository.NewDestinationRepository(testDB),
		repository.NewRecommendationRepository(testDB),
		repository.NewPersonRepository(testDB),
		blogRepo,
		repository.NewSubscriberRepository(testDB),
	)
	require.NoError(t, store.Refresh())

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, testDB.Create(&model.Destination{ID: "d2", Name: "Porto"}).Error)
	require.NoError(t, testDB.Create(&model.Recommendation{ID: "r1", Name: "Spot", DestinationID: "d1"}).Error)

	return NewBlogService(blogRepo, store), store, testDB
}

func TestBlogService_Create_GeneratesSlugFromTitle(t *testing.T) {
	service, store, _ := setupBlogServiceTest(t)

	post := &model.BlogPost{Title: "A Weekend in Lisbon!", Content: "..."}
	err := service.Create(post, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "a-weekend-in-lisbon", post.Slug)
	assert.NotEmpty(t, post.ID)

	cached := store.BlogPosts()
	require.Len(t, cached, 1)
	assert.Equal(t, "a-weekend-in-lisbon", cached[0].Slug)
}

func TestBlogService_Create_SlugConflict(t *testing.T) {
	service, _, _ := setupBlogServiceTest(t)

	first := &model.BlogPost{Title: "Lisbon Guide", Content: "..."}
	require.NoError(t, service.Create(first, nil, nil))

	second := &model.BlogPost{Title: "Another", Slug: "lisbon-guide", Content: "..."}
	err := service.Create(second, nil, nil)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestBlogService_Create_WithLinks(t *testing.T) {
	service, _, _ := setupBlogServiceTest(t)

	post := &model.BlogPost{Title: "Lisbon and Porto", Content: "..."}
	err := service.Create(post, []string{"d1", "d2"}, []string{"r1"})
	require.NoError(t, err)

	destinationIDs, err := service.ListDestinationIDs(post.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d1", "d2"}, destinationIDs)

	recommendationIDs, err := service.ListRecommendationIDs(post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, recommendationIDs)
}

func TestBlogService_Update_SlugConflict(t *testing.T) {
	service, _, _ := setupBlogServiceTest(t)

	first := &model.BlogPost{Title: "First", Content: "..."}
	require.NoError(t, service.Create(first, nil, nil))
	second := &model.BlogPost{Title: "Second", Content: "..."}
	require.NoError(t, service.Create(second, nil, nil))

	err := service.Update(second.ID, map[string]interface{}{"slug": "first"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	// Re-saving a post with its own slug is fine
	err = service.Update(first.ID, map[string]interface{}{"slug": "first", "title": "First Updated"})
	assert.NoError(t, err)
}

func TestBlogService_ReconcileDestinations_ReplacesSelection(t *testing.T) {
	service, _, _ := setupBlogServiceTest(t)

	post := &model.BlogPost{Title: "Post", Content: "..."}
	require.NoError(t, service.Create(post, []string{"d1"}, nil))

	err := service.ReconcileDestinations(post.ID, []string{"d2"})
	require.NoError(t, err)

	destinationIDs, err := service.ListDestinationIDs(post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"d2"}, destinationIDs)
}

func TestBlogService_ReconcileRecommendations_EmptyClears(t *testing.T) {
	service, _, _ := setupBlogServiceTest(t)

	post := &model.BlogPost{Title: "Post", Content: "..."}
	require.NoError(t, service.Create(post, nil, []string{"r1"}))

	require.NoError(t, service.ReconcileRecommendations(post.ID, nil))

	recommendationIDs, err := service.ListRecommendationIDs(post.ID)
	require.NoError(t, err)
	assert.Empty(t, recommendationIDs)
}

func TestBlogService_Delete_RemovesLinkSets(t *testing.T) {
	service, store, testDB := setupBlogServiceTest(t)

	post := &model.BlogPost{Title: "Post", Content: "..."}
	require.NoError(t, service.Create(post, []string{"d1"}, []string{"r1"}))

	err := service.Delete(post.ID)
	require.NoError(t, err)

	_, err = service.GetByID(post.ID)
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	var destLinks, recLinks int64
	testDB.Model(&model.BlogPostDestination{}).Where("blog_post_id = ?", post.ID).Count(&destLinks)
	testDB.Model(&model.BlogPostRecommendation{}).Where("blog_post_id = ?", post.ID).Count(&recLinks)
	assert.Equal(t, int64(0), destLinks)
	assert.Equal(t, int64(0), recLinks)

	assert.Empty(t, store.BlogPosts())
}

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

func setupSubscriberServiceTest(t *testing.T) (SubscriberService, *cache.Store, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	subscriberRepo := repository.NewSubscriberRepository(testDB)
	store := cache.NewStore(
		repository.NewDestinationRepository(testDB),
		repository.NewRecommendationRepository(testDB),
		repository.NewPersonRepository(testDB),
		repository.NewBlogPostRepository(testDB),
		subscriberRepo,
	)

	return NewSubscriberService(subscriberRepo, store), store, testDB
}

func TestSubscriberService_List(t *testing.T) {
	service, store, testDB := setupSubscriberServiceTest(t)

	require.NoError(t, testDB.Create(&model.NewsletterSubscriber{Email: "one@example.com"}).Error)
	require.NoError(t, testDB.Create(&model.NewsletterSubscriber{Email: "two@example.com"}).Error)
	require.NoError(t, store.Refresh())

	subscribers := service.List()
	assert.Len(t, subscribers, 2)

	count, err := service.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSubscriberService_ExportXLSX(t *testing.T) {
	service, _, testDB := setupSubscriberServiceTest(t)

	require.NoError(t, testDB.Create(&model.NewsletterSubscriber{Email: "one@example.com"}).Error)
	require.NoError(t, testDB.Create(&model.NewsletterSubscriber{Email: "two@example.com"}).Error)

	f, err := service.ExportXLSX()
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	// Header plus one row per subscriber
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Email", "Subscribed At"}, rows[0])

	emails := []string{rows[1][0], rows[2][0]}
	assert.ElementsMatch(t, []string{"one@example.com", "two@example.com"}, emails)
}

func TestSubscriberService_ExportXLSX_Empty(t *testing.T) {
	service, _, _ := setupSubscriberServiceTest(t)

	f, err := service.ExportXLSX()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

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

func setupRecommendationServiceTest(t *testing.T) (RecommendationService, *cache.Store, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	recommendationRepo := repository.NewRecommendationRepository(testDB)
	store := cache.NewStore(
		repository.NewDestinationRepository(testDB),
		recommendationRepo,
		repository.NewPersonRepository(testDB),
		repository.NewBlogPostRepository(testDB),
		repository.NewSubscriberRepository(testDB),
	)
	require.NoError(t, store.Refresh())

	return NewRecommendationService(recommendationRepo, store), store, testDB
}

func TestRecommendationService_Create_RejectedWithoutDestinations(t *testing.T) {
	service, _, _ := setupRecommendationServiceTest(t)

	err := service.Create(&model.Recommendation{Name: "Orphan Spot"}, nil)
	assert.ErrorIs(t, err, ErrNoDestinations)
}

func TestRecommendationService_Create_RequiresDestinationID(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, store.Refresh())

	err := service.Create(&model.Recommendation{Name: "No Destination"}, nil)
	assert.ErrorIs(t, err, ErrDestinationRequired)
}

func TestRecommendationService_Create_AppearsInCache(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	// A destination named Lisbon, then a recommendation under it: both
	// must be visible from the cache right after the save.
	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon", Region: "Europe"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{
		Name:          "Taberna do Mar",
		Cuisine:       "Seafood",
		Rating:        4.7,
		DestinationID: "d1",
	}
	err := service.Create(rec, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	cached := store.Recommendations()
	require.Len(t, cached, 1)
	assert.Equal(t, "Taberna do Mar", cached[0].Name)
	assert.Equal(t, "d1", cached[0].DestinationID)
}

func TestRecommendationService_Create_KeepsClientGeneratedID(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{ID: "rec-custom", Name: "Spot", DestinationID: "d1"}
	require.NoError(t, service.Create(rec, nil))
	assert.Equal(t, "rec-custom", rec.ID)
}

func TestRecommendationService_Create_WithPeople(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, testDB.Create(&model.Person{ID: "p1", Name: "Ana"}).Error)
	require.NoError(t, testDB.Create(&model.Person{ID: "p2", Name: "Bruno"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{Name: "Spot", DestinationID: "d1"}
	// Duplicates in the selection collapse to one link each
	require.NoError(t, service.Create(rec, []string{"p1", "p2", "p1"}))

	ids, err := service.ListPersonIDs(rec.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestRecommendationService_Update_PartialPreservesOtherFields(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{Name: "Old Name", Cuisine: "Seafood", Rating: 4.5, DestinationID: "d1"}
	require.NoError(t, service.Create(rec, nil))

	err := service.Update(rec.ID, map[string]interface{}{"name": "New Name"})
	require.NoError(t, err)

	found, err := service.GetByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name)
	assert.Equal(t, "Seafood", found.Cuisine)
	assert.Equal(t, 4.5, found.Rating)
}

func TestRecommendationService_Update_StripsDerivedFields(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{Name: "Spot", DestinationID: "d1"}
	require.NoError(t, service.Create(rec, nil))

	// Clients editing a previously fetched row echo back columns the
	// database owns; those must never reach the update.
	err := service.Update(rec.ID, map[string]interface{}{
		"name":        "Renamed",
		"id":          "hijacked-id",
		"name_search": "stale tsvector",
		"created_at":  "2020-01-01",
	})
	require.NoError(t, err)

	found, err := service.GetByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Name)

	_, err = service.GetByID("hijacked-id")
	assert.ErrorIs(t, err, ErrRecommendationNotFound)
}

func TestRecommendationService_Update_NotFound(t *testing.T) {
	service, _, _ := setupRecommendationServiceTest(t)

	err := service.Update("missing", map[string]interface{}{"name": "X"})
	assert.ErrorIs(t, err, ErrRecommendationNotFound)

	// A payload holding only derived fields must still report the missing row
	err = service.Update("missing", map[string]interface{}{"name_search": "x"})
	assert.ErrorIs(t, err, ErrRecommendationNotFound)
}

func TestRecommendationService_ReconcilePeople_ReplacesSelection(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	for _, id := range []string{"pA", "pB", "pC"} {
		require.NoError(t, testDB.Create(&model.Person{ID: id, Name: "Person " + id}).Error)
	}
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{Name: "Spot", DestinationID: "d1"}
	require.NoError(t, service.Create(rec, []string{"pA", "pB"}))

	err := service.ReconcilePeople(rec.ID, []string{"pB", "pC"})
	require.NoError(t, err)

	ids, err := service.ListPersonIDs(rec.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pB", "pC"}, ids)
}

func TestRecommendationService_ReconcilePeople_EmptyClearsLinks(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, testDB.Create(&model.Person{ID: "p1", Name: "Ana"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{Name: "Spot", DestinationID: "d1"}
	require.NoError(t, service.Create(rec, []string{"p1"}))

	require.NoError(t, service.ReconcilePeople(rec.ID, nil))

	ids, err := service.ListPersonIDs(rec.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecommendationService_ReconcilePeople_Idempotent(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, testDB.Create(&model.Person{ID: "p1", Name: "Ana"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{Name: "Spot", DestinationID: "d1"}
	require.NoError(t, service.Create(rec, []string{"p1"}))

	// Saving the same selection twice ends in the same single link
	require.NoError(t, service.ReconcilePeople(rec.ID, []string{"p1"}))
	require.NoError(t, service.ReconcilePeople(rec.ID, []string{"p1"}))

	ids, err := service.ListPersonIDs(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestRecommendationService_Delete_RemovesLinksAndRow(t *testing.T) {
	service, store, testDB := setupRecommendationServiceTest(t)

	require.NoError(t, testDB.Create(&model.Destination{ID: "d1", Name: "Lisbon"}).Error)
	require.NoError(t, testDB.Create(&model.Person{ID: "p1", Name: "Ana"}).Error)
	require.NoError(t, store.Refresh())

	rec := &model.Recommendation{Name: "Spot", DestinationID: "d1"}
	require.NoError(t, service.Create(rec, []string{"p1"}))

	err := service.Delete(rec.ID)
	require.NoError(t, err)

	_, err = service.GetByID(rec.ID)
	assert.ErrorIs(t, err, ErrRecommendationNotFound)

	var count int64
	testDB.Model(&model.PersonRecommendation{}).Where("recommendation_id = ?", rec.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Cache reflects the deletion
	assert.Empty(t, store.Recommendations())
}

func TestFilterByDestination(t *testing.T) {
	recommendations := []model.Recommendation{
		{ID: "r1", DestinationID: "d1"},
		{ID: "r2", DestinationID: "d2"},
		{ID: "r3", DestinationID: "d1"},
	}

	filtered := FilterByDestination(recommendations, "d1")
	require.Len(t, filtered, 2)
	assert.Equal(t, "r1", filtered[0].ID)
	assert.Equal(t, "r3", filtered[1].ID)

	// Empty id means no filter
	assert.Len(t, FilterByDestination(recommendations, ""), 3)

	// Unknown id matches nothing
	assert.Empty(t, FilterByDestination(recommendations, "d9"))
}

func TestToggleSelection(t *testing.T) {
	selection := []string{"a", "b", "c"}

	// Absent id is appended
	assert.Equal(t, []string{"a", "b", "c", "d"}, ToggleSelection(selection, "d"))

	// Present id is removed, order preserved
	assert.Equal(t, []string{"a", "c"}, ToggleSelection(selection, "b"))

	// Toggling twice restores the original
	once := ToggleSelection(selection, "b")
	twice := ToggleSelection(once, "b")
	assert.ElementsMatch(t, selection, twice)

	// From empty
	assert.Equal(t, []string{"x"}, ToggleSelection(nil, "x"))
}

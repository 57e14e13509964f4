package repository

import (
	"testing"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/db"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecommendationRepoTest(t *testing.T) (RecommendationRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	require.NoError(t, testDB.Create(&model.Destination{ID: "dest-1", Name: "Lisbon", Region: "Europe"}).Error)

	return NewRecommendationRepository(testDB), testDB
}

func createTestPeople(t *testing.T, testDB *gorm.DB, ids ...string) {
	for _, id := range ids {
		require.NoError(t, testDB.Create(&model.Person{ID: id, Name: "Person " + id}).Error)
	}
}

func TestRecommendationRepository_Create(t *testing.T) {
	repo, _ := setupRecommendationRepoTest(t)

	rec := &model.Recommendation{
		ID:            "rec-1",
		Name:          "Taberna do Mar",
		Type:          "Restaurant",
		Cuisine:       "Seafood",
		Rating:        4.7,
		PriceLevel:    "$$",
		Image:         "taberna.jpg",
		Images:        pq.StringArray{"one.jpg", "two.jpg"},
		DestinationID: "dest-1",
	}

	err := repo.Create(rec)
	assert.NoError(t, err)

	found, err := repo.FindByID("rec-1")
	require.NoError(t, err)
	assert.Equal(t, "Taberna do Mar", found.Name)
	assert.Equal(t, "dest-1", found.DestinationID)
	assert.Len(t, []string(found.Images), 2)
}

func TestRecommendationRepository_AddPeople_AndList(t *testing.T) {
	repo, testDB := setupRecommendationRepoTest(t)
	createTestPeople(t, testDB, "p1", "p2")

	require.NoError(t, repo.Create(&model.Recommendation{ID: "rec-1", Name: "Spot", DestinationID: "dest-1"}))

	err := repo.AddPeople("rec-1", []string{"p1", "p2"})
	assert.NoError(t, err)

	ids, err := repo.ListPersonIDs("rec-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestRecommendationRepository_AddPeople_EmptyIsNoop(t *testing.T) {
	repo, _ := setupRecommendationRepoTest(t)

	require.NoError(t, repo.Create(&model.Recommendation{ID: "rec-1", Name: "Spot", DestinationID: "dest-1"}))

	err := repo.AddPeople("rec-1", nil)
	assert.NoError(t, err)

	ids, err := repo.ListPersonIDs("rec-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecommendationRepository_ReplacePeople_SameSelectionIdempotent(t *testing.T) {
	repo, testDB := setupRecommendationRepoTest(t)
	createTestPeople(t, testDB, "p1", "p2")

	require.NoError(t, repo.Create(&model.Recommendation{ID: "rec-1", Name: "Spot", DestinationID: "dest-1"}))
	require.NoError(t, repo.AddPeople("rec-1", []string{"p1", "p2"}))

	// Replaying delete-then-insert with the same selection ends in the
	// same state, never a duplicate key.
	require.NoError(t, repo.DeletePeople("rec-1"))
	require.NoError(t, repo.AddPeople("rec-1", []string{"p1", "p2"}))

	ids, err := repo.ListPersonIDs("rec-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)

	var count int64
	testDB.Model(&model.PersonRecommendation{}).Where("recommendation_id = ?", "rec-1").Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestRecommendationRepository_ReplacePeople_ChangedSelection(t *testing.T) {
	repo, testDB := setupRecommendationRepoTest(t)
	createTestPeople(t, testDB, "pA", "pB", "pC")

	require.NoError(t, repo.Create(&model.Recommendation{ID: "rec-1", Name: "Spot", DestinationID: "dest-1"}))
	require.NoError(t, repo.AddPeople("rec-1", []string{"pA", "pB"}))

	// {A,B} -> {B,C}: A's row vanishes, C's appears, B survives the swap
	require.NoError(t, repo.DeletePeople("rec-1"))
	require.NoError(t, repo.AddPeople("rec-1", []string{"pB", "pC"}))

	ids, err := repo.ListPersonIDs("rec-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pB", "pC"}, ids)
}

func TestRecommendationRepository_DeletePeople_ClearsAll(t *testing.T) {
	repo, testDB := setupRecommendationRepoTest(t)
	createTestPeople(t, testDB, "p1", "p2")

	require.NoError(t, repo.Create(&model.Recommendation{ID: "rec-1", Name: "Spot", DestinationID: "dest-1"}))
	require.NoError(t, repo.AddPeople("rec-1", []string{"p1", "p2"}))

	err := repo.DeletePeople("rec-1")
	assert.NoError(t, err)

	ids, err := repo.ListPersonIDs("rec-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecommendationRepository_DeletePeople_ScopedToRecommendation(t *testing.T) {
	repo, testDB := setupRecommendationRepoTest(t)
	createTestPeople(t, testDB, "p1")

	require.NoError(t, repo.Create(&model.Recommendation{ID: "rec-1", Name: "Spot A", DestinationID: "dest-1"}))
	require.NoError(t, repo.Create(&model.Recommendation{ID: "rec-2", Name: "Spot B", DestinationID: "dest-1"}))
	require.NoError(t, repo.AddPeople("rec-1", []string{"p1"}))
	require.NoError(t, repo.AddPeople("rec-2", []string{"p1"}))

	require.NoError(t, repo.DeletePeople("rec-1"))

	// rec-2's links are untouched
	ids, err := repo.ListPersonIDs("rec-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestRecommendationRepository_Updates_PartialFields(t *testing.T) {
	repo, _ := setupRecommendationRepoTest(t)

	require.NoError(t, repo.Create(&model.Recommendation{
		ID:            "rec-1",
		Name:          "Old Name",
		Cuisine:       "Seafood",
		Rating:        4.2,
		DestinationID: "dest-1",
	}))

	err := repo.Updates("rec-1", map[string]interface{}{
		"name": "New Name",
	})
	assert.NoError(t, err)

	found, err := repo.FindByID("rec-1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name)
	assert.Equal(t, "Seafood", found.Cuisine)
	assert.Equal(t, 4.2, found.Rating)
}

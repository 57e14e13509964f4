package repository

import (
	"testing"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDestinationRepoTest(t *testing.T) DestinationRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewDestinationRepository(testDB)
}

func TestDestinationRepository_Create(t *testing.T) {
	repo := setupDestinationRepoTest(t)

	destination := &model.Destination{
		ID:          "dest-lisbon",
		Name:        "Lisbon",
		Country:     "Portugal",
		Region:      "Europe",
		Description: "Hills, tiles and pastel de nata",
		Image:       "https://cdn.example.com/lisbon.jpg",
	}

	err := repo.Create(destination)
	assert.NoError(t, err)

	found, err := repo.FindByID("dest-lisbon")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", found.Name)
	assert.Equal(t, "Europe", found.Region)
}

func TestDestinationRepository_FindAll_OrderedByName(t *testing.T) {
	repo := setupDestinationRepoTest(t)

	require.NoError(t, repo.Create(&model.Destination{ID: "d1", Name: "Tokyo", Region: "Asia"}))
	require.NoError(t, repo.Create(&model.Destination{ID: "d2", Name: "Lisbon", Region: "Europe"}))
	require.NoError(t, repo.Create(&model.Destination{ID: "d3", Name: "Mexico City", Region: "Americas"}))

	destinations, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, destinations, 3)
	assert.Equal(t, "Lisbon", destinations[0].Name)
	assert.Equal(t, "Mexico City", destinations[1].Name)
	assert.Equal(t, "Tokyo", destinations[2].Name)
}

func TestDestinationRepository_Updates_PartialFields(t *testing.T) {
	repo := setupDestinationRepoTest(t)

	require.NoError(t, repo.Create(&model.Destination{
		ID:          "d1",
		Name:        "Lisbon",
		Country:     "Portugal",
		Region:      "Europe",
		Description: "Original description",
		Image:       "original.jpg",
	}))

	err := repo.Updates("d1", map[string]interface{}{
		"description": "New description",
	})
	assert.NoError(t, err)

	found, err := repo.FindByID("d1")
	require.NoError(t, err)
	assert.Equal(t, "New description", found.Description)
	// Fields not in the update stay intact
	assert.Equal(t, "Lisbon", found.Name)
	assert.Equal(t, "Portugal", found.Country)
	assert.Equal(t, "original.jpg", found.Image)
}

func TestDestinationRepository_Delete(t *testing.T) {
	repo := setupDestinationRepoTest(t)

	require.NoError(t, repo.Create(&model.Destination{ID: "d1", Name: "Lisbon"}))

	err := repo.Delete("d1")
	assert.NoError(t, err)

	_, err = repo.FindByID("d1")
	assert.Error(t, err)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

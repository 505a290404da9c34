package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetModelToEntity(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tagID := uuid.New()
	m := &model.Dataset{
		ID:          uuid.New(),
		Name:        "accra-housing",
		Description: "housing prices",
		Source:      "gss",
		License:     "MIT",
		Format:      "csv",
		Size:        12,
		RowCount:    3400,
		ColumnCount: 12,
		Votes:       3,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags: []*model.Tag{
			{ID: tagID, Name: "housing", CreatedAt: now, UpdatedAt: now},
		},
	}

	e, err := datasetModelToEntity(m)
	require.NoError(t, err)
	assert.Equal(t, m.ID.String(), e.ID)
	assert.Equal(t, "accra-housing", e.Name)
	assert.Equal(t, int64(3400), e.RowCount)
	assert.Equal(t, int64(3), e.Votes)
	assert.Equal(t, "2024-03-01T12:00:00Z", e.CreatedAt)
	require.Len(t, e.Tags, 1)
	assert.Equal(t, tagID.String(), e.Tags[0].ID)
	assert.Equal(t, "housing", e.Tags[0].Name)
}

func TestDatasetModelToEntityWithoutTags(t *testing.T) {
	t.Parallel()

	e, err := datasetModelToEntity(&model.Dataset{
		ID:   uuid.New(),
		Name: "untagged",
	})
	require.NoError(t, err)
	assert.Nil(t, e.Tags, "tags should be omitted when none are loaded")
}

func TestTagModelsToEntities(t *testing.T) {
	t.Parallel()

	entities, err := tagModelsToEntities([]*model.Tag{
		{ID: uuid.New(), Name: "a"},
		{ID: uuid.New(), Name: "b"},
	})
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "a", entities[0].Name)
	assert.Equal(t, "b", entities[1].Name)
}

package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	require.NoError(t, err)

	// 使用 t.Cleanup 确保在测试真正结束时清理，支持并发测试
	t.Cleanup(func() {
		_ = repo.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return repo
}

// newDataset 返回一个字段齐全的数据集
func newDataset(name string) *model.Dataset {
	return &model.Dataset{
		Name:        name,
		Description: "housing prices in accra",
		Source:      "ghana statistical service",
		License:     "CC-BY-4.0",
		Format:      "csv",
		Size:        12,
		RowCount:    3400,
		ColumnCount: 12,
	}
}

func TestDatasetRepository(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)

	datasetRepo := NewDatasetRepository(repo.DB())
	metadataRepo := NewMetadataRepository(repo.DB())
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		dataset := newDataset("accra-housing")

		err := datasetRepo.Create(ctx, dataset)
		assert.NoError(t, err)
		require.NotEqual(t, uuid.Nil, dataset.ID, "dataset ID should be set after creation")

		got, err := datasetRepo.GetByID(ctx, dataset.ID)
		assert.NoError(t, err)
		assert.Equal(t, dataset.Name, got.Name)
		assert.Equal(t, dataset.Source, got.Source)
		assert.Equal(t, int64(3400), got.RowCount)
	})

	t.Run("Create increments active counter", func(t *testing.T) {
		before, err := metadataRepo.CounterValue(ctx, model.ActiveDatasetsCountKey)
		require.NoError(t, err)

		err = datasetRepo.Create(ctx, newDataset("counter-probe"))
		require.NoError(t, err)

		after, err := metadataRepo.CounterValue(ctx, model.ActiveDatasetsCountKey)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})

	t.Run("Create rejects duplicate active name", func(t *testing.T) {
		require.NoError(t, datasetRepo.Create(ctx, newDataset("dup-name")))

		err := datasetRepo.Create(ctx, newDataset("dup-name"))
		assert.Error(t, err)

		// 失败的创建不能改变计数器
		count, err := metadataRepo.CounterValue(ctx, model.ActiveDatasetsCountKey)
		require.NoError(t, err)

		datasets, total, err := datasetRepo.List(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(len(datasets)), count)
		assert.Equal(t, count, total)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := datasetRepo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Update changes only given columns", func(t *testing.T) {
		dataset := newDataset("update-target")
		require.NoError(t, datasetRepo.Create(ctx, dataset))

		updated, err := datasetRepo.Update(ctx, dataset.ID, map[string]any{
			"description": "updated description",
		})
		assert.NoError(t, err)
		assert.Equal(t, "updated description", updated.Description)
		assert.Equal(t, "update-target", updated.Name)
		assert.Equal(t, int64(3400), updated.RowCount)
	})

	t.Run("Update with no columns keeps row intact", func(t *testing.T) {
		dataset := newDataset("update-noop")
		require.NoError(t, datasetRepo.Create(ctx, dataset))

		updated, err := datasetRepo.Update(ctx, dataset.ID, map[string]any{})
		assert.NoError(t, err)
		assert.Equal(t, "update-noop", updated.Name)
	})

	t.Run("SoftDelete hides row and decrements counter", func(t *testing.T) {
		dataset := newDataset("to-delete")
		require.NoError(t, datasetRepo.Create(ctx, dataset))

		before, err := metadataRepo.CounterValue(ctx, model.ActiveDatasetsCountKey)
		require.NoError(t, err)

		deleted, err := datasetRepo.SoftDelete(ctx, dataset.ID)
		assert.NoError(t, err)
		assert.Contains(t, deleted.Name, "to-delete")
		assert.NotEqual(t, "to-delete", deleted.Name, "name should be rewritten on delete")

		_, err = datasetRepo.GetByID(ctx, dataset.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		after, err := metadataRepo.CounterValue(ctx, model.ActiveDatasetsCountKey)
		require.NoError(t, err)
		assert.Equal(t, before-1, after)
	})

	t.Run("SoftDelete twice fails", func(t *testing.T) {
		dataset := newDataset("delete-twice")
		require.NoError(t, datasetRepo.Create(ctx, dataset))

		_, err := datasetRepo.SoftDelete(ctx, dataset.ID)
		require.NoError(t, err)

		before, err := metadataRepo.CounterValue(ctx, model.ActiveDatasetsCountKey)
		require.NoError(t, err)

		_, err = datasetRepo.SoftDelete(ctx, dataset.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		// 第二次删除不能再减计数器
		after, err := metadataRepo.CounterValue(ctx, model.ActiveDatasetsCountKey)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("name can be reused after soft delete", func(t *testing.T) {
		first := newDataset("reusable-name")
		require.NoError(t, datasetRepo.Create(ctx, first))

		_, err := datasetRepo.SoftDelete(ctx, first.ID)
		require.NoError(t, err)

		second := newDataset("reusable-name")
		assert.NoError(t, datasetRepo.Create(ctx, second))
	})
}

func TestDatasetRepositoryPagination(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)

	datasetRepo := NewDatasetRepository(repo.DB())
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, datasetRepo.Create(ctx, newDataset(fmt.Sprintf("page-%02d", i))))
	}

	t.Run("first page", func(t *testing.T) {
		datasets, total, err := datasetRepo.List(ctx, 1, 10)
		assert.NoError(t, err)
		assert.Len(t, datasets, 10)
		assert.Equal(t, int64(15), total)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		datasets, total, err := datasetRepo.List(ctx, 2, 10)
		assert.NoError(t, err)
		assert.Len(t, datasets, 5)
		assert.Equal(t, int64(15), total)
	})

	t.Run("pages are in insertion order and disjoint", func(t *testing.T) {
		page1, _, err := datasetRepo.List(ctx, 1, 10)
		require.NoError(t, err)
		page2, _, err := datasetRepo.List(ctx, 2, 10)
		require.NoError(t, err)

		seen := make(map[uuid.UUID]bool)
		for _, d := range append(page1, page2...) {
			assert.False(t, seen[d.ID], "dataset %s appears twice", d.ID)
			seen[d.ID] = true
		}
		assert.Equal(t, "page-00", page1[0].Name)
		assert.Equal(t, "page-10", page2[0].Name)
	})
}

func TestDatasetRepositoryTags(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)

	datasetRepo := NewDatasetRepository(repo.DB())
	tagRepo := NewTagRepository(repo.DB())
	ctx := context.Background()

	dataset := newDataset("tagged")
	require.NoError(t, datasetRepo.Create(ctx, dataset))

	tag := &model.Tag{Name: "health"}
	require.NoError(t, tagRepo.Create(ctx, tag))

	t.Run("AddTag and ListTags", func(t *testing.T) {
		err := datasetRepo.AddTag(ctx, dataset.ID, tag.ID)
		assert.NoError(t, err)

		tags, err := datasetRepo.ListTags(ctx, dataset.ID)
		assert.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "health", tags[0].Name)
	})

	t.Run("AddTag is idempotent", func(t *testing.T) {
		err := datasetRepo.AddTag(ctx, dataset.ID, tag.ID)
		assert.NoError(t, err)

		tags, err := datasetRepo.ListTags(ctx, dataset.ID)
		assert.NoError(t, err)
		assert.Len(t, tags, 1, "duplicate association must not create a second row")
	})

	t.Run("AddTag with missing tag", func(t *testing.T) {
		err := datasetRepo.AddTag(ctx, dataset.ID, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("AddTag with missing dataset", func(t *testing.T) {
		err := datasetRepo.AddTag(ctx, uuid.New(), tag.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("RemoveTag", func(t *testing.T) {
		err := datasetRepo.RemoveTag(ctx, dataset.ID, tag.ID)
		assert.NoError(t, err)

		tags, err := datasetRepo.ListTags(ctx, dataset.ID)
		assert.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("RemoveTag without association is a no-op", func(t *testing.T) {
		err := datasetRepo.RemoveTag(ctx, dataset.ID, tag.ID)
		assert.NoError(t, err)
	})

	t.Run("RemoveTag with missing dataset", func(t *testing.T) {
		err := datasetRepo.RemoveTag(ctx, uuid.New(), tag.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("ListTags with missing dataset", func(t *testing.T) {
		_, err := datasetRepo.ListTags(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("ListTags hides soft-deleted tags", func(t *testing.T) {
		shortLived := &model.Tag{Name: "short-lived"}
		require.NoError(t, tagRepo.Create(ctx, shortLived))
		require.NoError(t, datasetRepo.AddTag(ctx, dataset.ID, shortLived.ID))

		_, err := tagRepo.SoftDelete(ctx, shortLived.ID)
		require.NoError(t, err)

		tags, err := datasetRepo.ListTags(ctx, dataset.ID)
		assert.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestDatasetRepositorySearch(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)

	datasetRepo := NewDatasetRepository(repo.DB())
	tagRepo := NewTagRepository(repo.DB())
	ctx := context.Background()

	seed := []*model.Dataset{
		{Name: "Accra Housing", Description: "d", Source: "GSS", License: "MIT", Format: "csv"},
		{Name: "Kumasi Rainfall", Description: "d", Source: "GMet", License: "CC-BY-4.0", Format: "csv"},
		{Name: "Accra Rainfall", Description: "d", Source: "GMet", License: "MIT", Format: "json"},
	}
	for _, d := range seed {
		require.NoError(t, datasetRepo.Create(ctx, d))
	}

	climate := &model.Tag{Name: "climate"}
	require.NoError(t, tagRepo.Create(ctx, climate))
	require.NoError(t, datasetRepo.AddTag(ctx, seed[1].ID, climate.ID))
	require.NoError(t, datasetRepo.AddTag(ctx, seed[2].ID, climate.ID))

	t.Run("name filter is case-insensitive substring", func(t *testing.T) {
		datasets, err := datasetRepo.Search(ctx, SearchFilter{Name: "accra"}, 1, 10)
		assert.NoError(t, err)
		assert.Len(t, datasets, 2)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		datasets, err := datasetRepo.Search(ctx, SearchFilter{Name: "rainfall", License: "mit"}, 1, 10)
		assert.NoError(t, err)
		require.Len(t, datasets, 1)
		assert.Equal(t, "Accra Rainfall", datasets[0].Name)
	})

	t.Run("tag filter matches any listed tag", func(t *testing.T) {
		datasets, err := datasetRepo.Search(ctx, SearchFilter{Tags: []string{"climate", "nonexistent"}}, 1, 10)
		assert.NoError(t, err)
		assert.Len(t, datasets, 2)
	})

	t.Run("tag filter combined with name filter", func(t *testing.T) {
		datasets, err := datasetRepo.Search(ctx, SearchFilter{Name: "accra", Tags: []string{"climate"}}, 1, 10)
		assert.NoError(t, err)
		require.Len(t, datasets, 1)
		assert.Equal(t, "Accra Rainfall", datasets[0].Name)
	})

	t.Run("empty filter returns everything", func(t *testing.T) {
		datasets, err := datasetRepo.Search(ctx, SearchFilter{}, 1, 10)
		assert.NoError(t, err)
		assert.Len(t, datasets, 3)
	})

	t.Run("no match", func(t *testing.T) {
		datasets, err := datasetRepo.Search(ctx, SearchFilter{Source: "nowhere"}, 1, 10)
		assert.NoError(t, err)
		assert.Empty(t, datasets)
	})
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"gorm.io/gorm"
)

// SearchFilter 数据集检索条件，零值字段表示不过滤
// 多个条件同时给出时取交集
type SearchFilter struct {
	Name    string   // 名称子串，不区分大小写
	Source  string   // 来源子串，不区分大小写
	License string   // 许可证子串，不区分大小写
	Tags    []string // 至少带有其中一个标签
}

// DatasetRepository 数据集仓库接口
type DatasetRepository interface {
	Create(ctx context.Context, dataset *model.Dataset) error
	List(ctx context.Context, page, limit int) ([]*model.Dataset, int64, error)
	Search(ctx context.Context, filter SearchFilter, page, limit int) ([]*model.Dataset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Dataset, error)
	ListTags(ctx context.Context, datasetID uuid.UUID) ([]*model.Tag, error)
	AddTag(ctx context.Context, datasetID, tagID uuid.UUID) error
	RemoveTag(ctx context.Context, datasetID, tagID uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Dataset, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (*model.Dataset, error)
}

type datasetRepository struct {
	db *gorm.DB
}

// NewDatasetRepository 创建数据集仓库
func NewDatasetRepository(db *gorm.DB) DatasetRepository {
	return &datasetRepository{db: db}
}

// Create 创建数据集，并在同一事务内将计数器加一
// 任一步失败则整体回滚，不会留下半写状态
func (r *datasetRepository) Create(ctx context.Context, dataset *model.Dataset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dataset).Error; err != nil {
			return err
		}
		return incrementCounter(tx, model.ActiveDatasetsCountKey, 1)
	})
}

// List 按创建顺序分页列出未删除的数据集
// 返回的总数取自计数器，不做全表扫描
func (r *datasetRepository) List(ctx context.Context, page, limit int) ([]*model.Dataset, int64, error) {
	var datasets []*model.Dataset
	if err := r.db.WithContext(ctx).
		Order("created_at, id").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&datasets).Error; err != nil {
		return nil, 0, err
	}

	count, err := counterValue(r.db.WithContext(ctx), model.ActiveDatasetsCountKey)
	if err != nil {
		return nil, 0, err
	}
	return datasets, count, nil
}

// Search 按条件分页检索未删除的数据集，所有条件取交集
func (r *datasetRepository) Search(ctx context.Context, filter SearchFilter, page, limit int) ([]*model.Dataset, error) {
	query := r.db.WithContext(ctx).Model(&model.Dataset{})

	// 子串过滤统一用 lower() 比较，SQLite 和 Postgres 行为一致
	if filter.Name != "" {
		query = query.Where("lower(datasets.name) LIKE lower(?)", "%"+filter.Name+"%")
	}
	if filter.Source != "" {
		query = query.Where("lower(datasets.source) LIKE lower(?)", "%"+filter.Source+"%")
	}
	if filter.License != "" {
		query = query.Where("lower(datasets.license) LIKE lower(?)", "%"+filter.License+"%")
	}
	if len(filter.Tags) > 0 {
		query = query.Where(
			"datasets.id IN (?)",
			r.db.Model(&model.DatasetTag{}).
				Select("dataset_tags.dataset_id").
				Joins("JOIN tags ON tags.id = dataset_tags.tag_id").
				Where("tags.name IN ? AND tags.deleted_at IS NULL", filter.Tags),
		)
	}

	var datasets []*model.Dataset
	if err := query.
		Order("datasets.created_at, datasets.id").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&datasets).Error; err != nil {
		return nil, err
	}
	return datasets, nil
}

// GetByID 根据 ID 获取未删除的数据集
func (r *datasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Dataset, error) {
	var dataset model.Dataset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dataset).Error; err != nil {
		return nil, fmt.Errorf("dataset %s: %w", id, err)
	}
	return &dataset, nil
}

// ListTags 列出数据集的所有未删除标签
func (r *datasetRepository) ListTags(ctx context.Context, datasetID uuid.UUID) ([]*model.Tag, error) {
	if _, err := r.GetByID(ctx, datasetID); err != nil {
		return nil, err
	}

	var tags []*model.Tag
	if err := r.db.WithContext(ctx).
		Model(&model.Tag{}).
		Joins("JOIN dataset_tags ON dataset_tags.tag_id = tags.id").
		Where("dataset_tags.dataset_id = ?", datasetID).
		Order("tags.created_at, tags.id").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// AddTag 为数据集添加标签
// 两侧任一缺失或已删除返回 gorm.ErrRecordNotFound；已关联时为幂等成功，不产生重复行
func (r *datasetRepository) AddTag(ctx context.Context, datasetID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", datasetID).First(&model.Dataset{}).Error; err != nil {
			return fmt.Errorf("dataset %s: %w", datasetID, err)
		}
		if err := tx.Where("id = ?", tagID).First(&model.Tag{}).Error; err != nil {
			return fmt.Errorf("tag %s: %w", tagID, err)
		}

		var count int64
		if err := tx.Model(&model.DatasetTag{}).
			Where("dataset_id = ? AND tag_id = ?", datasetID, tagID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		return tx.Create(&model.DatasetTag{DatasetID: datasetID, TagID: tagID}).Error
	})
}

// RemoveTag 移除数据集的标签
// 两侧任一缺失或已删除返回 gorm.ErrRecordNotFound；关联不存在时为无操作成功
func (r *datasetRepository) RemoveTag(ctx context.Context, datasetID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", datasetID).First(&model.Dataset{}).Error; err != nil {
			return fmt.Errorf("dataset %s: %w", datasetID, err)
		}
		if err := tx.Where("id = ?", tagID).First(&model.Tag{}).Error; err != nil {
			return fmt.Errorf("tag %s: %w", tagID, err)
		}

		return tx.Where("dataset_id = ? AND tag_id = ?", datasetID, tagID).
			Delete(&model.DatasetTag{}).Error
	})
}

// Update 部分更新数据集，只修改 updates 中给出的列
func (r *datasetRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Dataset, error) {
	var dataset model.Dataset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&dataset).Error; err != nil {
			return fmt.Errorf("dataset %s: %w", id, err)
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&dataset).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

// SoftDelete 软删除数据集，并在同一事务内将计数器减一
// 设置删除时间戳的同时改写名称，释放唯一名称给后续实体复用
// 已删除的数据集不会被再次删除（返回 gorm.ErrRecordNotFound）
func (r *datasetRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*model.Dataset, error) {
	var dataset model.Dataset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&dataset).Error; err != nil {
			return fmt.Errorf("dataset %s: %w", id, err)
		}

		now := time.Now().UTC()
		renamed := deletedName(dataset.Name, now)
		if err := tx.Model(&dataset).Updates(map[string]any{
			"deleted_at": now,
			"name":       renamed,
		}).Error; err != nil {
			return err
		}
		dataset.Name = renamed
		dataset.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}

		return incrementCounter(tx, model.ActiveDatasetsCountKey, -1)
	})
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

// deletedName 软删除时的名称改写
func deletedName(name string, ts time.Time) string {
	return fmt.Sprintf("deleted_%d_%s", ts.Unix(), name)
}

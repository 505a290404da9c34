package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"gorm.io/gorm"
)

// TagRepository 标签仓库接口
// 与数据集不同，标签不维护计数器，也没有关联类操作
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	List(ctx context.Context) ([]*model.Tag, error)
	Search(ctx context.Context, name string) ([]*model.Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Tag, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (*model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create 创建标签
func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// List 按创建顺序列出所有未删除的标签
func (r *tagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Search 按名称子串检索未删除的标签，不区分大小写
func (r *tagRepository) Search(ctx context.Context, name string) ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := r.db.WithContext(ctx).
		Where("lower(name) LIKE lower(?)", "%"+name+"%").
		Order("created_at, id").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetByID 根据 ID 获取未删除的标签
func (r *tagRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, fmt.Errorf("tag %s: %w", id, err)
	}
	return &tag, nil
}

// Update 部分更新标签，只修改 updates 中给出的列
func (r *tagRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
			return fmt.Errorf("tag %s: %w", id, err)
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&tag).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// SoftDelete 软删除标签，同时改写名称释放唯一约束
// 已删除的标签不会被再次删除（返回 gorm.ErrRecordNotFound）
func (r *tagRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
			return fmt.Errorf("tag %s: %w", id, err)
		}

		now := time.Now().UTC()
		renamed := deletedName(tag.Name, now)
		if err := tx.Model(&tag).Updates(map[string]any{
			"deleted_at": now,
			"name":       renamed,
		}).Error; err != nil {
			return err
		}
		tag.Name = renamed
		tag.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

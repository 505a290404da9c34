package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetadataRepository 元数据仓库接口
type MetadataRepository interface {
	Get(ctx context.Context, item string) (*model.Metadata, error)
	CounterValue(ctx context.Context, item string) (int64, error)
}

type metadataRepository struct {
	db *gorm.DB
}

// NewMetadataRepository 创建元数据仓库
func NewMetadataRepository(db *gorm.DB) MetadataRepository {
	return &metadataRepository{db: db}
}

// Get 根据键获取元数据
func (r *metadataRepository) Get(ctx context.Context, item string) (*model.Metadata, error) {
	var meta model.Metadata
	if err := r.db.WithContext(ctx).Where("item = ?", item).First(&meta).Error; err != nil {
		return nil, fmt.Errorf("metadata %s: %w", item, err)
	}
	return &meta, nil
}

// CounterValue 读取计数器当前值，键不存在时返回 0
func (r *metadataRepository) CounterValue(ctx context.Context, item string) (int64, error) {
	return counterValue(r.db.WithContext(ctx), item)
}

// counterValue 在给定的 db/tx 上读取计数器，键不存在时返回 0
func counterValue(db *gorm.DB, item string) (int64, error) {
	var meta model.Metadata
	if err := db.Where("item = ?", item).First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return meta.IntValue(), nil
}

// incrementCounter 在事务内增量维护计数器，键不存在时先创建为 0
// 计数器行加 FOR UPDATE 行锁，并发的创建/删除在这一行上串行，
// 避免读-改-写的丢失更新（SQLite 本身写串行，该锁保证 Postgres 路径同样正确）
func incrementCounter(tx *gorm.DB, item string, delta int64) error {
	var meta model.Metadata
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item = ?", item).
		First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		meta = model.Metadata{Item: item, Value: int64(0)}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("create counter %s: %w", item, err)
		}
	} else if err != nil {
		return fmt.Errorf("lock counter %s: %w", item, err)
	}

	return tx.Model(&meta).Update("value", meta.IntValue()+delta).Error
}

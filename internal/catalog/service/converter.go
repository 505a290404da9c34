package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/opendatagh/catalog/internal/catalog/entity"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
)

// datasetModelToEntity 将 model.Dataset 转换为 entity.Dataset
func datasetModelToEntity(m *model.Dataset) (*entity.Dataset, error) {
	e := &entity.Dataset{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}

	// UUID 和时间字段类型不同，手动映射
	e.ID = m.ID.String()
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	e.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)

	if len(m.Tags) > 0 {
		e.Tags = make([]*entity.Tag, 0, len(m.Tags))
		for _, tag := range m.Tags {
			te, err := tagModelToEntity(tag)
			if err != nil {
				return nil, err
			}
			e.Tags = append(e.Tags, te)
		}
	} else {
		e.Tags = nil
	}

	return e, nil
}

// datasetModelsToEntities 批量转换数据集
func datasetModelsToEntities(ms []*model.Dataset) ([]*entity.Dataset, error) {
	entities := make([]*entity.Dataset, 0, len(ms))
	for _, m := range ms {
		e, err := datasetModelToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// tagModelToEntity 将 model.Tag 转换为 entity.Tag
func tagModelToEntity(m *model.Tag) (*entity.Tag, error) {
	e := &entity.Tag{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}

	e.ID = m.ID.String()
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	e.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)

	return e, nil
}

// tagModelsToEntities 批量转换标签
func tagModelsToEntities(ms []*model.Tag) ([]*entity.Tag, error) {
	entities := make([]*entity.Tag, 0, len(ms))
	for _, m := range ms {
		e, err := tagModelToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

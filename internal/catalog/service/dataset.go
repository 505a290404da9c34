package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/opendatagh/catalog/internal/catalog/entity"
	"github.com/opendatagh/catalog/internal/catalog/repository"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
)

// DatasetService 数据集服务
// 负责参数转换与错误归类，事务语义由仓库层保证
type DatasetService struct {
	datasetRepo repository.DatasetRepository
}

// NewDatasetService 创建数据集服务
func NewDatasetService(datasetRepo repository.DatasetRepository) *DatasetService {
	return &DatasetService{
		datasetRepo: datasetRepo,
	}
}

// Create 创建数据集
// 名称在未删除数据集中必须唯一，冲突返回 ConstraintViolation
func (s *DatasetService) Create(ctx context.Context, req *entity.CreateDatasetRequest) (*entity.Dataset, error) {
	dataset := &model.Dataset{
		Name:        req.Name,
		Description: req.Description,
		Source:      req.Source,
		License:     req.License,
		Format:      req.Format,
		Size:        req.Size,
		RowCount:    req.RowCount,
		ColumnCount: req.ColumnCount,
	}

	if err := s.datasetRepo.Create(ctx, dataset); err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}
	return datasetModelToEntity(dataset)
}

// List 分页列出未删除的数据集
// item_count 取自计数器，不随当前页的条目数变化
func (s *DatasetService) List(ctx context.Context, req *entity.ListDatasetsRequest) (*entity.Page[*entity.Dataset], error) {
	datasets, count, err := s.datasetRepo.List(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}

	items, err := datasetModelsToEntities(datasets)
	if err != nil {
		return nil, err
	}
	return &entity.Page[*entity.Dataset]{
		Items:     items,
		ItemCount: count,
		Page:      req.Page,
		Limit:     req.Limit,
	}, nil
}

// Search 按条件检索未删除的数据集
// item_count 是实际返回的条目数，分页时不等于命中总数
func (s *DatasetService) Search(ctx context.Context, req *entity.SearchDatasetsRequest) (*entity.Page[*entity.Dataset], error) {
	filter := repository.SearchFilter{
		Name:    req.Name,
		Source:  req.Source,
		License: req.License,
		Tags:    req.Tags,
	}

	datasets, err := s.datasetRepo.Search(ctx, filter, req.Page, req.Limit)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}

	items, err := datasetModelsToEntities(datasets)
	if err != nil {
		return nil, err
	}
	return &entity.Page[*entity.Dataset]{
		Items:     items,
		ItemCount: int64(len(items)),
		Page:      req.Page,
		Limit:     req.Limit,
	}, nil
}

// Get 获取单个未删除的数据集
func (s *DatasetService) Get(ctx context.Context, datasetID string) (*entity.Dataset, error) {
	id, err := parseID(datasetID, "dataset")
	if err != nil {
		return nil, err
	}

	dataset, err := s.datasetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}
	return datasetModelToEntity(dataset)
}

// ListTags 列出数据集的未删除标签
func (s *DatasetService) ListTags(ctx context.Context, datasetID string) ([]*entity.Tag, error) {
	id, err := parseID(datasetID, "dataset")
	if err != nil {
		return nil, err
	}

	tags, err := s.datasetRepo.ListTags(ctx, id)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}
	return tagModelsToEntities(tags)
}

// AddTag 为数据集添加标签，重复添加为幂等成功
// 返回带标签列表的数据集
func (s *DatasetService) AddTag(ctx context.Context, req *entity.DatasetTagRequest) (*entity.Dataset, error) {
	datasetID, err := parseID(req.DatasetID, "dataset")
	if err != nil {
		return nil, err
	}
	tagID, err := parseID(req.TagID, "tag")
	if err != nil {
		return nil, err
	}

	if err := s.datasetRepo.AddTag(ctx, datasetID, tagID); err != nil {
		return nil, classifyStorageError(err, "dataset or tag not found")
	}
	return s.datasetWithTags(ctx, datasetID)
}

// RemoveTag 移除数据集的标签
// 两侧实体必须存在；关联本身不存在时为无操作成功
func (s *DatasetService) RemoveTag(ctx context.Context, req *entity.DatasetTagRequest) (*entity.Dataset, error) {
	datasetID, err := parseID(req.DatasetID, "dataset")
	if err != nil {
		return nil, err
	}
	tagID, err := parseID(req.TagID, "tag")
	if err != nil {
		return nil, err
	}

	if err := s.datasetRepo.RemoveTag(ctx, datasetID, tagID); err != nil {
		return nil, classifyStorageError(err, "dataset or tag not found")
	}
	return s.datasetWithTags(ctx, datasetID)
}

// Update 部分更新数据集，nil 字段保持原值
func (s *DatasetService) Update(ctx context.Context, req *entity.UpdateDatasetRequest) (*entity.Dataset, error) {
	id, err := parseID(req.DatasetID, "dataset")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.License != nil {
		updates["license"] = *req.License
	}
	if req.Format != nil {
		updates["format"] = *req.Format
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.RowCount != nil {
		updates["row_count"] = *req.RowCount
	}
	if req.ColumnCount != nil {
		updates["column_count"] = *req.ColumnCount
	}

	dataset, err := s.datasetRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}
	return datasetModelToEntity(dataset)
}

// Delete 软删除数据集，返回被删除的 ID
// 删除不是幂等的：对已删除的数据集再次删除返回 NotFound
func (s *DatasetService) Delete(ctx context.Context, datasetID string) (*entity.DeleteDatasetResponse, error) {
	id, err := parseID(datasetID, "dataset")
	if err != nil {
		return nil, err
	}

	dataset, err := s.datasetRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}
	return &entity.DeleteDatasetResponse{ID: dataset.ID.String()}, nil
}

// datasetWithTags 加载数据集及其标签列表
func (s *DatasetService) datasetWithTags(ctx context.Context, datasetID uuid.UUID) (*entity.Dataset, error) {
	dataset, err := s.datasetRepo.GetByID(ctx, datasetID)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}
	tags, err := s.datasetRepo.ListTags(ctx, datasetID)
	if err != nil {
		return nil, classifyStorageError(err, "dataset not found")
	}
	dataset.Tags = tags

	return datasetModelToEntity(dataset)
}

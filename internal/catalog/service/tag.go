package service

import (
	"context"

	"github.com/opendatagh/catalog/internal/catalog/entity"
	"github.com/opendatagh/catalog/internal/catalog/repository"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
)

// TagService 标签服务
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

// Create 创建标签，名称在未删除标签中必须唯一
func (s *TagService) Create(ctx context.Context, req *entity.CreateTagRequest) (*entity.Tag, error) {
	tag := &model.Tag{
		Name: req.Name,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, classifyStorageError(err, "tag not found")
	}
	return tagModelToEntity(tag)
}

// List 列出所有未删除的标签，不分页
func (s *TagService) List(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, classifyStorageError(err, "tag not found")
	}
	return tagModelsToEntities(tags)
}

// Search 按名称子串检索未删除的标签
func (s *TagService) Search(ctx context.Context, req *entity.SearchTagsRequest) ([]*entity.Tag, error) {
	tags, err := s.tagRepo.Search(ctx, req.Name)
	if err != nil {
		return nil, classifyStorageError(err, "tag not found")
	}
	return tagModelsToEntities(tags)
}

// Get 获取单个未删除的标签
func (s *TagService) Get(ctx context.Context, tagID string) (*entity.Tag, error) {
	id, err := parseID(tagID, "tag")
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classifyStorageError(err, "tag not found")
	}
	return tagModelToEntity(tag)
}

// Update 部分更新标签
func (s *TagService) Update(ctx context.Context, req *entity.UpdateTagRequest) (*entity.Tag, error) {
	id, err := parseID(req.TagID, "tag")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}

	tag, err := s.tagRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, classifyStorageError(err, "tag not found")
	}
	return tagModelToEntity(tag)
}

// Delete 软删除标签，返回被删除的 ID
func (s *TagService) Delete(ctx context.Context, tagID string) (*entity.DeleteTagResponse, error) {
	id, err := parseID(tagID, "tag")
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, classifyStorageError(err, "tag not found")
	}
	return &entity.DeleteTagResponse{ID: tag.ID.String()}, nil
}

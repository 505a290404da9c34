package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opendatagh/catalog/internal/catalog/entity"
	"github.com/opendatagh/catalog/internal/catalog/service"
	"github.com/opendatagh/catalog/pkg/ginx"
	"github.com/rs/zerolog"
)

// TagServiceInterface 定义标签服务的接口
type TagServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateTagRequest) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)
	Search(ctx context.Context, req *entity.SearchTagsRequest) ([]*entity.Tag, error)
	Get(ctx context.Context, tagID string) (*entity.Tag, error)
	Update(ctx context.Context, req *entity.UpdateTagRequest) (*entity.Tag, error)
	Delete(ctx context.Context, tagID string) (*entity.DeleteTagResponse, error)
}

type Tag struct {
	tagService TagServiceInterface
}

func NewTag(tagService *service.TagService) *Tag {
	return &Tag{
		tagService: tagService,
	}
}

func (t *Tag) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("", ginx.Adapt5(t.Create))
	router.GET("", ginx.Adapt3(t.List))
	router.GET("/search", ginx.Adapt5(t.Search))
	router.GET("/:tag_id", ginx.Adapt5(t.Get))
	router.PUT("/:tag_id", ginx.Adapt5(t.Update))
	router.DELETE("/:tag_id", ginx.Adapt5(t.Delete))
}

func (t *Tag) Create(ctx *gin.Context, req *entity.CreateTagRequest) (*entity.Tag, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("name", req.Name).
		Msg("CreateTag called")

	tag, err := t.tagService.Create(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("name", req.Name).
			Msg("Failed to create tag")
		return nil, err
	}

	logger.Info().
		Str("tag_id", tag.ID).
		Str("name", tag.Name).
		Msg("Tag created successfully")

	return tag, nil
}

func (t *Tag) List(ctx *gin.Context) ([]*entity.Tag, error) {
	logger := zerolog.Ctx(ctx)

	tags, err := t.tagService.List(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to list tags")
		return nil, err
	}

	return tags, nil
}

func (t *Tag) Search(ctx *gin.Context, req *entity.SearchTagsRequest) ([]*entity.Tag, error) {
	logger := zerolog.Ctx(ctx)

	tags, err := t.tagService.Search(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("name", req.Name).
			Msg("Failed to search tags")
		return nil, err
	}

	return tags, nil
}

func (t *Tag) Get(ctx *gin.Context, req *entity.GetTagRequest) (*entity.Tag, error) {
	logger := zerolog.Ctx(ctx)

	tag, err := t.tagService.Get(ctx, req.TagID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("tag_id", req.TagID).
			Msg("Failed to get tag")
		return nil, err
	}

	return tag, nil
}

func (t *Tag) Update(ctx *gin.Context, req *entity.UpdateTagRequest) (*entity.Tag, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("tag_id", req.TagID).
		Msg("UpdateTag called")

	tag, err := t.tagService.Update(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("tag_id", req.TagID).
			Msg("Failed to update tag")
		return nil, err
	}

	return tag, nil
}

func (t *Tag) Delete(ctx *gin.Context, req *entity.GetTagRequest) (*entity.DeleteTagResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("tag_id", req.TagID).
		Msg("DeleteTag called")

	response, err := t.tagService.Delete(ctx, req.TagID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("tag_id", req.TagID).
			Msg("Failed to delete tag")
		return nil, err
	}

	logger.Info().
		Str("tag_id", response.ID).
		Msg("Tag deleted successfully")

	return response, nil
}

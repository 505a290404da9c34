package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opendatagh/catalog/internal/catalog/entity"
	"github.com/opendatagh/catalog/internal/catalog/service"
	"github.com/opendatagh/catalog/pkg/ginx"
	"github.com/rs/zerolog"
)

// DatasetServiceInterface 定义数据集服务的接口
type DatasetServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateDatasetRequest) (*entity.Dataset, error)
	List(ctx context.Context, req *entity.ListDatasetsRequest) (*entity.Page[*entity.Dataset], error)
	Search(ctx context.Context, req *entity.SearchDatasetsRequest) (*entity.Page[*entity.Dataset], error)
	Get(ctx context.Context, datasetID string) (*entity.Dataset, error)
	ListTags(ctx context.Context, datasetID string) ([]*entity.Tag, error)
	AddTag(ctx context.Context, req *entity.DatasetTagRequest) (*entity.Dataset, error)
	RemoveTag(ctx context.Context, req *entity.DatasetTagRequest) (*entity.Dataset, error)
	Update(ctx context.Context, req *entity.UpdateDatasetRequest) (*entity.Dataset, error)
	Delete(ctx context.Context, datasetID string) (*entity.DeleteDatasetResponse, error)
}

type Dataset struct {
	datasetService DatasetServiceInterface
}

func NewDataset(datasetService *service.DatasetService) *Dataset {
	return &Dataset{
		datasetService: datasetService,
	}
}

// RegisterRoutes 注册数据集路由，创建接口需要登录
func (d *Dataset) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("", requireAuth, ginx.Adapt5(d.Create))
	router.GET("", ginx.Adapt5(d.List))
	router.GET("/search", ginx.Adapt5(d.Search))
	router.GET("/tags/:dataset_id", ginx.Adapt5(d.ListTags))
	router.GET("/:dataset_id", ginx.Adapt5(d.Get))
	router.PATCH("/add_tag/:dataset_id/:tag_id", ginx.Adapt5(d.AddTag))
	router.PATCH("/remove_tag/:dataset_id/:tag_id", ginx.Adapt5(d.RemoveTag))
	router.PATCH("/:dataset_id", ginx.Adapt5(d.Update))
	router.DELETE("/:dataset_id", ginx.Adapt5(d.Delete))
}

func (d *Dataset) Create(ctx *gin.Context, req *entity.CreateDatasetRequest) (*entity.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("name", req.Name).
		Msg("CreateDataset called")

	dataset, err := d.datasetService.Create(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("name", req.Name).
			Msg("Failed to create dataset")
		return nil, err
	}

	logger.Info().
		Str("dataset_id", dataset.ID).
		Str("name", dataset.Name).
		Msg("Dataset created successfully")

	return dataset, nil
}

func (d *Dataset) List(ctx *gin.Context, req *entity.ListDatasetsRequest) (*entity.Page[*entity.Dataset], error) {
	logger := zerolog.Ctx(ctx)

	page, err := d.datasetService.List(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to list datasets")
		return nil, err
	}

	return page, nil
}

func (d *Dataset) Search(ctx *gin.Context, req *entity.SearchDatasetsRequest) (*entity.Page[*entity.Dataset], error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Interface("request", req).
		Msg("SearchDatasets called")

	page, err := d.datasetService.Search(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to search datasets")
		return nil, err
	}

	return page, nil
}

func (d *Dataset) Get(ctx *gin.Context, req *entity.GetDatasetRequest) (*entity.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	dataset, err := d.datasetService.Get(ctx, req.DatasetID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("dataset_id", req.DatasetID).
			Msg("Failed to get dataset")
		return nil, err
	}

	return dataset, nil
}

func (d *Dataset) ListTags(ctx *gin.Context, req *entity.GetDatasetRequest) ([]*entity.Tag, error) {
	logger := zerolog.Ctx(ctx)

	tags, err := d.datasetService.ListTags(ctx, req.DatasetID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("dataset_id", req.DatasetID).
			Msg("Failed to list dataset tags")
		return nil, err
	}

	return tags, nil
}

func (d *Dataset) AddTag(ctx *gin.Context, req *entity.DatasetTagRequest) (*entity.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("dataset_id", req.DatasetID).
		Str("tag_id", req.TagID).
		Msg("AddTag called")

	dataset, err := d.datasetService.AddTag(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("dataset_id", req.DatasetID).
			Str("tag_id", req.TagID).
			Msg("Failed to add tag to dataset")
		return nil, err
	}

	return dataset, nil
}

func (d *Dataset) RemoveTag(ctx *gin.Context, req *entity.DatasetTagRequest) (*entity.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("dataset_id", req.DatasetID).
		Str("tag_id", req.TagID).
		Msg("RemoveTag called")

	dataset, err := d.datasetService.RemoveTag(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("dataset_id", req.DatasetID).
			Str("tag_id", req.TagID).
			Msg("Failed to remove tag from dataset")
		return nil, err
	}

	return dataset, nil
}

func (d *Dataset) Update(ctx *gin.Context, req *entity.UpdateDatasetRequest) (*entity.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("dataset_id", req.DatasetID).
		Msg("UpdateDataset called")

	dataset, err := d.datasetService.Update(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("dataset_id", req.DatasetID).
			Msg("Failed to update dataset")
		return nil, err
	}

	logger.Info().
		Str("dataset_id", dataset.ID).
		Msg("Dataset updated successfully")

	return dataset, nil
}

func (d *Dataset) Delete(ctx *gin.Context, req *entity.GetDatasetRequest) (*entity.DeleteDatasetResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("dataset_id", req.DatasetID).
		Msg("DeleteDataset called")

	response, err := d.datasetService.Delete(ctx, req.DatasetID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("dataset_id", req.DatasetID).
			Msg("Failed to delete dataset")
		return nil, err
	}

	logger.Info().
		Str("dataset_id", response.ID).
		Msg("Dataset deleted successfully")

	return response, nil
}

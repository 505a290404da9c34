package entity

import (
	"github.com/opendatagh/catalog/pkg/apierror"
)

// Dataset 数据集信息
type Dataset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`         // 数据集名称，未删除数据集中唯一
	Description string `json:"description"`  // 描述
	Source      string `json:"source"`       // 数据来源
	License     string `json:"license"`      // 许可证
	Format      string `json:"format"`       // 文件格式
	Size        int64  `json:"size"`         // 大小（MB）
	RowCount    int64  `json:"row_count"`    // 行数
	ColumnCount int64  `json:"column_count"` // 列数
	Votes       int64  `json:"votes"`        // 点赞数
	Tags        []*Tag `json:"tags,omitempty"`
	CreatedAt   string `json:"created_at"` // 创建时间
	UpdatedAt   string `json:"updated_at"` // 更新时间
}

// CreateDatasetRequest 创建数据集请求
// 服务端管理的字段（id、时间戳、删除标记、votes）不接受输入
type CreateDatasetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	License     string `json:"license"`
	Format      string `json:"format"`
	Size        int64  `json:"size"`
	RowCount    int64  `json:"row_count"`
	ColumnCount int64  `json:"column_count"`
}

// IsValid 校验创建请求
func (r *CreateDatasetRequest) IsValid() error {
	if r.Name == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "name is required", nil)
	}
	if r.Description == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "description is required", nil)
	}
	if r.Source == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "source is required", nil)
	}
	if r.License == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "license is required", nil)
	}
	if r.Format == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "format is required", nil)
	}
	return nil
}

// ListDatasetsRequest 分页列表请求
type ListDatasetsRequest struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// IsValid 规范化分页参数，始终合法
func (r *ListDatasetsRequest) IsValid() error {
	r.Page, r.Limit = normalizePage(r.Page, r.Limit)
	return nil
}

// SearchDatasetsRequest 数据集检索请求，过滤条件均可选且取交集
type SearchDatasetsRequest struct {
	Page    int      `form:"page" json:"page"`
	Limit   int      `form:"limit" json:"limit"`
	Name    string   `form:"name" json:"name"`
	Source  string   `form:"source" json:"source"`
	License string   `form:"license" json:"license"`
	Tags    []string `form:"tags" json:"tags"`
}

// IsValid 规范化分页参数，始终合法
func (r *SearchDatasetsRequest) IsValid() error {
	r.Page, r.Limit = normalizePage(r.Page, r.Limit)
	return nil
}

// GetDatasetRequest 获取单个数据集请求
type GetDatasetRequest struct {
	DatasetID string `uri:"dataset_id" json:"dataset_id"`
}

// DatasetTagRequest 数据集与标签的关联/解除关联请求
type DatasetTagRequest struct {
	DatasetID string `uri:"dataset_id" json:"dataset_id"`
	TagID     string `uri:"tag_id" json:"tag_id"`
}

// UpdateDatasetRequest 部分更新请求
// 指针字段为 nil 表示未提供，对应列保持原值
type UpdateDatasetRequest struct {
	DatasetID   string  `uri:"dataset_id" json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Source      *string `json:"source"`
	License     *string `json:"license"`
	Format      *string `json:"format"`
	Size        *int64  `json:"size"`
	RowCount    *int64  `json:"row_count"`
	ColumnCount *int64  `json:"column_count"`
}

// DeleteDatasetResponse 软删除响应，返回被删除的数据集 ID
type DeleteDatasetResponse struct {
	ID string `json:"id"`
}

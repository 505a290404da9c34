package entity

import (
	"github.com/opendatagh/catalog/pkg/apierror"
)

// Tag 标签信息
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`       // 标签名称，未删除标签中唯一
	CreatedAt string `json:"created_at"` // 创建时间
	UpdatedAt string `json:"updated_at"` // 更新时间
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name string `json:"name"`
}

// IsValid 校验创建请求
func (r *CreateTagRequest) IsValid() error {
	if r.Name == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "name is required", nil)
	}
	return nil
}

// SearchTagsRequest 标签检索请求
type SearchTagsRequest struct {
	Name string `form:"name" json:"name"`
}

// GetTagRequest 获取单个标签请求
type GetTagRequest struct {
	TagID string `uri:"tag_id" json:"tag_id"`
}

// UpdateTagRequest 部分更新请求，nil 字段保持原值
type UpdateTagRequest struct {
	TagID string  `uri:"tag_id" json:"-"`
	Name  *string `json:"name"`
}

// DeleteTagResponse 软删除响应，返回被删除的标签 ID
type DeleteTagResponse struct {
	ID string `json:"id"`
}

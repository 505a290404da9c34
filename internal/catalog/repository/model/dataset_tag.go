package model

import (
	"github.com/google/uuid"
)

// DatasetTag 数据集与标签的关联表
// 复合主键保证同一 (dataset_id, tag_id) 至多存在一行，纯关联记录，无其他字段
type DatasetTag struct {
	DatasetID uuid.UUID `gorm:"type:text;primaryKey;column:dataset_id" json:"dataset_id"`
	TagID     uuid.UUID `gorm:"type:text;primaryKey;column:tag_id" json:"tag_id"`
}

// TableName 指定表名
func (DatasetTag) TableName() string {
	return "dataset_tags"
}

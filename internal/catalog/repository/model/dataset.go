package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dataset 数据集表
// name 的唯一性只约束未删除的行（见 repository.createIndexes 的部分唯一索引）
type Dataset struct {
	ID          uuid.UUID      `gorm:"type:text;primaryKey;column:id" json:"id"`
	Name        string         `gorm:"type:text;not null;column:name" json:"name"`                 // 数据集名称
	Description string         `gorm:"type:text;not null;column:description" json:"description"`   // 描述
	Source      string         `gorm:"type:text;not null;column:source" json:"source"`             // 数据来源
	License     string         `gorm:"type:text;not null;column:license" json:"license"`           // 许可证
	Format      string         `gorm:"type:text;not null;column:format" json:"format"`             // 文件格式：csv, json 等
	Size        int64          `gorm:"type:integer;column:size" json:"size"`                       // 大小（MB）
	RowCount    int64          `gorm:"type:integer;column:row_count" json:"row_count"`             // 行数
	ColumnCount int64          `gorm:"type:integer;column:column_count" json:"column_count"`       // 列数
	Votes       int64          `gorm:"type:integer;not null;default:0;column:votes" json:"votes"`  // 点赞数，暂无接口使用
	Tags        []*Tag         `gorm:"many2many:dataset_tags;joinForeignKey:DatasetID;joinReferences:TagID" json:"tags,omitempty"`
	CreatedAt   time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"type:datetime;index:idx_datasets_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Dataset) TableName() string {
	return "datasets"
}

// BeforeCreate 创建时生成 UUID
func (d *Dataset) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

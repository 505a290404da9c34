package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag 标签表
// name 的唯一性只约束未删除的行
type Tag struct {
	ID        uuid.UUID      `gorm:"type:text;primaryKey;column:id" json:"id"`
	Name      string         `gorm:"type:text;not null;column:name" json:"name"` // 标签名称
	Datasets  []*Dataset     `gorm:"many2many:dataset_tags;joinForeignKey:TagID;joinReferences:DatasetID" json:"datasets,omitempty"`
	CreatedAt time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"type:datetime;index:idx_tags_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// BeforeCreate 创建时生成 UUID
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveDatasetsCountKey 当前未删除数据集数量的计数器键
const ActiveDatasetsCountKey = "active_datasets_count"

// Metadata 应用元数据表，按 item 存储 JSON 值
// 目前只使用 active_datasets_count 一个键
type Metadata struct {
	ID        uuid.UUID      `gorm:"type:text;primaryKey;column:id" json:"id"`
	Item      string         `gorm:"type:text;not null;column:item" json:"item"`           // 键
	Value     any            `gorm:"serializer:json;not null;column:value" json:"value"`   // JSON 值
	CreatedAt time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"type:datetime;index:idx_metadata_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Metadata) TableName() string {
	return "metadata"
}

// BeforeCreate 创建时生成 UUID
func (m *Metadata) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IntValue 将 JSON 值解释为整数
// JSON 反序列化会把数字还原成 float64，这里统一转换
func (m *Metadata) IntValue() int64 {
	switch v := m.Value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

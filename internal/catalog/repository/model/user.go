package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户镜像表
// 身份的权威来源是外部身份提供方，本表只是注册时写入的只读镜像，
// 本地认证模式下 password_hash 存 bcrypt 哈希
type User struct {
	ID           uuid.UUID      `gorm:"type:text;primaryKey;column:id" json:"id"`
	Username     string         `gorm:"type:text;not null;column:username" json:"username"`
	Email        string         `gorm:"type:text;not null;column:email" json:"email"`
	PasswordHash string         `gorm:"type:text;column:password_hash" json:"-"` // 仅本地认证模式使用
	CreatedAt    time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"type:datetime;index:idx_users_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate 创建时生成 UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Package idgen 提供递增请求 ID 生成器
//
// 使用 Sonyflake 算法生成全局唯一且递增的 ID，
// 用于错误响应中的 requestID 字段，便于日志关联排查。
package idgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

// Generator 递增 ID 生成器
// 使用 Sonyflake 算法生成全局唯一且递增的 ID
type Generator struct {
	sf *sonyflake.Sonyflake
}

var (
	defaultGenerator     *Generator
	defaultGeneratorOnce sync.Once
)

// DefaultGenerator 返回默认的 ID 生成器
func DefaultGenerator() *Generator {
	defaultGeneratorOnce.Do(func() {
		defaultGenerator = New()
	})
	return defaultGenerator
}

// New 创建新的 ID 生成器
func New() *Generator {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), // 起始时间
	})
	if sf == nil {
		// 如果创建失败，使用当前时间作为起始时间
		sf = sonyflake.NewSonyflake(sonyflake.Settings{
			StartTime: time.Now(),
		})
	}

	return &Generator{
		sf: sf,
	}
}

// GenerateRequestID 生成请求 ID（格式：req-{递增 ID}）
func (g *Generator) GenerateRequestID() (string, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return "", fmt.Errorf("generate request ID: %w", err)
	}
	return fmt.Sprintf("req-%d", id), nil
}

// GenerateRequestID 使用默认生成器生成请求 ID
func GenerateRequestID() (string, error) {
	return DefaultGenerator().GenerateRequestID()
}

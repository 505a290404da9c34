// Package service 提供业务逻辑层的服务实现
package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/opendatagh/catalog/pkg/apierror"
	"gorm.io/gorm"
)

// classifyStorageError 将持久化层错误归类到错误分类
// 未命中已知类别的错误一律归入 StorageError，
// 原始信息保留在 RawError 中供日志使用，不会返回给客户端
func classifyStorageError(err error, notFoundMessage string) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.WrapError(apierror.ErrNotFound, notFoundMessage, err)
	}
	if isConstraintViolation(err) {
		// 约束冲突是客户端可修复的错误，细节返回给客户端
		return apierror.WrapError(apierror.ErrConstraintViolation, err.Error(), err)
	}
	return apierror.WrapError(apierror.ErrStorageError, "storage operation failed", err)
}

// isConstraintViolation 判断是否为唯一约束冲突
// SQLite 和 Postgres 的报错文案不同，都要覆盖
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// parseID 解析路径中的 UUID，格式非法视为客户端错误
func parseID(raw, kind string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierror.WrapError(apierror.ErrInvalidParameter, kind+" ID is not a valid UUID", err)
	}
	return id, nil
}

package apierror

import "net/http"

// 目录服务错误分类
// 不属于以下四类的持久化错误统一归入 StorageError，
// 原始错误信息只记录日志，不返回给客户端
var (
	// ErrNotFound 实体不存在或已被软删除
	ErrNotFound = &Error{
		Code:       "NotFound",
		Message:    "The requested resource does not exist.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrConstraintViolation 唯一名称或关联约束冲突，由客户端输入引起
	ErrConstraintViolation = &Error{
		Code:       "ConstraintViolation",
		Message:    "The request conflicts with an existing resource.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrInvalidParameter 请求参数不合法
	ErrInvalidParameter = &Error{
		Code:       "InvalidParameter",
		Message:    "One or more request parameters are invalid.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrUnauthorized 身份提供方拒绝了凭证或 token
	ErrUnauthorized = &Error{
		Code:       "Unauthorized",
		Message:    "The provided credentials or token were rejected.",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrStorageError 未分类的持久化失败
	ErrStorageError = &Error{
		Code:       "StorageError",
		Message:    "An internal storage error has occurred.",
		HTTPStatus: http.StatusInternalServerError,
	}
)

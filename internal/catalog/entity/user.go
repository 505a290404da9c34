package entity

import (
	"regexp"

	"github.com/opendatagh/catalog/pkg/apierror"
)

// emailPattern 邮箱格式校验
var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// LoginRequest 登录请求，沿用 OAuth2 password 表单的字段名，username 填邮箱
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// IsValid 校验登录请求
func (r *LoginRequest) IsValid() error {
	if r.Username == "" || r.Password == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "username and password are required", nil)
	}
	return nil
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // 恒为 bearer
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// IsValid 校验注册请求
func (r *RegisterRequest) IsValid() error {
	if !emailPattern.MatchString(r.Email) {
		return apierror.WrapError(apierror.ErrInvalidParameter, "email is not a valid address", nil)
	}
	if r.Password == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "password is required", nil)
	}
	if r.Username == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "username is required", nil)
	}
	return nil
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	Details RegisterDetails `json:"details"`
}

// RegisterDetails 注册确认信息
type RegisterDetails struct {
	Message            string `json:"message"`
	Email              string `json:"email"`
	ConfirmationSentAt string `json:"confirmation_sent_at,omitempty"`
}

// ResendVerificationRequest 重发验证邮件请求
type ResendVerificationRequest struct {
	Email string `form:"email" json:"email"`
}

// IsValid 校验重发请求
func (r *ResendVerificationRequest) IsValid() error {
	if !emailPattern.MatchString(r.Email) {
		return apierror.WrapError(apierror.ErrInvalidParameter, "email is not a valid address", nil)
	}
	return nil
}

// MessageResponse 通用提示响应
type MessageResponse struct {
	Details MessageDetails `json:"details"`
}

// MessageDetails 提示信息
type MessageDetails struct {
	Message string `json:"message"`
}

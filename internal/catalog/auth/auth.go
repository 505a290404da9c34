// Package auth 提供外部身份提供方的网关
//
// 凭证校验、token 签发与注册全部委托给 Provider 实现，
// 服务自身不保存权威身份状态。Provider 是窄接口，
// 便于替换具体提供方或在测试中用本地实现代替。
package auth

import "context"

// User 提供方返回的用户信息
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Session 登录成功后签发的会话
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SignUpResult 注册成功的确认信息
type SignUpResult struct {
	Email              string `json:"email"`
	ConfirmationSentAt string `json:"confirmation_sent_at"`
}

// Provider 外部身份提供方接口
// 所有错误均为提供方的原始错误，由调用方归类到错误分类
type Provider interface {
	// SignIn 用邮箱和密码换取 token
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp 注册新用户
	SignUp(ctx context.Context, email, password, username string) (*SignUpResult, error)
	// Resend 重发验证邮件
	Resend(ctx context.Context, email string) error
	// GetUser 根据 token 查询当前用户，token 无效时返回错误
	GetUser(ctx context.Context, token string) (*User, error)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opendatagh/catalog/internal/catalog/repository"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials 邮箱或密码不正确
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken token 无效或已过期
	ErrInvalidToken = errors.New("invalid token")
)

// localTokenTTL 本地签发 token 的有效期
const localTokenTTL = 24 * time.Hour

// LocalProvider 本地身份提供方
// 开发和测试用，凭证保存在 users 表（bcrypt 哈希），token 为 HS256 JWT
type LocalProvider struct {
	secretKey []byte
	users     repository.UserRepository
}

// 编译时检查 LocalProvider 实现了 Provider 接口
var _ Provider = (*LocalProvider)(nil)

// NewLocalProvider 创建本地身份提供方
func NewLocalProvider(secretKey string, users repository.UserRepository) *LocalProvider {
	return &LocalProvider{
		secretKey: []byte(secretKey),
		users:     users,
	}
}

// localClaims 本地 token 的 JWT claims
type localClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SignIn 校验邮箱和密码，签发 token
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := localClaims{
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(localTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secretKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// SignUp 注册新用户，密码以 bcrypt 哈希保存在 users 表
func (p *LocalProvider) SignUp(ctx context.Context, email, password, username string) (*SignUpResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user already registered: %w", err)
	}

	return &SignUpResult{
		Email: email,
	}, nil
}

// Resend 本地模式没有验证邮件，用户存在即成功
func (p *LocalProvider) Resend(ctx context.Context, email string) error {
	if _, err := p.users.GetByEmail(ctx, email); err != nil {
		return fmt.Errorf("unknown email: %w", err)
	}
	return nil
}

// GetUser 校验 token 并返回其中的用户信息
func (p *LocalProvider) GetUser(ctx context.Context, token string) (*User, error) {
	parsed, err := jwt.ParseWithClaims(token, &localClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*localClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &User{
		ID:       claims.Subject,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}

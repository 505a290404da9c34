package service

import (
	"context"

	"github.com/opendatagh/catalog/internal/catalog/auth"
	"github.com/opendatagh/catalog/internal/catalog/entity"
	"github.com/opendatagh/catalog/internal/catalog/repository"
	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"github.com/opendatagh/catalog/pkg/apierror"
	"github.com/rs/zerolog"
)

// UserService 用户服务
// 身份校验委托给外部提供方，这里只做错误归类和响应组装
// mirror 为外部提供方模式下的本地用户镜像，本地提供方自己写 users 表，传 nil
type UserService struct {
	provider auth.Provider
	mirror   repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(provider auth.Provider, mirror repository.UserRepository) *UserService {
	return &UserService{
		provider: provider,
		mirror:   mirror,
	}
}

// Login 用邮箱和密码换取 token
// 提供方的任何失败统一归为 401，不区分用户不存在和密码错误
func (s *UserService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.TokenResponse, error) {
	session, err := s.provider.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrUnauthorized, "invalid login credentials", err)
	}

	tokenType := session.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return &entity.TokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   tokenType,
	}, nil
}

// Register 注册新用户
func (s *UserService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.RegisterResponse, error) {
	result, err := s.provider.SignUp(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInvalidParameter, err.Error(), err)
	}

	// 提供方已接受注册，镜像写入失败只记录，不影响结果
	if s.mirror != nil {
		mirrorErr := s.mirror.Create(ctx, &model.User{
			Username: req.Username,
			Email:    req.Email,
		})
		if mirrorErr != nil {
			zerolog.Ctx(ctx).Warn().
				Err(mirrorErr).
				Str("email", req.Email).
				Msg("Failed to write user mirror row")
		}
	}

	return &entity.RegisterResponse{
		Details: entity.RegisterDetails{
			Message:            "verification email sent",
			Email:              result.Email,
			ConfirmationSentAt: result.ConfirmationSentAt,
		},
	}, nil
}

// ResendVerification 重发验证邮件
func (s *UserService) ResendVerification(ctx context.Context, req *entity.ResendVerificationRequest) (*entity.MessageResponse, error) {
	if err := s.provider.Resend(ctx, req.Email); err != nil {
		return nil, apierror.WrapError(apierror.ErrInvalidParameter, err.Error(), err)
	}

	return &entity.MessageResponse{
		Details: entity.MessageDetails{
			Message: "verification email resent",
		},
	}, nil
}

// Verify 根据 token 查询当前用户，token 无效时返回 401
func (s *UserService) Verify(ctx context.Context, token string) (*auth.User, error) {
	user, err := s.provider.GetUser(ctx, token)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrUnauthorized, "invalid or expired token", err)
	}
	return user, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opendatagh/catalog/internal/catalog/entity"
	"github.com/opendatagh/catalog/internal/catalog/service"
	"github.com/opendatagh/catalog/pkg/apierror"
	"github.com/opendatagh/catalog/pkg/ginx"
	"github.com/rs/zerolog"
)

// UserServiceInterface 定义用户服务的接口
type UserServiceInterface interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.TokenResponse, error)
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.RegisterResponse, error)
	ResendVerification(ctx context.Context, req *entity.ResendVerificationRequest) (*entity.MessageResponse, error)
}

type User struct {
	userService UserServiceInterface
}

func NewUser(userService *service.UserService) *User {
	return &User{
		userService: userService,
	}
}

func (u *User) RegisterRoutes(router *gin.RouterGroup) {
	// 登录沿用 OAuth2 password 表单，需要显式的表单绑定
	router.POST("/login", u.Login)
	router.POST("/register", ginx.Adapt5(u.Register))
	router.GET("/resend-verification", ginx.Adapt5(u.ResendVerification))
}

// Login 表单登录，username 字段填邮箱
func (u *User) Login(ctx *gin.Context) {
	logger := zerolog.Ctx(ctx)

	var req entity.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ginx.RenderError(ctx, http.StatusBadRequest,
			apierror.WrapError(apierror.ErrInvalidParameter, "invalid login form", err))
		return
	}
	if err := req.IsValid(); err != nil {
		ginx.RenderError(ctx, http.StatusBadRequest, err)
		return
	}

	token, err := u.userService.Login(ctx, &req)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("username", req.Username).
			Msg("Login failed")
		ginx.RenderError(ctx, http.StatusUnauthorized, err)
		return
	}

	logger.Info().
		Str("username", req.Username).
		Msg("Login succeeded")

	ctx.JSON(http.StatusOK, token)
}

func (u *User) Register(ctx *gin.Context, req *entity.RegisterRequest) (*entity.RegisterResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("email", req.Email).
		Str("username", req.Username).
		Msg("Register called")

	response, err := u.userService.Register(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("email", req.Email).
			Msg("Failed to register user")
		return nil, err
	}

	logger.Info().
		Str("email", req.Email).
		Msg("User registered successfully")

	return response, nil
}

func (u *User) ResendVerification(ctx *gin.Context, req *entity.ResendVerificationRequest) (*entity.MessageResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("email", req.Email).
		Msg("ResendVerification called")

	response, err := u.userService.ResendVerification(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("email", req.Email).
			Msg("Failed to resend verification email")
		return nil, err
	}

	return response, nil
}

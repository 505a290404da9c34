package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opendatagh/catalog/internal/catalog/auth"
	"github.com/opendatagh/catalog/pkg/apierror"
	"github.com/opendatagh/catalog/pkg/ginx"
	"github.com/rs/zerolog"
)

// currentUserKey 用于在 gin.Context 中存储已验证的用户
const currentUserKey = "api-current-user"

// TokenVerifier 校验 token 并返回对应的用户
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.User, error)
}

// RequireAuth 校验 Authorization 头中的 bearer token
// token 缺失或提供方校验失败都返回 401
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))
		if token == "" {
			ginx.RenderError(ctx, http.StatusUnauthorized,
				apierror.WrapError(apierror.ErrUnauthorized, "missing bearer token", nil))
			ctx.Abort()
			return
		}

		user, err := verifier.Verify(ctx, token)
		if err != nil {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Msg("Token verification failed")
			ginx.RenderError(ctx, http.StatusUnauthorized, err)
			ctx.Abort()
			return
		}

		ctx.Set(currentUserKey, user)
		ctx.Next()
	}
}

// CurrentUser 获取当前请求已验证的用户，未验证时返回 nil
func CurrentUser(ctx *gin.Context) *auth.User {
	value, exists := ctx.Get(currentUserKey)
	if !exists {
		return nil
	}
	if user, ok := value.(*auth.User); ok {
		return user
	}
	return nil
}

// bearerToken 从 Authorization 头中取出 token
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// Package api 提供目录服务的 HTTP 接口
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opendatagh/catalog/internal/catalog/service"
	"github.com/opendatagh/catalog/pkg/ginx"
)

type API struct {
	engine *gin.Engine
	server *http.Server

	dataset *Dataset
	tag     *Tag
	user    *User
}

func New(addr string,
	datasetService *service.DatasetService,
	tagService *service.TagService,
	userService *service.UserService,
) (*API, error) {
	engine := gin.Default()
	engine.Use(ginx.RequestID())

	api := &API{
		engine:  engine,
		dataset: NewDataset(datasetService),
		tag:     NewTag(tagService),
		user:    NewUser(userService),
	}

	engine.GET("/", ginx.Adapt0(api.Health))

	v1 := engine.Group("/api/v1")
	api.dataset.RegisterRoutes(v1.Group("/dataset"), RequireAuth(userService))
	api.tag.RegisterRoutes(v1.Group("/tag"))
	api.user.RegisterRoutes(v1.Group("/user"))

	api.server = &http.Server{
		Addr:    addr,
		Handler: engine,
	}
	return api, nil
}

// Health 健康检查
func (a *API) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"details": gin.H{"status": "healthy"},
	})
}

// Engine 返回底层 engine，测试时直接挂到 httptest 上
func (a *API) Engine() *gin.Engine {
	return a.engine
}

// Name 实现 grace.Grace 接口
func (a *API) Name() string {
	return "API Server"
}

func (a *API) Run(ctx context.Context) error {
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Package catalog 提供目录服务的主入口和初始化逻辑
package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jimmicro/grace"
	"github.com/opendatagh/catalog/internal/catalog/api"
	"github.com/opendatagh/catalog/internal/catalog/auth"
	"github.com/opendatagh/catalog/internal/catalog/config"
	"github.com/opendatagh/catalog/internal/catalog/repository"
	"github.com/opendatagh/catalog/internal/catalog/service"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg  *config.Config
	repo *repository.Repository
	api  *api.API
}

func New(cfg *config.Config) (*Server, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	// 1. 打开数据库并完成迁移
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	logger.Info().Str("db_path", cfg.DBPath).Msg("Repository initialized")

	datasetRepo := repository.NewDatasetRepository(repo.DB())
	tagRepo := repository.NewTagRepository(repo.DB())
	userRepo := repository.NewUserRepository(repo.DB())

	// 2. 选择身份提供方
	// 本地提供方自己维护 users 表，只有外部提供方需要写镜像
	var provider auth.Provider
	var mirror repository.UserRepository
	switch cfg.AuthProvider {
	case config.ProviderSupabase:
		provider = auth.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey)
		mirror = userRepo
	case config.ProviderLocal:
		provider = auth.NewLocalProvider(cfg.SecretKey, userRepo)
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
	logger.Info().Str("provider", cfg.AuthProvider).Msg("Auth provider ready")

	// 3. 创建服务
	datasetService := service.NewDatasetService(datasetRepo)
	tagService := service.NewTagService(tagRepo)
	userService := service.NewUserService(provider, mirror)

	// 4. 创建 API
	apiInstance, err := api.New(cfg.Address, datasetService, tagService, userService)
	if err != nil {
		return nil, err
	}

	server := &Server{
		cfg:  cfg,
		repo: repo,
		api:  apiInstance,
	}
	return server, nil
}

func (s *Server) Run(ctx context.Context) error {
	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{}),
	)

	shepherd.Start(ctx)
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.api.Shutdown(ctx); err != nil {
		return err
	}
	return s.repo.Close()
}

// Name 实现 grace.Grace 接口
func (s *Server) Name() string {
	return "Catalog Server"
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct{}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Info()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Error()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

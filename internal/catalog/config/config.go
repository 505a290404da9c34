// Package config 负责加载目录服务的配置
//
// 优先级：环境变量 > 配置文件 > 默认值。
// 启动时会尝试加载工作目录下的 .env 文件，
// 再读取 CATALOG_CONFIG 指向的 yaml 配置（可选）。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 身份提供方类型
const (
	ProviderSupabase = "supabase"
	ProviderLocal    = "local"
)

type Config struct {
	// Address 是 HTTP 服务的绑定地址
	// 可以通过环境变量 CATALOG_ADDRESS 配置
	Address string `yaml:"address"`

	// DBPath 是 SQLite 数据库文件路径
	// 可以通过环境变量 CATALOG_DB_PATH 配置
	// 默认：~/.local/share/catalog/catalog.db
	DBPath string `yaml:"db_path"`

	// AuthProvider 选择身份提供方，supabase 或 local
	// 可以通过环境变量 CATALOG_AUTH_PROVIDER 配置
	AuthProvider string `yaml:"auth_provider"`

	// SupabaseURL 是 Supabase 项目地址，选择 supabase 提供方时必填
	SupabaseURL string `yaml:"supabase_url"`

	// SupabaseKey 是 Supabase 的 anon key
	SupabaseKey string `yaml:"supabase_key"`

	// SecretKey 是 local 提供方签发 JWT 的密钥
	SecretKey string `yaml:"secret_key"`
}

func New() (*Config, error) {
	// .env 不存在不算错误
	_ = godotenv.Load()

	cfg := &Config{
		Address:      "0.0.0.0:8000",
		DBPath:       defaultDBPath(),
		AuthProvider: ProviderLocal,
	}

	if path := os.Getenv("CATALOG_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile 从 yaml 文件加载配置
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// loadEnv 用环境变量覆盖已有配置
func (c *Config) loadEnv() {
	if addr := os.Getenv("CATALOG_ADDRESS"); addr != "" {
		c.Address = addr
	}
	if path := os.Getenv("CATALOG_DB_PATH"); path != "" {
		c.DBPath = path
	}
	if provider := os.Getenv("CATALOG_AUTH_PROVIDER"); provider != "" {
		c.AuthProvider = provider
	}
	if url := os.Getenv("CATALOG_SUPABASE_URL"); url != "" {
		c.SupabaseURL = url
	}
	if key := os.Getenv("CATALOG_SUPABASE_KEY"); key != "" {
		c.SupabaseKey = key
	}
	if key := os.Getenv("CATALOG_SECRET_KEY"); key != "" {
		c.SecretKey = key
	}
}

func (c *Config) validate() error {
	switch c.AuthProvider {
	case ProviderSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("supabase provider requires CATALOG_SUPABASE_URL and CATALOG_SUPABASE_KEY")
		}
	case ProviderLocal:
		if c.SecretKey == "" {
			// 没有密钥时生成不了可验证的 token，但开发环境允许使用固定值
			c.SecretKey = "catalog-dev-secret"
		}
	default:
		return fmt.Errorf("unknown auth provider %q", c.AuthProvider)
	}
	return nil
}

// defaultDBPath 获取默认数据库路径
func defaultDBPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "catalog", "catalog.db")
	}
	return filepath.Join(".", "data", "catalog.db")
}

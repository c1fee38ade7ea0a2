package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrMissingConfig 必填配置缺失 (keystring / redirect URI)
// 构造期即失败，不会拖到请求期
var ErrMissingConfig = errors.New("missing required configuration")

// Config 全局配置
// OAuth 凭证由环境变量或配置文件提供，不在代码里写死
type Config struct {
	// Etsy 应用凭证
	Keystring   string // Etsy app keystring，同时是 OAuth client_id 和 x-api-key
	RedirectURI string // 必须与 Etsy 后台注册的回调地址完全一致

	// 基础设施
	DatabaseDSN string
	ServerPort  string
}

// Load 加载配置
// 优先级：环境变量 > config.yaml > 默认值
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("sc")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// 配置文件可选，纯环境变量部署时不存在
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	v.SetDefault("database_dsn", "host=localhost user=sc password=sc dbname=sales_collector port=5432 sslmode=disable")
	v.SetDefault("server_port", "8080")

	cfg := &Config{
		Keystring:   v.GetString("keystring"),
		RedirectURI: v.GetString("oauth_redirect"),
		DatabaseDSN: v.GetString("database_dsn"),
		ServerPort:  v.GetString("server_port"),
	}

	if cfg.Keystring == "" {
		return nil, fmt.Errorf("%w: SC_KEYSTRING", ErrMissingConfig)
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("%w: SC_OAUTH_REDIRECT", ErrMissingConfig)
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`   // 服务器配置
	Postgres PostgresConfig          `mapstructure:"postgres"` // PostgreSQL配置
	Sync     SyncConfig              `mapstructure:"sync"`     // 同步调度配置
	Sources  map[string]SourceConfig `mapstructure:"sources"`  // 各数据源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SyncConfig 同步调度配置
type SyncConfig struct {
	Cron                string  `mapstructure:"cron"`                  // FPL快照同步Cron表达式
	DefconCron          string  `mapstructure:"defcon_cron"`           // FBref防守数据Cron表达式
	FormChangeThreshold float64 `mapstructure:"form_change_threshold"` // form变化记录阈值（默认0.1）
}

// SourceConfig 单个数据源的独立配置
type SourceConfig struct {
	BaseURL      string `mapstructure:"base_url"`      // API/站点基础地址
	Timeout      int    `mapstructure:"timeout"`       // 请求超时（秒）
	Season       string `mapstructure:"season"`        // 赛季标识（FBref用，如 2024-25）
	RequestDelay int    `mapstructure:"request_delay"` // 连续请求间隔（秒，对FBref限速友好）
	UserAgent    string `mapstructure:"user_agent"`    // 请求UA（FBref要求浏览器UA）
	Proxy        string `mapstructure:"proxy"`         // 代理地址
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	// 4. 兜底默认值 + 启动校验（凭证缺失属致命配置错误，须在任何网络请求前失败）
	if cfg.Sync.FormChangeThreshold <= 0 {
		cfg.Sync.FormChangeThreshold = 0.1
	}
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("缺少数据库凭证：请在 config.yaml 或环境变量 POSTGRES_DSN 中配置 DSN")
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if f, ok := cfg.Sources["fbref"]; ok {
		if v := os.Getenv("FBREF_PROXY"); v != "" {
			f.Proxy = v
		}
		cfg.Sources["fbref"] = f
	}
}

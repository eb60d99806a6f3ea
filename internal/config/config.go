package config

import (
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Invest   InvestConfig   `mapstructure:"invest"`
	Task     TaskConfig     `mapstructure:"task"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`        // JWT 签名密钥
	SessionTTLHours int    `mapstructure:"session_ttl_hours"` // 会话有效期（小时）
}

// SessionTTL 会话有效期
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// InvestConfig 投资结算配置
type InvestConfig struct {
	ConfirmDelayMs int `mapstructure:"confirm_delay_ms"` // 模拟链上确认延迟（毫秒）
	WorkerPoolSize int `mapstructure:"worker_pool_size"` // 结算协程池大小
}

// ConfirmDelay 模拟确认延迟
func (i InvestConfig) ConfirmDelay() time.Duration {
	return time.Duration(i.ConfirmDelayMs) * time.Millisecond
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

// SeedConfig 初始管理员账号配置
type SeedConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/crowdchain")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdchain")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("auth.jwt_secret", "crowdchain-secret-key")
	viper.SetDefault("auth.session_ttl_hours", 168)
	viper.SetDefault("invest.confirm_delay_ms", 2000)
	viper.SetDefault("invest.worker_pool_size", 16)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("seed.admin_username", "admin")
	viper.SetDefault("seed.admin_email", "admin@crowdchain.com")
	viper.SetDefault("seed.admin_password", "admin@123")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}

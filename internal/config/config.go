package config

import (
	"fmt"
	"os"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config 报警评估服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig

	// 评估服务特定配置
	Alarm struct {
		// Redis Streams 配置
		Streams struct {
			ReadingsStream    string // 读数摄入流，如 "hive:readings"
			ReadingsGroup     string // 摄入流消费者组
			ConsumerName      string // 本实例的消费者名
			TransitionsStream string // 转换事件发布流，如 "hive:transitions"
			ReadBatchSize     int64  // 单次 XREADGROUP 读取条数
		}

		// 活跃报警缓存配置
		Cache struct {
			AlertKeyPrefix string // 报警缓存键前缀，如 "hive:"
			AlertSuffix    string // 报警缓存键后缀，如 ":alerts"
			AlertTTL       int    // 报警缓存 TTL（秒），默认 30秒
		}
	}

	Metrics struct {
		Addr string // Prometheus 指标监听地址
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置（环境变量，带默认值）
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = 5432
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "beelive")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	// 评估服务配置
	cfg.Alarm.Streams.ReadingsStream = getEnv("STREAM_READINGS", "hive:readings")
	cfg.Alarm.Streams.ReadingsGroup = getEnv("STREAM_READINGS_GROUP", "beelive-alarm")
	cfg.Alarm.Streams.ConsumerName = getEnv("STREAM_CONSUMER_NAME", defaultConsumerName())
	cfg.Alarm.Streams.TransitionsStream = getEnv("STREAM_TRANSITIONS", "hive:transitions")
	cfg.Alarm.Streams.ReadBatchSize = 10

	cfg.Alarm.Cache.AlertKeyPrefix = getEnv("CACHE_ALERT_PREFIX", "hive:")
	cfg.Alarm.Cache.AlertSuffix = ":alerts"
	cfg.Alarm.Cache.AlertTTL = 30 // 30秒

	cfg.Metrics.Addr = getEnv("METRICS_ADDR", ":9091")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// defaultConsumerName 默认消费者名（主机名，取不到则用固定值）
func defaultConsumerName() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	return "beelive-alarm-1"
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Depreciation DepreciationConfig `mapstructure:"depreciation"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Env          string        `mapstructure:"env"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// DSN in key=value form, accepted by the gorm postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL form, required by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type KafkaConfig struct {
	Broker        string        `mapstructure:"broker"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
}

type JWTConfig struct {
	Secret           string        `mapstructure:"secret"`
	ExpiresIn        time.Duration `mapstructure:"expires_in"`
	RefreshExpiresIn time.Duration `mapstructure:"refresh_expires_in"`
}

type DepreciationConfig struct {
	CronSpec     string        `mapstructure:"cron_spec"`
	CronSecret   string        `mapstructure:"cron_secret"`
	Concurrency  int           `mapstructure:"concurrency"`
	AssetTimeout time.Duration `mapstructure:"asset_timeout"`
	LockTTL      time.Duration `mapstructure:"lock_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Mode  string `mapstructure:"mode"`
}

func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

// Load reads configuration from the environment (.env is loaded by main via godotenv)
// and an optional config.yaml.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.env", "development")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.cache_ttl", 10*time.Minute)

	v.SetDefault("kafka.consumer_group", "go-asset-activity")
	v.SetDefault("kafka.poll_interval", 3*time.Second)

	v.SetDefault("jwt.expires_in", 24*time.Hour)
	v.SetDefault("jwt.refresh_expires_in", 7*24*time.Hour)

	// 00:01 on 31 March, end of the fiscal year
	v.SetDefault("depreciation.cron_spec", "1 0 31 3 *")
	v.SetDefault("depreciation.concurrency", 8)
	v.SetDefault("depreciation.asset_timeout", 30*time.Second)
	v.SetDefault("depreciation.lock_ttl", 30*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.mode", "development")
}

func bindEnvVariables(v *viper.Viper) {
	_ = v.BindEnv("server.env", "APP_ENV")
	_ = v.BindEnv("server.port", "PORT")

	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")

	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")

	_ = v.BindEnv("kafka.broker", "KAFKA_BROKER")
	_ = v.BindEnv("kafka.consumer_group", "KAFKA_CONSUMER_GROUP")

	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	_ = v.BindEnv("depreciation.cron_spec", "DEPRECIATION_CRON")
	_ = v.BindEnv("depreciation.cron_secret", "CRON_SECRET")
	_ = v.BindEnv("depreciation.concurrency", "DEPRECIATION_CONCURRENCY")

	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.mode", "LOG_MODE")
}

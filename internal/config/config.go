package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Data           DataConfig           `mapstructure:"data"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Neo4j          Neo4jConfig          `mapstructure:"neo4j"`
	Kafka          KafkaConfig          `mapstructure:"kafka"`
	Storage        StorageConfig        `mapstructure:"storage"`
	Search         SearchConfig         `mapstructure:"search"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Monitoring     MonitoringConfig     `mapstructure:"monitoring"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Resource sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type DataConfig struct {
	Source         string        `mapstructure:"source"`
	File           string        `mapstructure:"file"`
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type Neo4jConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type KafkaConfig struct {
	Brokers           []string      `mapstructure:"brokers"`
	SearchEventsTopic string        `mapstructure:"search_events_topic"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// Storage backends for search history and popular searches.
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
	StorageRedis  = "redis"
)

type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	BadgerDir string `mapstructure:"badger_dir"`
}

type SearchConfig struct {
	HistoryMaxItems           int     `mapstructure:"history_max_items"`
	SuggestionHistoryMaxItems int     `mapstructure:"suggestion_history_max_items"`
	PopularMaxTracked         int     `mapstructure:"popular_max_tracked"`
	DefaultLimit              int     `mapstructure:"default_limit"`
	MaxLimit                  int     `mapstructure:"max_limit"`
	SuggestionLimit           int     `mapstructure:"suggestion_limit"`
	MatchThreshold            float64 `mapstructure:"match_threshold"`
}

type RecommendationConfig struct {
	models.RecommendationConfig `mapstructure:",squash"`
	DiversitySeed               int64 `mapstructure:"diversity_seed"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "development")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Resource source defaults
	v.SetDefault("data.source", SourceFile)
	v.SetDefault("data.file", "./data/resources.json")
	v.SetDefault("data.reload_interval", "0s")

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_time", "15m")
	v.SetDefault("database.max_lifetime", "1h")
	v.SetDefault("database.connect_timeout", "10s")

	// Redis defaults
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.timeout", "5s")
	v.SetDefault("redis.key_prefix", "directory:")
	v.SetDefault("redis.ttl", "0s")

	// Neo4j defaults
	v.SetDefault("neo4j.url", "")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "")

	// Kafka defaults
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.search_events_topic", "search-events")
	v.SetDefault("kafka.write_timeout", "5s")

	// Storage defaults
	v.SetDefault("storage.backend", StorageMemory)
	v.SetDefault("storage.badger_dir", "./data/badger")

	// Search defaults
	v.SetDefault("search.history_max_items", 50)
	v.SetDefault("search.suggestion_history_max_items", 10)
	v.SetDefault("search.popular_max_tracked", 100)
	v.SetDefault("search.default_limit", 20)
	v.SetDefault("search.max_limit", 100)
	v.SetDefault("search.suggestion_limit", 8)
	v.SetDefault("search.match_threshold", 0.6)

	// Recommendation defaults
	v.SetDefault("recommendation.collaborative_weight", 0.3)
	v.SetDefault("recommendation.content_based_weight", 0.4)
	v.SetDefault("recommendation.popularity_weight", 0.2)
	v.SetDefault("recommendation.personalization_weight", 0.1)
	v.SetDefault("recommendation.max_recommendations", 10)
	v.SetDefault("recommendation.min_similarity_score", 0.1)
	v.SetDefault("recommendation.diversity_factor", 0.3)
	v.SetDefault("recommendation.diversity_seed", 0)

	// Monitoring defaults
	v.SetDefault("monitoring.enabled", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
	v.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("security.cors.allowed_headers", []string{"*"})
}

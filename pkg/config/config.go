package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	ModelKey      string
}

// StorageConfig selects the collaborators behind the repository contracts.
type StorageConfig struct {
	Backend    string // catalog + feedback: postgres | memory
	ModelStore string // postgres | redis | memory
	SeedDemo   bool
}

type RecommendConfig struct {
	LearningRate       float64
	Epochs             int
	ConfidenceCeiling  float64
	ConfidenceHalfSize float64
	DefaultLimit       int
	RetrainEvery       int
	RetrainInterval    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Material Advisor API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "material_advisor"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			ModelKey:      getEnv("REDIS_MODEL_KEY", "material_advisor:model"),
		},
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND", BackendMemory),
			ModelStore: getEnv("MODEL_STORE", BackendMemory),
			SeedDemo:   getBool("SEED_DEMO_CATALOG", true),
		},
		Recommend: RecommendConfig{
			LearningRate:       getFloat("TRAIN_LEARNING_RATE", 0.1),
			Epochs:             getInt("TRAIN_EPOCHS", 25),
			ConfidenceCeiling:  getFloat("TRAIN_CONFIDENCE_CEILING", 0.95),
			ConfidenceHalfSize: getFloat("TRAIN_CONFIDENCE_HALF_SIZE", 50),
			DefaultLimit:       getInt("RECOMMEND_DEFAULT_LIMIT", 10),
			RetrainEvery:       getInt("RETRAIN_EVERY_N_EVENTS", 0),
			RetrainInterval:    getDuration("RETRAIN_INTERVAL", 0),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	switch c.Storage.ModelStore {
	case BackendPostgres, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unsupported model store %q", c.Storage.ModelStore)
	}

	if c.NeedsPostgres() && c.Database.Password == "" {
		return errors.New("missing database password")
	}

	if c.JWT.SecretKey == "" {
		return errors.New("missing jwt secret")
	}

	if c.Recommend.ConfidenceCeiling <= 0 || c.Recommend.ConfidenceCeiling > 0.95 {
		return errors.New("confidence ceiling must be in (0, 0.95]")
	}

	return nil
}

// NeedsPostgres reports whether any collaborator is backed by postgres.
func (c *Config) NeedsPostgres() bool {
	return c.Storage.Backend == BackendPostgres || c.Storage.ModelStore == BackendPostgres
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return defaultVal
}

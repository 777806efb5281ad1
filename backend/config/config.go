package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	// memory, sqlite, postgres or redis
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	KeyPrefix     string `mapstructure:"KEY_PREFIX"`

	JWTSecret    string `mapstructure:"JWT_SECRET"`
	PasswordMode string `mapstructure:"PASSWORD_MODE"` // plain or bcrypt

	LogFormat string `mapstructure:"LOG_FORMAT"` // json or console
	LogLevel  string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"SERVER_PORT":    "8080",
	"STORAGE_DRIVER": "sqlite",
	"SQLITE_PATH":    "studyhub.db",
	"DB_HOST":        "localhost",
	"DB_PORT":        "5432",
	"DB_USER":        "postgres",
	"DB_PASSWORD":    "postgres",
	"DB_NAME":        "learning_platform",
	"REDIS_ADDR":     "localhost:6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,
	"KEY_PREFIX":     "studyhub:",
	"JWT_SECRET":     "secret",
	"PASSWORD_MODE":  "plain",
	"LOG_FORMAT":     "console",
	"LOG_LEVEL":      "info",
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

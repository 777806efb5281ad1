package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LoggerConfig определяет конфигурацию для логгера
type LoggerConfig struct {
	// Формат логов (json/console)
	Format string
	// Уровень логирования (debug, info, warn, error)
	Level string
	// Выходной поток (os.Stdout, файл и т.д.)
	Output io.Writer
	// Включить/выключить цвета для консоли
	EnableColors bool
}

// InitLogger инициализирует и возвращает логгер
func InitLogger(config ...LoggerConfig) zerolog.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			NoColor:    !cfg.EnableColors,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "studyhub").
		Logger()
}

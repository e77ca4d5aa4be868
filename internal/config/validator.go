package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация пути к базе контактов
	if c.ContactsDBPath == "" {
		errors = append(errors, "contacts database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация пайплайна
	if c.MaxBatchSize < 1 {
		errors = append(errors, "max batch size must be at least 1")
	}
	if c.Workers < 1 {
		errors = append(errors, "workers must be at least 1")
	}

	// Валидация уровня логирования
	if c.LogLevel != "" {
		switch strings.ToUpper(c.LogLevel) {
		case "DEBUG", "INFO", "WARN", "ERROR":
		default:
			errors = append(errors, fmt.Sprintf("invalid log level: %s (expected DEBUG, INFO, WARN or ERROR)", c.LogLevel))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SlogLevel преобразует строковый уровень логирования в slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

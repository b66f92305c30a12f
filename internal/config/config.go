// Package config reads the process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hris-admin/internal/events"
	"hris-admin/internal/notification"
	"hris-admin/internal/shared/locale"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string        `validate:"required,numeric"`
	APIURL            string        `validate:"required,url"`
	PhotoURL          string        `validate:"required,url"`
	Locale            locale.Locale `validate:"-"`
	RequestTimeout    time.Duration `validate:"gt=0"`
	RedisAddr         string        `validate:"omitempty,hostname_port"`
	KafkaBroker       string        `validate:"omitempty,hostname_port"`
	AuditTopic        string        `validate:"required"`
	AuditGroupID      string        `validate:"required"`
	JWTSecret         string
	NotificationLimit int `validate:"gt=0"`
}

// Load reads .env when present, then the environment.
func Load() (AppConfig, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv)
}

// LoadFrom builds the configuration from getenv and validates it.
func LoadFrom(getenv func(string) string) (AppConfig, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := AppConfig{
		Port:         get("PORT", "3000"),
		APIURL:       strings.TrimRight(get("API_URL", ""), "/"),
		RedisAddr:    get("REDIS_ADDR", ""),
		KafkaBroker:  get("KAFKA_BROKER", ""),
		AuditTopic:   get("AUDIT_TOPIC", events.RecordDispatchedTopic),
		AuditGroupID: get("AUDIT_GROUP_ID", "hris-admin-audit"),
		JWTSecret:    getenv("JWT_SECRET"),
	}
	cfg.PhotoURL = strings.TrimRight(get("PHOTO_URL", cfg.APIURL+"/photos"), "/")

	loc, err := locale.Parse(get("LOCALE", ""))
	if err != nil {
		return AppConfig{}, fmt.Errorf("LOCALE: %w", err)
	}
	cfg.Locale = loc

	cfg.RequestTimeout, err = time.ParseDuration(get("REQUEST_TIMEOUT", "15s"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}

	cfg.NotificationLimit, err = strconv.Atoi(get("NOTIFICATION_LIMIT", strconv.Itoa(notification.DefaultLimit)))
	if err != nil {
		return AppConfig{}, fmt.Errorf("NOTIFICATION_LIMIT: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

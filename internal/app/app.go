package app

import (
	"net/http"

	"hris-admin/internal/audit"
	"hris-admin/internal/config"
	"hris-admin/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Infra is what BuildApp connected to. Close releases it.
type Infra struct {
	Redis     *redis.Client
	Kafka     *kafka.Writer
	Publisher audit.Publisher
}

func (i *Infra) Close() {
	if i.Kafka != nil {
		_ = i.Kafka.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
}

func BuildApp(router *gin.Engine, cfg config.AppConfig) (*Infra, error) {
	logger := zap.L().Named("app")
	infra := &Infra{}

	// Redis only backs dispatch idempotency; without it dispatch runs unguarded.
	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return nil, err
		}
		infra.Redis = rdb
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	if cfg.KafkaBroker != "" {
		writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Kafka = writer
		infra.Publisher = audit.NewKafkaPublisher(writer, cfg.AuditTopic)
		logger.Info("kafka connection established", zap.String("broker", cfg.KafkaBroker))
	} else {
		infra.Publisher = audit.NewStdoutLogger()
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	registerModules(router, cfg, httpClient, infra.Redis, infra.Publisher)

	return infra, nil
}

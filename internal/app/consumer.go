package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hris-admin/internal/audit"
	"hris-admin/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer tails the audit topic into the stdout audit log until the
// process is signalled.
func RunConsumer(cfg config.AppConfig) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          cfg.AuditTopic,
		GroupID:        cfg.AuditGroupID,
		CommitInterval: 0,
		StartOffset:    kafka.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		audit.ConsumeRecordDispatched(ctx, reader, audit.NewStdoutLogger(), logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}

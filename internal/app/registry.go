package app

import (
	"context"
	"net/http"

	"hris-admin/internal/audit"
	"hris-admin/internal/config"
	"hris-admin/internal/department"
	"hris-admin/internal/employee"
	"hris-admin/internal/middleware"
	"hris-admin/internal/notification"
	"hris-admin/internal/remote"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg config.AppConfig,
	httpClient *http.Client,
	rdb *redis.Client,
	publisher audit.Publisher,
) {
	logger := zap.L()

	// --- Backend ---
	client := remote.NewClient(cfg.APIURL, httpClient, logger)
	departmentStore := department.NewRemoteStore(client)
	employeeStore := employee.NewRemoteStore(client)

	// --- Services ---
	center := notification.NewCenter(cfg.NotificationLimit, logger)
	departmentService := department.NewService(departmentStore, department.Options{
		Locale:    cfg.Locale,
		Notifier:  center,
		Publisher: publisher,
		Logger:    logger,
	})
	employeeService := employee.NewService(employeeStore, departmentStore, employee.Options{
		Locale:       cfg.Locale,
		PhotoBaseURL: cfg.PhotoURL,
		Notifier:     center,
		Publisher:    publisher,
		Logger:       logger,
	})

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	notificationHandler := notification.NewHandler(center)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(logger))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guard := middleware.AuthMiddleware(cfg.JWTSecret)
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(20, 40))
	{
		department.RegisterRoutes(api, departmentHandler, guard, rdb)
		employee.RegisterRoutes(api, employeeHandler, guard, rdb)
		notification.RegisterRoutes(api, notificationHandler, guard)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.RequestTimeout)
	defer cancel()
	warmUp(ctx, logger.Named("app"), []module{
		{name: department.Module, svc: departmentService},
		{name: employee.Module, svc: employeeService},
	})
}

type module struct {
	name string
	svc  interface{ Refresh(ctx context.Context) error }
}

// warmUp loads each module once so the first list request has data.
// Failures are logged and already reach the notification center.
func warmUp(ctx context.Context, logger *zap.Logger, modules []module) {
	for _, m := range modules {
		if err := m.svc.Refresh(ctx); err != nil {
			logger.Warn("startup refresh failed", zap.String("module", m.name), zap.Error(err))
			continue
		}
		logger.Info("startup refresh done", zap.String("module", m.name))
	}
}

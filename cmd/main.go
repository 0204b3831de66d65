package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/accident_alert_system/internal/broadcast"
	"github.com/shenikar/accident_alert_system/internal/classifier"
	"github.com/shenikar/accident_alert_system/internal/config"
	v1 "github.com/shenikar/accident_alert_system/internal/handler/http/v1"
	"github.com/shenikar/accident_alert_system/internal/push"
	"github.com/shenikar/accident_alert_system/internal/repository"
	"github.com/shenikar/accident_alert_system/internal/service"
	"github.com/shenikar/accident_alert_system/internal/voice"
	"github.com/shenikar/accident_alert_system/pkg/awssns"
	"github.com/shenikar/accident_alert_system/pkg/logger"
	pkgmqtt "github.com/shenikar/accident_alert_system/pkg/mqtt"
	"github.com/shenikar/accident_alert_system/pkg/postgres"
	redisclient "github.com/shenikar/accident_alert_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/accident_alert_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	shutdownTimeout       = 5 * time.Second
	workerStopTimeout     = 10 * time.Second
	mqttDisconnectQuiesce = 250
)

// @title Accident Alert System API
// @version 1.0
// @description Road accident detection with local (BLE) and cloud (push) alerting.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newEmitter выбирает транспорт ближнего канала: MQTT, если брокер задан, иначе только лог
func newEmitter(cfg *config.Config, log *logrus.Logger) (broadcast.Emitter, func(), error) {
	if cfg.MQTTBroker == "" {
		log.Warn("MQTT_BROKER is not set, local broadcasts will only be logged")
		return broadcast.NewLogEmitter(log), func() {}, nil
	}

	client, err := pkgmqtt.NewClient(pkgmqtt.Options{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Username: cfg.MQTTUsername,
		Password: cfg.MQTTPassword,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Infof("Connected to MQTT broker %s", cfg.MQTTBroker)

	closeFn := func() { client.Disconnect(mqttDisconnectQuiesce) }
	return broadcast.NewMQTTEmitter(client, cfg.MQTTBroadcastTopic, cfg.MQTTPublishTimeout), closeFn, nil
}

// newPusher выбирает транспорт облачного канала: SNS, если задан ARN платформенного приложения
func newPusher(ctx context.Context, cfg *config.Config, log *logrus.Logger) (push.Pusher, error) {
	if cfg.SNSPlatformARN == "" {
		log.Warn("SNS_PLATFORM_ARN is not set, push notifications will only be logged")
		return push.NewLogPusher(log), nil
	}

	client, err := awssns.NewSNSClient(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	return push.NewSNSPusher(client, cfg.SNSPlatformARN), nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, postgres.Options{
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		HealthCheckPeriod: time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Модель классификатора загружается один раз и дальше только читается
	model, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load classifier model: %v", err)
	}
	log.WithField("version", model.Version).Info("Classifier model loaded")
	detector := voice.NewDetector(voice.DefaultVocabulary)

	// Транспорты каналов оповещения
	emitter, closeEmitter, err := newEmitter(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", err)
	}
	defer closeEmitter()

	pusher, err := newPusher(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to create SNS client: %v", err)
	}
	publisher := push.NewRedisPublisher(redisClient)

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	localAlertRepo := repository.NewLocalAlertRepository(dbpool, redisClient)
	cloudAlertRepo := repository.NewCloudAlertRepository(dbpool, redisClient)
	statsRepo := repository.NewStatsRepository(dbpool, redisClient)

	// Инициализация сервисов
	localAlertService := service.NewLocalAlertService(localAlertRepo, emitter, log)
	cloudAlertService := service.NewCloudAlertService(cloudAlertRepo, publisher, log)
	incidentService := service.NewIncidentService(incidentRepo, model, detector, localAlertService, cloudAlertService, log)
	statsService := service.NewStatsService(statsRepo, log, cfg.TimeZone, cfg.StatsCacheTTL)

	// Инициализация и запуск воркера push-уведомлений
	pushWorker := push.NewWorker(redisClient, pusher, cloudAlertService, log)
	pushWorker.Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, localAlertService, cloudAlertService, statsService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркер до закрытия Redis и пула соединений
	cancel()
	select {
	case <-pushWorker.Done():
	case <-time.After(workerStopTimeout):
		log.Warn("Push worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"craftorders/cmd"
	httpadapter "craftorders/internal/adapters/in/http"
	"craftorders/internal/adapters/in/realtime"
	"craftorders/internal/adapters/out/postgres/catalogrepo"
	"craftorders/internal/adapters/out/postgres/conversationrepo"
	"craftorders/internal/adapters/out/postgres/orderrepo"
	"craftorders/internal/jobs"
	"craftorders/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := startJobs(&app, configs, logger)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:             goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderEventsTopic: goDotEnvVariable("KAFKA_ORDER_EVENTS_TOPIC"),
		JWTSecret:             goDotEnvVariable("JWT_SECRET"),
		ArchiveIdleFor:        goDotEnvVariable("ARCHIVE_IDLE_FOR"),
		ArchiveSchedule:       goDotEnvVariable("ARCHIVE_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&conversationrepo.ConversationDTO{},
		&conversationrepo.MessageDTO{},
		&catalogrepo.ItemDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *jobs.JobManager {
	idleFor, err := time.ParseDuration(configs.ArchiveIdleFor)
	if err != nil {
		log.Fatalf("Invalid ARCHIVE_IDLE_FOR value %q: %v", configs.ArchiveIdleFor, err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateArchiveIdleConversationsCommandHandler(),
		idleFor,
		configs.ArchiveSchedule,
		logger,
	)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()

	serverMetrics := metrics.NewServerMetrics()
	e.Use(serverMetrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateSetQuoteCommandHandler(),
		app.CreatePostMessageCommandHandler(),
		app.CreateGetOrderTotalsQueryHandler(),
		app.CreateGetValidStatusTransitionsQueryHandler(),
		app.CreateGetConversationHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	wsHandler := realtime.NewWSHandler(
		app.CreateRealtimeCoordinator(),
		app.TokenVerifier(),
		metrics.NewRealtimeMetrics(),
		logger,
	)
	e.GET("/ws", wsHandler.Handle)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comanda/cmd"
	"comanda/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpin "comanda/internal/adapters/in/http"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	root := cmd.NewCompositionRoot(configs, gormDB)
	go root.Hub().Run()

	jobManager := root.CreateSyncJobManager(configs)
	if jobManager != nil {
		if err := jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start background jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file found, reading configuration from environment")
	}

	return cmd.Config{
		HTTPPort:      os.Getenv("HTTP_PORT"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     os.Getenv("DB_SSLMODE"),
		SyncRemoteURL: os.Getenv("SYNC_REMOTE_URL"),
		SyncEnabled:   os.Getenv("SYNC_ENABLED") == "true",
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBPort,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateChangeItemStatusCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetDailySummaryQueryHandler(),
		root.CreateGetSalesTrendsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.GET("/ws", func(c echo.Context) error {
		root.Hub().HandleWebSocket(c.Response(), c.Request())
		return nil
	})

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

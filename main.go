package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	config "github.com/insightfinder/arris-agent/configs"
	"github.com/insightfinder/arris-agent/hnap"
	"github.com/insightfinder/arris-agent/influx"
	"github.com/insightfinder/arris-agent/loki"
	"github.com/insightfinder/arris-agent/worker"
	"github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("Starting Arris Agent...")

	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logging
	setupLogging(cfg.Agent.LogLevel)

	logrus.Info("Arris Agent starting...")
	logrus.Infof("Modem: %s://%s:%d", cfg.Modem.Scheme, cfg.Modem.Host, cfg.Modem.Port)
	logrus.Infof("Poll interval: %d seconds", cfg.Worker.PollIntervalSeconds)

	// Initialize services
	modemService := hnap.NewService(cfg.Modem)
	influxService := influx.NewService(cfg.Influx)
	lokiService := loki.NewService(cfg.Loki)

	ctx := context.Background()

	// Sink health checks are advisory; a sink that is down at startup
	// may come back before the first write.
	if err := influxService.HealthCheck(ctx); err != nil {
		logrus.Warnf("InfluxDB health check failed: %v", err)
	}
	if err := lokiService.HealthCheck(ctx); err != nil {
		logrus.Warnf("Loki health check failed: %v", err)
	}

	// A failed login is terminal: the modem locks accounts on repeated
	// attempts, so the process exits instead of retrying.
	if err := modemService.Login(ctx, cfg.Modem.Username, cfg.Modem.Password); err != nil {
		log.Fatalf("Failed to authenticate with modem: %v", err)
	}
	logrus.Info("Successfully authenticated with modem")

	// Create worker
	w := worker.NewWorker(cfg, modemService, influxService, lokiService)

	// Graceful shutdown
	var wg sync.WaitGroup
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Start(quit)
	}()

	logrus.Info("Arris Agent started successfully")

	// Wait for shutdown
	<-quit
	logrus.Info("Shutting down Arris Agent...")
	wg.Wait()
	logrus.Info("Arris Agent stopped")
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch level {
	case "DEBUG":
		logrus.SetLevel(logrus.DebugLevel)
	case "INFO":
		logrus.SetLevel(logrus.InfoLevel)
	case "WARN":
		logrus.SetLevel(logrus.WarnLevel)
	case "ERROR":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

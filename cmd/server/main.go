// HTTP API - счета, события активности, каталог и обмен вознаграждений
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/glkeru/civicpoints/internal/api"
	db "github.com/glkeru/civicpoints/internal/db"
	interf "github.com/glkeru/civicpoints/internal/interfaces"
	services "github.com/glkeru/civicpoints/internal/services"
	otel "github.com/glkeru/civicpoints/observability/otel"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// config
	port := os.Getenv("GAMIFICATION_PORT")
	if port == "" {
		panic("env GAMIFICATION_PORT is not set")
	}

	// tracing
	ctx := context.Background()
	shutdown := otel.InitTracer(ctx)
	defer shutdown()

	// database
	var storage interf.LedgerStorage
	dt, err := db.NewGamificationDB(logger)
	if err != nil {
		panic(err)
	}
	storage = dt

	// cache
	var redis interf.CacheStorage
	redis, err = db.NewCacheService()
	if err != nil {
		logger.Error(err.Error())
		redis = nil
	}

	// services
	serv := services.NewGamificationService(logger, storage, redis)

	// api handlers
	handler := api.NewHandler(serv, logger)
	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", otelhttp.NewHandler(api.MiddlewareLog()(handler), "gamification"))
	srv := &http.Server{
		Handler:      root,
		Addr:         ":" + port,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go srv.ListenAndServe()

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = srv.Shutdown(timeout)
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

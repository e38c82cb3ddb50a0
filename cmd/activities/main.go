// Job - обработка событий активности
// Опрос Kafka -> начисление баллов и достижений
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	db "github.com/glkeru/civicpoints/internal/db"
	kafka "github.com/glkeru/civicpoints/internal/external/kafka"
	interf "github.com/glkeru/civicpoints/internal/interfaces"
	services "github.com/glkeru/civicpoints/internal/services"
	"github.com/joho/godotenv"
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

	// kafka
	reader, err := kafka.GetNewReader("activities")
	if err != nil {
		panic(err)
	}
	defer reader.CloseReader()

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

	// start
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var semcount int
	semenv := os.Getenv("GAMIFICATION_ACTIVITY_COUNT")
	if semenv == "" {
		semcount = 5
	} else {
		semcount, err = strconv.Atoi(semenv)
		if err != nil {
			semcount = 5
		}
	}
	if semcount == 0 {
		semcount = 1
	}

	wg := &sync.WaitGroup{}
	semaphore := make(chan struct{}, semcount)

loop:
	for {
		select {
		case <-interrupt:
			cancel()
			break loop
		case <-ctx.Done():
			break loop
		default:

			activity, err := reader.GetNewMessage(ctx)
			if err != nil {
				logger.Error(err.Error())
				// дождаться запущенных обработчиков
				break loop
			}

			semaphore <- struct{}{}
			wg.Add(1)
			go func(activity string) {
				defer wg.Done()
				defer func() { <-semaphore }()
				err := serv.ActivityProcess(ctx, activity)
				if err != nil {
					logger.Error(err.Error())
					return
				}
			}(activity)
		}
	}
	wg.Wait()
}

// Job - обработка запросов на обмен баллов
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	db "github.com/glkeru/civicpoints/internal/db"
	rabbit "github.com/glkeru/civicpoints/internal/external/rabbitmq"
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

	// rabbitmq
	reader, err := rabbit.NewRabbitConsumer()
	if err != nil {
		logger.Error(err.Error())
		panic(err)
	}
	defer reader.Close()

	// database
	var storage interf.LedgerStorage
	dt, err := db.NewGamificationDB(logger)
	if err != nil {
		logger.Error(err.Error())
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
	semenv := os.Getenv("GAMIFICATION_REDEEM_COUNT")
	if semenv == "" {
		semcount = 5
	} else {
		semcount, err = strconv.Atoi(semenv)
		if err != nil {
			semcount = 5
		}
	}

	// os signals
	go func() {
		<-interrupt
		cancel()
	}()

	// workers
	wg := &sync.WaitGroup{}
	wg.Add(semcount)
	for i := 0; i < semcount; i++ {
		go worker(ctx, serv, wg, logger, reader)
	}
	wg.Wait()
}

// worker for rabbitmq messages
func worker(ctx context.Context, serv *services.GamificationService, wg *sync.WaitGroup, logger *zap.Logger, reader *rabbit.RabbitConsumer) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
			msg, ok := <-reader.Msg
			if ok != true {
				return
			}
			redeemId, result, err := serv.RedeemProcess(ctx, string(msg.Body))
			if err != nil {
				logger.Error(err.Error())
				if redeemId != "" {
					_ = reader.Processed(ctx, rabbit.RedeemConfirm{RedeemId: redeemId, Success: false, Reason: err.Error()})
				}
				continue
			}
			err = reader.Processed(ctx, rabbit.RedeemConfirm{RedeemId: redeemId, Code: result.Code, Success: true})
			if err != nil {
				logger.Error(err.Error())
				continue
			}

		}
	}
}

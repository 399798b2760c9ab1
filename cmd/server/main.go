package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/api/http"
	app "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/app/engine"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/infrastructure/questdb/trade"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/orderbook"
	orderreader "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/order-reader"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/snapshot"
	tradepublisher "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/trade-publisher"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/clock"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/config"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/questdb"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	redisConfig := redis.DefaultConfig()
	redisConfig.Addr = cfg.RedisConfig.Addr
	redisConfig.Username = cfg.RedisConfig.Username
	redisConfig.Password = cfg.RedisConfig.Password
	redisConfig.DB = cfg.RedisConfig.DB

	rclient := redis.NewClient(redisConfig)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.NewField("action", "connect_redis"))
		return
	}

	var tradeRepo trade.TradeRepository
	if cfg.QuestDBConfig.Host != "" {
		qclient, err := questdb.NewClient(ctx, questdb.Config{
			Host:     cfg.QuestDBConfig.Host,
			Port:     cfg.QuestDBConfig.Port,
			Database: cfg.QuestDBConfig.Database,
			Username: cfg.QuestDBConfig.Username,
			Password: cfg.QuestDBConfig.Password,
		})
		if err != nil {
			log.Error(err, logger.NewField("action", "connect_questdb"))
			return
		}
		defer qclient.Close()

		repo := trade.NewRepository(qclient)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Error(err, logger.NewField("action", "ensure_trade_schema"))
			return
		}
		tradeRepo = repo
	}

	book := orderbook.NewBook(clock.NewSystem())
	oReader := orderreader.NewReader(cfg.KafkaConfig, log)
	snapshotStore := snapshot.NewStore(rclient, cfg.Pair, log)
	tradePublisher := tradepublisher.NewPublisher(cfg.KafkaConfig, cfg.Pair, log)

	engine, err := app.NewEngine(
		book,
		oReader,
		snapshotStore,
		tradePublisher,
		tradeRepo,
		log,
		cfg,
	)
	if err != nil {
		log.Error(err, logger.NewField("action", "init_engine"))
		return
	}

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.NewField("action", "start_engine"))
		return
	}

	httpServer := httpapi.NewServer(engine, cfg.Pair, cfg.HTTPConfig, log)
	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error(err, logger.NewField("action", "serve_http"))
			sigChan <- syscall.SIGTERM
		}
	}()

	log.Info("order book service started",
		logger.NewField("pair", cfg.Pair),
		logger.NewField("httpAddr", cfg.HTTPConfig.Addr),
	)

	sig := <-sigChan
	log.Info("received shutdown signal", logger.NewField("signal", sig.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "shutdown_http"))
	}

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_engine"))
	}

	if err := tradePublisher.Close(); err != nil {
		log.Error(err, logger.NewField("action", "close_trade_publisher"))
	}

	if err := rclient.Close(); err != nil {
		log.Error(err, logger.NewField("action", "close_redis_client"))
	}

	log.Info("order book service shutdown complete")
}

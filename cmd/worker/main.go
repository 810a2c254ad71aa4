package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cm-go/internal/config"
	"cm-go/internal/infra/database"
	infraES "cm-go/internal/infra/elasticsearch"
	infraKafka "cm-go/internal/infra/kafka"
	"cm-go/internal/repository"
	"cm-go/internal/worker"
	"cm-go/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	reindex := flag.Bool("reindex", true, "bulk index all comments before consuming events")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(logger.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		FilePath: cfg.Log.FilePath,
	}); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if !cfg.Kafka.Enabled {
		logger.Fatal("Kafka is disabled, nothing to consume")
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	indexName := cfg.Elasticsearch.CommentsIndex()
	if err := infraES.InitIndexes(indexName); err != nil {
		logger.Fatal("Failed to init elasticsearch index", zap.Error(err))
	}

	indexer := worker.NewIndexer(repository.NewCommentRepository(database.Get()), worker.ESIndex{Name: indexName})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *reindex {
		rctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		if err := indexer.Reindex(rctx); err != nil {
			logger.Error("Reindex comments failed", zap.Error(err))
		}
		cancel()
	}

	topic := cfg.Kafka.EventsTopic()
	logger.Info("Comment index worker started",
		zap.String("topic", topic),
		zap.String("group", cfg.Kafka.GroupID),
		zap.String("index", indexName),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		infraKafka.StartEventConsumer(gctx, cfg.Kafka.Brokers, topic, cfg.Kafka.GroupID, indexer.Handle)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker exited with error", zap.Error(err))
	}
	logger.Info("Comment index worker stopped")
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cm-go/internal/api/handler"
	"cm-go/internal/api/middleware"
	"cm-go/internal/api/router"
	"cm-go/internal/config"
	"cm-go/internal/events"
	"cm-go/internal/infra/database"
	infraES "cm-go/internal/infra/elasticsearch"
	infraKafka "cm-go/internal/infra/kafka"
	infraMinio "cm-go/internal/infra/minio"
	"cm-go/internal/infra/oauth"
	infraRedis "cm-go/internal/infra/redis"
	"cm-go/internal/repository"
	"cm-go/internal/service"
	"cm-go/pkg/logger"
	"cm-go/pkg/utils"

	_ "cm-go/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title Comment Service API
// @version 1.0
// @description 文章评论服务 API

// @host 127.0.0.1:8000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	// .env 不存在时忽略，环境变量优先于配置文件
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

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(database.Get()); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// Kafka 可选，关闭时事件直接丢弃
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
			logger.Fatal("Failed to init kafka producer", zap.Error(err))
		}
		defer infraKafka.CloseProducer()
		publisher = infraKafka.NewEventPublisher(cfg.Kafka.EventsTopic())
	}

	// MinIO 可选，关闭时按文章删除不做归档
	var archiver service.Archiver
	if cfg.MinIO.Enabled {
		if err := infraMinio.Init(&cfg.MinIO); err != nil {
			logger.Fatal("Failed to init minio", zap.Error(err))
		}
		archiver = infraMinio.NewArchiver(cfg.MinIO.ArchiveBucket)
	}

	// Elasticsearch 可选，失败则搜索降级到 DB
	if cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			defer infraES.Close()
			if err := infraES.InitIndexes(cfg.Elasticsearch.CommentsIndex()); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
		}
	}

	if err := router.RegisterValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	accountRepo := repository.NewAccountRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewCommentLikeRepository(db)

	identityService := service.NewIdentityService(accountRepo, utils.NewSealer(cfg.Security.TokenKey), publisher)
	likeService := service.NewLikeService(db, accountRepo, commentRepo, likeRepo, service.LikeOptions{
		EnforceUnique: cfg.Like.EnforceUnique,
		Publisher:     publisher,
	})
	commentService := service.NewCommentService(db, commentRepo, accountRepo, likeService, service.CommentOptions{
		EnforcePermission: cfg.Comment.EnforcePermission,
		Archiver:          archiver,
		Publisher:         publisher,
	})
	accountService := service.NewAccountService(db, accountRepo, commentRepo, likeService, publisher)
	searchService := service.NewSearchService(commentRepo, cfg.Elasticsearch.CommentsIndex())
	loginStates := service.NewLoginStateStore(infraRedis.Get(), cfg.OAuth.StatePrefix, cfg.OAuth.StateTTLDuration())

	router.Setup(r,
		handler.NewHealthHandler(db, infraRedis.Ping),
		handler.NewAuthHandler(oauth.NewGitHubProvider(&cfg.OAuth), loginStates, identityService, accountService),
		handler.NewCommentHandler(commentService),
		handler.NewLikeHandler(likeService),
		handler.NewAccountHandler(accountService),
		handler.NewSearchHandler(searchService),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.String("database", cfg.Database.Driver),
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.Bool("minio", cfg.MinIO.Enabled),
		zap.Bool("like_enforce_unique", cfg.Like.EnforceUnique),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}

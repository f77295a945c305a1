package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mnmalikdev/beelive-backend/internal/config"
	"github.com/mnmalikdev/beelive-backend/internal/consumer"
	"github.com/mnmalikdev/beelive-backend/internal/evaluator"
	"github.com/mnmalikdev/beelive-backend/internal/repository"
	"github.com/mnmalikdev/beelive-backend/internal/sink"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// AlarmService 报警评估服务（整合各层）
type AlarmService struct {
	config      *config.Config
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger

	// 各层组件
	thresholdsRepo  *repository.ThresholdsRepository
	transitionsRepo *repository.TransitionsRepository
	cacheManager    *consumer.CacheManager
	readingConsumer *consumer.ReadingConsumer
	transitionSink  *sink.Sink
	evaluator       *evaluator.Evaluator
}

// NewAlarmService 创建报警评估服务
func NewAlarmService(cfg *config.Config, logger *zap.Logger) (*AlarmService, error) {
	// 1. 连接数据库
	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 2. 连接 Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	// 3. 创建 Repository 层
	thresholdsRepo := repository.NewThresholdsRepository(db, logger)
	transitionsRepo := repository.NewTransitionsRepository(db, logger)

	// 4. 创建接收器（审计 + 发布）
	transitionSink := sink.NewSink(
		transitionsRepo,
		redisClient,
		cfg.Alarm.Streams.TransitionsStream,
		logger,
	)

	// 5. 创建 Evaluator 层（状态表显式持有，冷启动无任何激活报警）
	thresholdCache := evaluator.NewThresholdCache(thresholdsRepo, logger)
	stateTable := evaluator.NewStateTable()
	eval := evaluator.NewEvaluator(thresholdCache, stateTable, transitionSink, logger)

	// 6. 创建 Consumer 层
	cacheManager := consumer.NewCacheManager(cfg, redisClient, logger)
	readingConsumer := consumer.NewReadingConsumer(cfg, redisClient, cacheManager, logger)

	return &AlarmService{
		config:          cfg,
		db:              db,
		redisClient:     redisClient,
		logger:          logger,
		thresholdsRepo:  thresholdsRepo,
		transitionsRepo: transitionsRepo,
		cacheManager:    cacheManager,
		readingConsumer: readingConsumer,
		transitionSink:  transitionSink,
		evaluator:       eval,
	}, nil
}

// Start 启动服务（阻塞消费读数流，直到上下文取消）
func (s *AlarmService) Start(ctx context.Context) error {
	s.logger.Info("Starting alarm service",
		zap.String("readings_stream", s.config.Alarm.Streams.ReadingsStream),
		zap.String("transitions_stream", s.config.Alarm.Streams.TransitionsStream),
	)

	if err := s.readingConsumer.Start(ctx, s.evaluator); err != nil {
		return fmt.Errorf("failed to run reading consumer: %w", err)
	}

	return nil
}

// Stop 停止服务
func (s *AlarmService) Stop() error {
	s.logger.Info("Stopping alarm service")

	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close database",
			zap.Error(err),
		)
	}

	if err := s.redisClient.Close(); err != nil {
		s.logger.Error("Failed to close redis",
			zap.Error(err),
		)
	}

	return nil
}

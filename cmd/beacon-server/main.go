package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/purabshah12/beacon/internal/candidate"
	"github.com/purabshah12/beacon/internal/common/config"
	"github.com/purabshah12/beacon/internal/common/database"
	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/matcher"
	"github.com/purabshah12/beacon/internal/report"
	"github.com/purabshah12/beacon/internal/scorer"
	"github.com/purabshah12/beacon/internal/web"
)

// retryWithBackoff attempts an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting beacon server",
		zap.String("environment", cfg.App.Environment),
		zap.String("scorerMode", cfg.Scorer.Mode),
	)

	store := report.NewStore(cfg.Storage.DataFile, log)
	repository := candidate.NewRepository(cfg.Storage.UploadDir, log)

	var s scorer.Scorer
	switch cfg.Scorer.Mode {
	case "remote":
		s = scorer.NewRemoteScorer(cfg.Scorer.BaseURL, cfg.Scorer.Timeout, log)
	default:
		s = scorer.NewKeywordScorer()
	}

	if cfg.Redis.Enabled {
		rdb := database.NewRedis(cfg.Redis)
		err := retryWithBackoff(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return rdb.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, score caching disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			s = scorer.NewCachedScorer(s, rdb.Client, cfg.Scorer.CacheTTL, log)
			zapLog.Info("score caching enabled", zap.String("addr", cfg.Redis.Address))
		}
	}

	ranker := matcher.NewRanker(repository, s, cfg.Matching.TieBandRatio, log)

	server := web.NewServer(cfg, ranker, store, log)
	if err := server.Start(); err != nil {
		zapLog.Fatal("server failed", zap.Error(err))
	}
}

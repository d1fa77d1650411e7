package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"theray/config"
	"theray/database/repository"
	providerRepo "theray/database/repository/provider"
	"theray/models"
	"theray/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitCounterWorker starts the asynq worker that applies deferred provider
// counter increments. The returned server is shut down by the caller.
func InitCounterWorker(redisOpts asynq.RedisConnOpt, providers providerRepo.ProviderRepository, logger *zap.Logger) *asynq.Server {
	concurrency := config.AppConfig.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeIncrementProviderSessions, handleCounterTask(providers, logger))

	// Start async worker with retry logic
	go func() {
		logger.Info("CounterWorker: starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil || errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			logger.Error("CounterWorker: failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("CounterWorker: max retry attempts reached, counter retries are disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second) // backoff
		}
	}()
	return srv
}

func handleCounterTask(providers providerRepo.ProviderRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.CounterTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("CounterHandler: invalid payload", zap.Error(err))
			return fmt.Errorf("invalid counter payload: %v: %w", err, asynq.SkipRetry)
		}

		err := providers.IncrementTotalSessions(ctx, p.ProviderID, 1)
		switch {
		case err == nil:
			logger.Info("CounterHandler: provider session count updated",
				zap.String("providerID", p.ProviderID), zap.String("sessionID", p.SessionID))
			return nil
		case errors.Is(err, repository.ErrNotFound):
			logger.Warn("CounterHandler: provider no longer exists",
				zap.String("providerID", p.ProviderID), zap.String("sessionID", p.SessionID))
			return fmt.Errorf("provider %s not found: %w", p.ProviderID, asynq.SkipRetry)
		default:
			logger.Warn("CounterHandler: increment failed, will retry",
				zap.String("providerID", p.ProviderID), zap.Error(err))
			return err
		}
	}
}

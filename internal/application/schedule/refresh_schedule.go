package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weatherapp/internal/domain/usecase/refresh"
	"weatherapp/pkg/log"
	"weatherapp/pkg/redis"
)

const refreshLockKey = "saved_query_refresh_scheduler"

// RefreshSchedulerConfig holds configuration for the refresh scheduler
type RefreshSchedulerConfig struct {
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// RefreshScheduler enqueues every saved query on a cron schedule. Only the instance
// holding the Redis lock runs the cron.
type RefreshScheduler struct {
	cron        *cron.Cron
	useCase     refresh.UseCase
	redisClient *redis.Client
	config      RefreshSchedulerConfig
}

// NewRefreshScheduler creates a new refresh scheduler. lockTTL and refreshInterval are in seconds.
func NewRefreshScheduler(useCase refresh.UseCase, redisClient *redis.Client, cronExpression string, lockTTL int, refreshInterval int) *RefreshScheduler {
	config := RefreshSchedulerConfig{
		CronExpression:  cronExpression,
		LockTTL:         time.Duration(lockTTL) * time.Second,
		RefreshInterval: time.Duration(refreshInterval) * time.Second,
	}
	if config.LockTTL <= 0 {
		config.LockTTL = 10 * time.Minute
	}
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = time.Minute
	}

	return &RefreshScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
	}
}

// Start tries to take the scheduler lock and, when it succeeds, runs the cron until ctx is
// canceled or the lock is lost. It returns immediately.
func (s *RefreshScheduler) Start(ctx context.Context) {
	go func() {
		lock := redis.NewLock(s.redisClient, refreshLockKey, redis.NewLockOptions().
			WithTTL(s.config.LockTTL).
			WithRefreshInterval(s.config.RefreshInterval).
			WithLockNamespace("weather_schedules"))

		if err := lock.Lock(ctx); err != nil {
			log.Warn("Refresh scheduler lock not acquired, cron will not run on this instance", zap.Error(err))
			return
		}
		defer func() {
			if err := lock.Unlock(context.WithoutCancel(ctx)); err != nil {
				log.Warn("Failed to release refresh scheduler lock", zap.Error(err))
			}
		}()

		refreshErrChan := lock.AutoRefresh(ctx)

		if _, err := s.cron.AddFunc(s.config.CronExpression, func() { s.ExecuteScheduledTask(ctx) }); err != nil {
			log.Error("Failed to initialize refresh scheduler, cron will not be started",
				zap.String("cron", s.config.CronExpression), zap.Error(err))
			return
		}

		s.cron.Start()
		log.Info("Refresh scheduler started", zap.String("cron", s.config.CronExpression))

		err := <-refreshErrChan
		s.Stop()

		if ctx.Err() != nil {
			log.Info("Refresh scheduler stopped gracefully")
		} else {
			log.Error("Refresh scheduler stopped after losing its lock", zap.Error(err))
		}
	}()
}

// ExecuteScheduledTask runs one refresh pass under a fresh request id
func (s *RefreshScheduler) ExecuteScheduledTask(ctx context.Context) {
	requestID := uuid.New().String()
	log.Info("Refresh scheduled task triggered", zap.String("request_id", requestID))

	summary, err := s.useCase.RefreshAll(ctx, requestID)
	if err != nil {
		log.Error("Scheduled refresh failed", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info("Scheduled refresh completed",
		zap.String("request_id", requestID),
		zap.Int("enqueued", summary.Enqueued),
		zap.Int("failed", summary.Failed))
}

// Stop waits for a running job and stops the cron
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}

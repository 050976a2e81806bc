package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "weatherapp/docs"
	"weatherapp/internal/application/controller"
	"weatherapp/internal/application/middleware"
	"weatherapp/internal/application/processor"
	"weatherapp/internal/application/schedule"
	"weatherapp/internal/domain/gateway/api"
	"weatherapp/internal/domain/gateway/db"
	"weatherapp/internal/domain/gateway/lock"
	"weatherapp/internal/domain/gateway/queue"
	"weatherapp/internal/domain/usecase/forecast"
	"weatherapp/internal/domain/usecase/geocode"
	"weatherapp/internal/domain/usecase/health"
	"weatherapp/internal/domain/usecase/query"
	"weatherapp/internal/domain/usecase/refresh"
	"weatherapp/internal/domain/usecase/weather"
	"weatherapp/internal/infra/aws"
	gormdb "weatherapp/internal/infra/database/gorm"
	"weatherapp/internal/infra/database/sqlc"
	httpclient "weatherapp/pkg/http"
	"weatherapp/pkg/log"
	"weatherapp/pkg/metrics"
	"weatherapp/pkg/msg"
	"weatherapp/pkg/redis"
	"weatherapp/pkg/resource"
	"weatherapp/pkg/sqs"
)

func main() {
	log.SetLevel(resource.GetString("app.log.level"))
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init infra
	redisClient := initRedis()
	queryGateway, dbHealthGateway := initPersistence(ctx)

	apiKey := resource.GetString("app.openweather.api-key")
	if apiKey == "" {
		log.Warn(msg.GetMessage("app.missing-api-key"))
	}
	apiGateway := api.NewWeatherGateway(
		resource.GetString("app.openweather.base-url"),
		apiKey,
		httpclient.ClientOptions{ReadTimeout: resource.GetDuration("app.openweather.timeout")},
		initCallLimiter(redisClient),
	)

	// Init UseCase
	geocodeUseCase := geocode.NewGeocodeUseCase(apiGateway)
	forecastUseCase := forecast.NewForecastUseCase(apiGateway)
	weatherUseCase := weather.NewWeatherUseCase(apiGateway)
	queryUseCase := query.NewQueryUseCase(queryGateway, geocodeUseCase, forecastUseCase)

	queueHealthGateway := queue.NewQueueHealthGateway()
	var refreshUseCase refresh.UseCase
	if resource.GetBool("app.refresh.enabled") {
		refreshUseCase = initRefreshPipeline(ctx, queryGateway, queryUseCase, queueHealthGateway, redisClient)
	}

	healthUseCase := health.NewHealthUseCase(dbHealthGateway, queueHealthGateway, lock.NewRedisHealthGateway(redisClient))

	// Init Routes
	e := echo.New()
	e.HideBanner = true
	middleware.Setup(e)
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := e.Group(resource.GetString("app.server.context-path"))
	controller.NewHealthController(apiGroup, healthUseCase).InitHealthRoutes()
	controller.NewWeatherController(apiGroup, weatherUseCase, geocodeUseCase).InitWeatherRoutes()
	controller.NewQueryController(apiGroup, queryUseCase, refreshUseCase).InitQueryRoutes()

	// Start Routes
	port := resource.GetString("app.server.port")
	go func() {
		log.Info(msg.GetMessage("app.started", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info(msg.GetMessage("app.stopped"))
}

func initRedis() *redis.Client {
	if !resource.GetBool("app.redis.enabled") {
		return nil
	}

	client, err := redis.NewClient(redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")))
	if err != nil {
		log.Fatal("Failed to configure Redis", zap.Error(err))
	}
	return client
}

// initCallLimiter shares the provider budget through Redis when it is available
func initCallLimiter(redisClient *redis.Client) api.CallLimiter {
	callsPerMinute := resource.GetInt("app.openweather.max-calls-per-minute")
	if callsPerMinute <= 0 {
		return nil
	}
	if redisClient == nil {
		return api.NewLocalCallLimiter(callsPerMinute)
	}

	limiter, err := redis.NewRateLimiter(redisClient, "openweather_calls",
		redis.NewRateLimiterOptions().
			WithMaxTransactionsPerMinute(callsPerMinute).
			WithNamespace(resource.GetString("app.name")))
	if err != nil {
		log.Fatal("Failed to configure provider rate limiter", zap.Error(err))
	}
	return limiter
}

func initPersistence(ctx context.Context) (db.LocationQueryGateway, db.HealthDBGateway) {
	driver := resource.GetString("app.db.driver")
	log.Info(msg.GetMessage("app.db-driver", driver))
	autoMigrate := resource.GetBool("app.db.auto-migrate")

	switch driver {
	case "memory":
		return db.NewMemoryLocationQueryGateway(), db.MemoryHealthDBGateway{}
	case "gorm":
		gormDB, err := gormdb.Connect()
		if err != nil {
			log.Fatal("Fail to connect Database", zap.Error(err))
		}
		gateway := db.NewGormLocationQueryGateway(gormDB)
		if autoMigrate {
			if err = gateway.AutoMigrate(); err != nil {
				log.Fatal("Failed to migrate Database", zap.Error(err))
			}
		}
		return gateway, db.NewGormHealthDBGateway(gormDB)
	default:
		sqlDB, err := sqlc.Connect(ctx)
		if err != nil {
			log.Fatal("Fail to connect Database", zap.Error(err))
		}
		if autoMigrate {
			if err = sqlc.Migrate(ctx, sqlDB); err != nil {
				log.Fatal("Failed to migrate Database", zap.Error(err))
			}
		}
		return db.NewSQLCLocationQueryGateway(sqlDB), db.NewSQLCHealthDBGateway(sqlDB)
	}
}

// initRefreshPipeline starts the SQS worker and, when Redis is available, the cron scheduler
func initRefreshPipeline(ctx context.Context, queryGateway db.LocationQueryGateway, queryUseCase query.UseCase, queueHealthGateway *queue.QueueHealthGateway, redisClient *redis.Client) refresh.UseCase {
	awsConfig, err := aws.LoadConfig(ctx)
	if err != nil {
		log.Fatal("Failed to configure AWS", zap.Error(err))
	}
	sqsClient := aws.NewSqsClient(awsConfig)
	queueName := resource.GetString("app.refresh.queue-name")

	refreshUseCase := refresh.NewRefreshUseCase(queryGateway, aws.NewSQSSenderAdapter(sqsClient), queueName, resource.GetInt("app.refresh.batch-size"))

	worker, err := sqs.NewWorker(ctx, sqsClient, queueName, processor.NewRefreshProcessor(queryUseCase), &sqs.WorkerConfig{
		PoolSize: resource.GetInt("app.refresh.worker-pool-size"),
	})
	if err != nil {
		log.Fatal("Failed to create refresh worker", zap.String("queue", queueName), zap.Error(err))
	}
	queueHealthGateway.RegisterWorker(queueName, worker)
	go worker.Start(ctx)

	if redisClient == nil {
		log.Warn("Redis disabled, refresh cron not scheduled; use POST /queries/refresh")
		return refreshUseCase
	}
	schedule.NewRefreshScheduler(
		refreshUseCase,
		redisClient,
		resource.GetString("app.refresh.cron"),
		resource.GetInt("app.refresh.lock-ttl"),
		resource.GetInt("app.refresh.refresh-interval"),
	).Start(ctx)

	return refreshUseCase
}

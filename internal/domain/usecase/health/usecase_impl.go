package health

import (
	"context"

	"weatherapp/internal/domain/gateway/db"
	"weatherapp/internal/domain/gateway/lock"
	"weatherapp/internal/domain/gateway/queue"
	"weatherapp/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	queueGateway queue.HealthGateway
	redisGateway lock.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, queueGateway queue.HealthGateway, redisGateway lock.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		queueGateway: queueGateway,
		redisGateway: redisGateway,
	}
}

// CheckHealth reports DOWN when any component is DOWN. UNKNOWN marks a disabled
// component and does not affect the overall status.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	dbHealth := useCase.dbGateway.Health(ctx)
	queueHealth := useCase.queueGateway.Health()
	redisHealth := useCase.redisGateway.Health(ctx)

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{dbHealth, queueHealth, redisHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Queue:    queueHealth,
		Redis:    redisHealth,
	}
}

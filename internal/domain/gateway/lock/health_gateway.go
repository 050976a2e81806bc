package lock

import (
	"context"

	"weatherapp/internal/domain/model"
	"weatherapp/pkg/redis"
)

// HealthGateway reports the state of the Redis instance backing the refresh lock
// and the shared provider rate limiter
type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

type RedisHealthGateway struct {
	Client *redis.Client
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{Client: client}
}

func (gateway *RedisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	if gateway.Client == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "Redis disabled"},
		}
	}

	check := gateway.Client.HealthCheck(ctx)
	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{Status: status, Details: check.Details}
}

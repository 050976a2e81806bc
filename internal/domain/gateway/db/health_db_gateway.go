package db

import (
	"context"

	"weatherapp/internal/domain/model"
)

type HealthDBGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

// MemoryHealthDBGateway backs the memory driver, which has nothing to ping
type MemoryHealthDBGateway struct{}

var _ HealthDBGateway = MemoryHealthDBGateway{}

func (MemoryHealthDBGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status:  model.StatusUp,
		Details: map[string]string{"driver": "memory"},
	}
}

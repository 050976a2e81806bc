package queue

import (
	"weatherapp/internal/domain/model"
	"weatherapp/pkg/sqs"
)

// HealthReporter is implemented by *sqs.Worker
type HealthReporter interface {
	HealthCheck() sqs.WorkerHealth
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker HealthReporter)
	UnregisterWorker(name string)
}

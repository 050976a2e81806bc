package schedule_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"weatherapp/internal/application/schedule"
	"weatherapp/internal/domain/usecase/refresh"
)

type mockRefreshUseCase struct {
	RefreshAllFunc func(ctx context.Context, requestID string) (*refresh.Summary, error)
}

func (m *mockRefreshUseCase) RefreshAll(ctx context.Context, requestID string) (*refresh.Summary, error) {
	return m.RefreshAllFunc(ctx, requestID)
}

func TestExecuteScheduledTaskUsesFreshRequestIDs(t *testing.T) {
	var requestIDs []string
	useCase := &mockRefreshUseCase{RefreshAllFunc: func(_ context.Context, requestID string) (*refresh.Summary, error) {
		requestIDs = append(requestIDs, requestID)
		return &refresh.Summary{RequestID: requestID}, nil
	}}
	scheduler := schedule.NewRefreshScheduler(useCase, nil, "@every 1h", 0, 0)

	scheduler.ExecuteScheduledTask(context.Background())
	scheduler.ExecuteScheduledTask(context.Background())

	assert.Len(t, requestIDs, 2)
	assert.NotEmpty(t, requestIDs[0])
	assert.NotEqual(t, requestIDs[0], requestIDs[1])
}

func TestExecuteScheduledTaskSurvivesFailure(t *testing.T) {
	useCase := &mockRefreshUseCase{RefreshAllFunc: func(context.Context, string) (*refresh.Summary, error) {
		return nil, errors.New("database down")
	}}

	assert.NotPanics(t, func() {
		schedule.NewRefreshScheduler(useCase, nil, "@every 1h", 60, 10).ExecuteScheduledTask(context.Background())
	})
}

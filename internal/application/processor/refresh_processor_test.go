package processor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"

	"weatherapp/internal/application/processor"
	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/gateway/api"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/usecase/query"
)

type mockQueryUseCase struct {
	query.UseCase
	RefreshFunc func(ctx context.Context, id string) (*entity.LocationQuery, error)
}

func (m *mockQueryUseCase) Refresh(ctx context.Context, id string) (*entity.LocationQuery, error) {
	return m.RefreshFunc(ctx, id)
}

func TestRefreshProcessorHandleMessage(t *testing.T) {
	tests := []struct {
		name       string
		body       *string
		refreshErr error
		wantErr    bool
		wantCalled bool
	}{
		{"refreshes query", aws.String(`{"id":"q-1","requestId":"r-1"}`), nil, false, true},
		{"missing body", nil, nil, true, false},
		{"malformed body", aws.String(`{"id":`), nil, true, false},
		{"missing id", aws.String(`{"requestId":"r-1"}`), nil, true, false},
		{"deleted query is dropped", aws.String(`{"id":"q-1"}`), model.NewNotFoundError("Query q-1 not found"), false, true},
		{"expired date range is dropped", aws.String(`{"id":"q-1"}`), model.NewAggregationError("Requested date range is outside the 5-day forecast window.", nil), false, true},
		{"empty window is dropped", aws.String(`{"id":"q-1"}`), model.NewAggregationError("No forecast points in that date range (try adjusting by a day).", nil), false, true},
		{"invalid stored input is dropped", aws.String(`{"id":"q-1"}`), model.NewValidationError("Invalid coordinates."), false, true},
		{"unknown place is dropped", aws.String(`{"id":"q-1"}`), model.NewGeocodeError("Location not found", nil), false, true},
		{"rejected zip is dropped", aws.String(`{"id":"q-1"}`), model.NewGeocodeError("Invalid ZIP", &api.ProviderError{StatusCode: 404}), false, true},
		{"provider outage is retried", aws.String(`{"id":"q-1"}`), model.NewAggregationError("Weather service unavailable", errors.New("connection refused")), true, true},
		{"provider server error is retried", aws.String(`{"id":"q-1"}`), model.NewAggregationError("Weather service unavailable", &api.ProviderError{StatusCode: 503}), true, true},
		{"provider throttling is retried", aws.String(`{"id":"q-1"}`), model.NewGeocodeError("Invalid ZIP", &api.ProviderError{StatusCode: 429}), true, true},
		{"geocoder outage is retried", aws.String(`{"id":"q-1"}`), model.NewGeocodeError("Geocoding failed", errors.New("circuit breaker is open")), true, true},
		{"missing api key is retried", aws.String(`{"id":"q-1"}`), model.NewConfigurationError("Server missing OPENWEATHER_API_KEY"), true, true},
		{"store failure is retried", aws.String(`{"id":"q-1"}`), model.NewPersistenceError(errors.New("timeout")), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			useCase := &mockQueryUseCase{RefreshFunc: func(_ context.Context, id string) (*entity.LocationQuery, error) {
				called = true
				assert.Equal(t, "q-1", id)
				if tt.refreshErr != nil {
					return nil, tt.refreshErr
				}
				return &entity.LocationQuery{ID: id}, nil
			}}

			err := processor.NewRefreshProcessor(useCase).HandleMessage(context.Background(), types.Message{Body: tt.body})

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"weatherapp/internal/domain/gateway/api"
	"weatherapp/internal/domain/gateway/queue"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/usecase/query"
	"weatherapp/pkg/log"
	"weatherapp/pkg/msg"
)

type RefreshProcessor struct {
	queryUseCase query.UseCase
}

func NewRefreshProcessor(queryUseCase query.UseCase) *RefreshProcessor {
	return &RefreshProcessor{
		queryUseCase: queryUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface.
// Failures that would repeat on every delivery (deleted query, invalid stored input, a date
// range the forecast no longer covers, an unknown place) are logged and acknowledged.
// Provider outages, configuration and store failures are returned so SQS redelivers the message.
func (p *RefreshProcessor) HandleMessage(ctx context.Context, message types.Message) error {
	if message.Body == nil {
		return fmt.Errorf("received message without body")
	}

	var body queue.RefreshMessage
	if err := json.Unmarshal([]byte(*message.Body), &body); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}
	if body.ID == "" {
		return fmt.Errorf("refresh message without query id")
	}

	_, err := p.queryUseCase.Refresh(ctx, body.ID)
	if err != nil && isPermanent(err) {
		log.Warn("Dropping refresh that cannot succeed",
			zap.String("query_id", body.ID),
			zap.String("request_id", body.RequestID),
			zap.String("kind", string(model.KindOf(err))),
			zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to refresh saved query %s: %w", body.ID, err)
	}

	log.Info(msg.GetMessage("refresh.processed", body.ID), zap.String("request_id", body.RequestID))
	return nil
}

func isPermanent(err error) bool {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		return false
	}

	switch domainErr.Kind {
	case model.KindNotFound, model.KindValidation:
		return true
	case model.KindGeocode, model.KindAggregation:
		// no cause: the provider answered and the data does not fit the request
		if domainErr.Err == nil {
			return true
		}
		var providerErr *api.ProviderError
		return errors.As(domainErr.Err, &providerErr) && !providerErr.Retryable()
	default:
		return false
	}
}

package refresh

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"weatherapp/internal/domain/gateway/db"
	"weatherapp/internal/domain/gateway/queue"
	"weatherapp/pkg/log"
	"weatherapp/pkg/msg"
)

type refreshUseCase struct {
	gateway     db.LocationQueryGateway
	queueSender queue.Sender
	queueName   string
	batchSize   int
}

func NewRefreshUseCase(gateway db.LocationQueryGateway, queueSender queue.Sender, queueName string, batchSize int) UseCase {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &refreshUseCase{
		gateway:     gateway,
		queueSender: queueSender,
		queueName:   queueName,
		batchSize:   batchSize,
	}
}

// RefreshAll walks the saved query ids with key-set pagination and sends one message per id.
// A failed batch send is counted and logged; only a read failure aborts the run.
func (uc *refreshUseCase) RefreshAll(ctx context.Context, requestID string) (*Summary, error) {
	log.Info("Starting saved query refresh", zap.String("request_id", requestID))

	summary := &Summary{RequestID: requestID}
	var lastID string

	for {
		ids, err := uc.gateway.FindIDsAfter(ctx, lastID, uc.batchSize)
		if err != nil {
			log.Error("Failed to page saved query ids",
				zap.String("request_id", requestID),
				zap.String("last_id", lastID),
				zap.Error(err))
			return summary, fmt.Errorf("failed to page saved query ids (lastID: %s): %w", lastID, err)
		}
		if len(ids) == 0 {
			break
		}

		summary.Processed += len(ids)

		// the query id doubles as the batch entry id: unique within a batch and within SQS's 80 char limit
		messages := make([]queue.BatchMessage, len(ids))
		for i, id := range ids {
			messages[i] = queue.BatchMessage{
				MessageID: id,
				Body:      queue.RefreshMessage{ID: id, RequestID: requestID},
			}
		}

		result, err := uc.queueSender.SendMessageBatch(ctx, uc.queueName, messages)
		if err != nil {
			log.Warn("Failed to send refresh batch",
				zap.String("request_id", requestID),
				zap.String("last_id", lastID),
				zap.Int("batch_size", len(ids)),
				zap.Error(err))
			summary.Failed += len(ids)
		} else {
			for _, failedID := range result.Failed {
				log.Warn("Failed to enqueue saved query",
					zap.String("request_id", requestID),
					zap.String("query_id", failedID))
			}
			summary.Enqueued += len(result.Successful)
			summary.Failed += len(result.Failed)
		}

		lastID = ids[len(ids)-1]
		if len(ids) < uc.batchSize {
			break
		}
	}

	log.Info(msg.GetMessage("refresh.enqueued", summary.Enqueued, summary.Failed),
		zap.String("request_id", requestID),
		zap.Int("total_processed", summary.Processed))
	return summary, nil
}

package queue

import "context"

// BatchMessage represents a message to be sent in batch
type BatchMessage struct {
	MessageID string `json:"messageId"`
	Body      any    `json:"body"`
}

// BatchResult represents the result of a batch send operation
type BatchResult struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

// RefreshMessage is the body of a refresh pipeline message
type RefreshMessage struct {
	ID        string `json:"id"`
	RequestID string `json:"requestId"`
}

type Sender interface {
	SendMessage(ctx context.Context, queueName string, body any) error
	SendMessageBatch(ctx context.Context, queueName string, messages []BatchMessage) (*BatchResult, error)
}

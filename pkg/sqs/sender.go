package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"golang.org/x/sync/errgroup"
)

// maxBatchEntries is the SendMessageBatch entry limit imposed by SQS
const maxBatchEntries = 10

// maxParallelBatches bounds concurrent SendMessageBatch calls per SendMessageBatch invocation
const maxParallelBatches = 4

type BatchMessage struct {
	MessageID string `json:"messageId"`
	Body      any    `json:"body"`
}

type BatchResult struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

func (r *BatchResult) merge(other *BatchResult) {
	r.Successful = append(r.Successful, other.Successful...)
	r.Failed = append(r.Failed, other.Failed...)
}

// SQSClient is the subset of *sqs.Client used by Sender
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	SendMessageBatch(ctx context.Context, params *sqs.SendMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
}

// Sender publishes JSON bodies to SQS queues. Queue URLs are resolved once per queue name.
type Sender struct {
	sqsClient SQSClient
	queueURLs sync.Map
}

func NewSender(sqsClient SQSClient) *Sender {
	return &Sender{sqsClient: sqsClient}
}

// SendMessage serializes body to JSON and sends it to queueName
func (s *Sender) SendMessage(ctx context.Context, queueName string, body any) error {
	queueURL, err := s.queueURL(ctx, queueName)
	if err != nil {
		return err
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	_, err = s.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(jsonBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}
	return nil
}

// SendMessageBatch sends messages in chunks of ten. A chunk the API rejects as a whole
// is reported in Failed; only a queue lookup failure is returned as an error.
func (s *Sender) SendMessageBatch(ctx context.Context, queueName string, messages []BatchMessage) (*BatchResult, error) {
	result := &BatchResult{Successful: []string{}, Failed: []string{}}
	if len(messages) == 0 {
		return result, nil
	}

	queueURL, err := s.queueURL(ctx, queueName)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallelBatches)

	for start := 0; start < len(messages); start += maxBatchEntries {
		chunk := messages[start:min(start+maxBatchEntries, len(messages))]
		group.Go(func() error {
			chunkResult, err := s.sendChunk(groupCtx, queueURL, chunk)
			if err != nil {
				chunkResult = &BatchResult{Failed: messageIDs(chunk)}
			}

			mu.Lock()
			result.merge(chunkResult)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return result, nil
}

func (s *Sender) sendChunk(ctx context.Context, queueURL string, chunk []BatchMessage) (*BatchResult, error) {
	result := &BatchResult{}
	entries := make([]types.SendMessageBatchRequestEntry, 0, len(chunk))

	for _, message := range chunk {
		jsonBody, err := json.Marshal(message.Body)
		if err != nil {
			result.Failed = append(result.Failed, message.MessageID)
			continue
		}
		entries = append(entries, types.SendMessageBatchRequestEntry{
			Id:          aws.String(message.MessageID),
			MessageBody: aws.String(string(jsonBody)),
		})
	}
	if len(entries) == 0 {
		return result, nil
	}

	output, err := s.sqsClient.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
		QueueUrl: aws.String(queueURL),
		Entries:  entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message batch: %w", err)
	}

	for _, entry := range output.Successful {
		result.Successful = append(result.Successful, aws.ToString(entry.Id))
	}
	for _, entry := range output.Failed {
		result.Failed = append(result.Failed, aws.ToString(entry.Id))
	}
	return result, nil
}

func (s *Sender) queueURL(ctx context.Context, queueName string) (string, error) {
	if cached, ok := s.queueURLs.Load(queueName); ok {
		return cached.(string), nil
	}

	output, err := s.sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(queueName)})
	if err != nil {
		return "", fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}
	if output.QueueUrl == nil {
		return "", fmt.Errorf("queue URL is nil for queue %s", queueName)
	}

	s.queueURLs.Store(queueName, *output.QueueUrl)
	return *output.QueueUrl, nil
}

func messageIDs(messages []BatchMessage) []string {
	ids := make([]string, len(messages))
	for i, message := range messages {
		ids[i] = message.MessageID
	}
	return ids
}

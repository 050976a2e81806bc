package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"weatherapp/pkg/log"
)

// HandlerFunc defines a function that handles a SQS Message
type HandlerFunc func(ctx context.Context, msg types.Message) error

// HandleMessage implements the Handler interface for HandlerFunc
func (f HandlerFunc) HandleMessage(ctx context.Context, msg types.Message) error {
	return f(ctx, msg)
}

// Handler defines an interface that processes a SQS Message.
// A nil error deletes the message; any error leaves it for redelivery.
type Handler interface {
	HandleMessage(ctx context.Context, msg types.Message) error
}

// WorkerClient defines the SQS operations the Worker needs
type WorkerClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// WorkerStatus is the state reported by HealthCheck
type WorkerStatus string

const (
	StatusUp   WorkerStatus = "UP"
	StatusDown WorkerStatus = "DOWN"
)

// WorkerHealth is the result of Worker.HealthCheck
type WorkerHealth struct {
	Status  WorkerStatus
	Details map[string]string
}

// WorkerConfig defines the configuration options for a Worker
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	// ErrorBackoff is the pause after a failed ReceiveMessage call
	ErrorBackoff time.Duration
}

// Worker polls and processes messages from a SQS queue
type Worker struct {
	sqsClient           WorkerClient
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	errorBackoff        time.Duration
	handler             Handler

	running   atomic.Bool
	processed atomic.Int64
	failed    atomic.Int64

	mu            sync.RWMutex
	lastPoll      time.Time
	lastPollError string
}

// NewWorker creates and returns a new Worker.
//
// If the provided WorkerConfig is nil or its fields are zero,
// the following defaults will be used:
//   - MaxNumberOfMessages: 10
//   - WaitTimeSeconds: 20
//   - PoolSize: 1
//   - ErrorBackoff: 5s
//
// Validations:
//   - MaxNumberOfMessages must be between 1 and 10.
//   - WaitTimeSeconds must be between 1 and 20.
//   - PoolSize must be greater than 0.
func NewWorker(ctx context.Context, sqsClient WorkerClient, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	var maxMessages int32 = 10
	var waitTime int32 = 20
	poolSize := 1
	errorBackoff := 5 * time.Second

	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			maxMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			waitTime = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			poolSize = config.PoolSize
		}
		if config.ErrorBackoff != 0 {
			errorBackoff = config.ErrorBackoff
		}
	}

	if maxMessages < 1 || maxMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if waitTime < 1 || waitTime > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}

	result, err := sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to get queue URL: %w", err)
	}
	if result.QueueUrl == nil {
		return nil, fmt.Errorf("queue URL is nil for queue %s", queueName)
	}

	return &Worker{
		sqsClient:           sqsClient,
		queueName:           queueName,
		queueURL:            *result.QueueUrl,
		maxNumberOfMessages: maxMessages,
		waitTimeSeconds:     waitTime,
		poolSize:            poolSize,
		errorBackoff:        errorBackoff,
		handler:             handler,
	}, nil
}

// Start begins polling messages and processing them.
// It spawns PoolSize pollers, each handling its batch sequentially,
// and blocks until the provided context is canceled.
func (w *Worker) Start(ctx context.Context) {
	w.running.Store(true)
	defer w.running.Store(false)

	var wg sync.WaitGroup
	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}

	wg.Wait()
}

func (w *Worker) pollMessages(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		output, err := w.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &w.queueURL,
			MaxNumberOfMessages: w.maxNumberOfMessages,
			WaitTimeSeconds:     w.waitTimeSeconds,
		})
		w.recordPoll(err)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("failed to receive messages", zap.String("queue", w.queueName), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.errorBackoff):
			}
			continue
		}

		for _, msg := range output.Messages {
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg types.Message) {
	messageID := safeMessageID(msg)

	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		w.failed.Add(1)
		log.Error("error processing message", zap.String("queue", w.queueName), zap.String("message_id", messageID), zap.Error(err))
		return
	}
	w.processed.Add(1)

	_, err := w.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &w.queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Error("failed to delete message", zap.String("queue", w.queueName), zap.String("message_id", messageID), zap.Error(err))
		return
	}
	log.Debug("message deleted", zap.String("queue", w.queueName), zap.String("message_id", messageID))
}

func (w *Worker) recordPoll(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastPoll = time.Now()
	if err != nil {
		w.lastPollError = err.Error()
	} else {
		w.lastPollError = ""
	}
}

// HealthCheck reports DOWN when the worker is not running or its last poll failed
func (w *Worker) HealthCheck() WorkerHealth {
	w.mu.RLock()
	lastPoll := w.lastPoll
	lastPollError := w.lastPollError
	w.mu.RUnlock()

	details := map[string]string{
		"queue":     w.queueName,
		"pool_size": strconv.Itoa(w.poolSize),
		"processed": strconv.FormatInt(w.processed.Load(), 10),
		"failed":    strconv.FormatInt(w.failed.Load(), 10),
	}
	if !lastPoll.IsZero() {
		details["last_poll"] = lastPoll.UTC().Format(time.RFC3339)
	}

	status := StatusUp
	if !w.running.Load() {
		status = StatusDown
		details["message"] = "worker not running"
	} else if lastPollError != "" {
		status = StatusDown
		details["message"] = lastPollError
	}

	return WorkerHealth{Status: status, Details: details}
}

func safeMessageID(msg types.Message) string {
	if msg.MessageId == nil {
		return ""
	}
	return *msg.MessageId
}

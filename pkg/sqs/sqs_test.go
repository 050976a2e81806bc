package sqs_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapp/pkg/sqs"
)

type fakeClient struct {
	mu          sync.Mutex
	queueURLErr error
	batchErr    error
	sent        []string
	batches     [][]types.SendMessageBatchRequestEntry
	inbox       []types.Message
	deleted     []string
	urlLookups  int
}

func (f *fakeClient) GetQueueUrl(_ context.Context, params *awssqs.GetQueueUrlInput, _ ...func(*awssqs.Options)) (*awssqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlLookups++
	if f.queueURLErr != nil {
		return nil, f.queueURLErr
	}
	url := "http://localhost:4566/000000000000/" + *params.QueueName
	return &awssqs.GetQueueUrlOutput{QueueUrl: &url}, nil
}

func (f *fakeClient) SendMessage(_ context.Context, params *awssqs.SendMessageInput, _ ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *params.MessageBody)
	return &awssqs.SendMessageOutput{}, nil
}

func (f *fakeClient) SendMessageBatch(_ context.Context, params *awssqs.SendMessageBatchInput, _ ...func(*awssqs.Options)) (*awssqs.SendMessageBatchOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	f.batches = append(f.batches, params.Entries)
	output := &awssqs.SendMessageBatchOutput{}
	for _, entry := range params.Entries {
		output.Successful = append(output.Successful, types.SendMessageBatchResultEntry{Id: entry.Id})
	}
	return output, nil
}

func (f *fakeClient) ReceiveMessage(ctx context.Context, _ *awssqs.ReceiveMessageInput, _ ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	messages := f.inbox
	f.inbox = nil
	f.mu.Unlock()

	if len(messages) == 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
	return &awssqs.ReceiveMessageOutput{Messages: messages}, nil
}

func (f *fakeClient) DeleteMessage(_ context.Context, params *awssqs.DeleteMessageInput, _ ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, *params.ReceiptHandle)
	return &awssqs.DeleteMessageOutput{}, nil
}

func (f *fakeClient) deletedHandles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func message(id string) types.Message {
	body := fmt.Sprintf(`{"id":%q}`, id)
	handle := "handle-" + id
	return types.Message{MessageId: &id, Body: &body, ReceiptHandle: &handle}
}

func TestSendMessageSerializesBody(t *testing.T) {
	client := &fakeClient{}
	sender := sqs.NewSender(client)

	err := sender.SendMessage(context.Background(), "refresh", map[string]string{"id": "q-1"})

	require.NoError(t, err)
	assert.Equal(t, []string{`{"id":"q-1"}`}, client.sent)
}

func TestSendMessageQueueURLFailure(t *testing.T) {
	sender := sqs.NewSender(&fakeClient{queueURLErr: errors.New("no such queue")})

	err := sender.SendMessage(context.Background(), "refresh", "x")

	assert.ErrorContains(t, err, "failed to get queue URL for refresh")
}

func TestSendMessageBatchSplitsInChunksOfTen(t *testing.T) {
	client := &fakeClient{}
	sender := sqs.NewSender(client)

	messages := make([]sqs.BatchMessage, 23)
	for i := range messages {
		messages[i] = sqs.BatchMessage{MessageID: fmt.Sprintf("m-%02d", i), Body: i}
	}

	result, err := sender.SendMessageBatch(context.Background(), "refresh", messages)

	require.NoError(t, err)
	assert.Len(t, client.batches, 3)
	assert.Len(t, result.Successful, 23)
	assert.Empty(t, result.Failed)
}

func TestSendMessageBatchReportsFailedBatches(t *testing.T) {
	sender := sqs.NewSender(&fakeClient{batchErr: errors.New("throttled")})

	result, err := sender.SendMessageBatch(context.Background(), "refresh", []sqs.BatchMessage{
		{MessageID: "a", Body: 1},
		{MessageID: "b", Body: 2},
	})

	require.NoError(t, err)
	sort.Strings(result.Failed)
	assert.Equal(t, []string{"a", "b"}, result.Failed)
	assert.Empty(t, result.Successful)
}

func TestSenderCachesQueueURL(t *testing.T) {
	client := &fakeClient{}
	sender := sqs.NewSender(client)

	require.NoError(t, sender.SendMessage(context.Background(), "refresh", "a"))
	require.NoError(t, sender.SendMessage(context.Background(), "refresh", "b"))

	assert.Equal(t, 1, client.urlLookups)
	assert.Len(t, client.sent, 2)
}

func TestSendMessageBatchEmpty(t *testing.T) {
	result, err := sqs.NewSender(&fakeClient{}).SendMessageBatch(context.Background(), "refresh", nil)

	require.NoError(t, err)
	assert.Empty(t, result.Successful)
	assert.Empty(t, result.Failed)
}

func TestNewWorkerValidatesConfig(t *testing.T) {
	handler := sqs.HandlerFunc(func(context.Context, types.Message) error { return nil })

	_, err := sqs.NewWorker(context.Background(), &fakeClient{}, "refresh", handler, &sqs.WorkerConfig{MaxNumberOfMessages: 11})
	assert.Error(t, err)

	_, err = sqs.NewWorker(context.Background(), &fakeClient{}, "refresh", handler, &sqs.WorkerConfig{WaitTimeSeconds: 21})
	assert.Error(t, err)

	_, err = sqs.NewWorker(context.Background(), &fakeClient{}, "refresh", handler, &sqs.WorkerConfig{PoolSize: -1})
	assert.Error(t, err)

	_, err = sqs.NewWorker(context.Background(), &fakeClient{queueURLErr: errors.New("missing")}, "refresh", handler, nil)
	assert.ErrorContains(t, err, "unable to get queue URL")
}

func TestWorkerDeletesOnlyHandledMessages(t *testing.T) {
	client := &fakeClient{inbox: []types.Message{message("ok"), message("bad")}}
	handler := sqs.HandlerFunc(func(_ context.Context, msg types.Message) error {
		if *msg.MessageId == "bad" {
			return errors.New("boom")
		}
		return nil
	})

	worker, err := sqs.NewWorker(context.Background(), client, "refresh", handler, &sqs.WorkerConfig{WaitTimeSeconds: 1})
	require.NoError(t, err)
	assert.Equal(t, sqs.StatusDown, worker.HealthCheck().Status)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(client.deletedHandles()) == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return worker.HealthCheck().Details["failed"] == "1" }, time.Second, 5*time.Millisecond)

	health := worker.HealthCheck()
	assert.Equal(t, sqs.StatusUp, health.Status)
	assert.Equal(t, "1", health.Details["processed"])
	assert.Equal(t, []string{"handle-ok"}, client.deletedHandles())

	cancel()
	<-done
	assert.Equal(t, sqs.StatusDown, worker.HealthCheck().Status)
}

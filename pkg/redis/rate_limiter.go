package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRateLimited is returned when a slot cannot be acquired before the wait timeout
var ErrRateLimited = errors.New("rate limit reached")

// acquireScript checks the active counter and the 60s sliding window atomically.
// Result: 1 = acquired, 0 = active limit, -2 = per-minute limit.
const acquireScript = `
	local active_key = KEYS[1]
	local tpm_key = KEYS[2]

	local max_active = tonumber(ARGV[1])
	local max_tpm = tonumber(ARGV[2])
	local transaction_id = ARGV[3]
	local now_nanos = tonumber(ARGV[4])
	local transaction_ttl = tonumber(ARGV[5])

	if max_active > 0 then
		local active_count = tonumber(redis.call("GET", active_key)) or 0
		if active_count >= max_active then
			return 0
		end
	end

	if max_tpm > 0 then
		local cutoff = now_nanos - (60 * 1000000000)
		redis.call("ZREMRANGEBYSCORE", tpm_key, "-inf", cutoff)
		if redis.call("ZCARD", tpm_key) >= max_tpm then
			return -2
		end
	end

	if max_active > 0 then
		redis.call("INCR", active_key)
		redis.call("EXPIRE", active_key, transaction_ttl * 2)
	end

	if max_tpm > 0 then
		redis.call("ZADD", tpm_key, now_nanos, transaction_id)
		redis.call("EXPIRE", tpm_key, 60)
	end

	return 1
`

// RateLimiterOptions represents options for rate limiting
type RateLimiterOptions struct {
	// MaxActiveTransactions caps concurrent transactions; zero disables the check
	MaxActiveTransactions int
	// MaxTransactionsPerMinute caps transactions in any 60s window; zero disables the check
	MaxTransactionsPerMinute int
	// TransactionTTL bounds how long a leaked active slot survives
	TransactionTTL time.Duration
	// WaitTimeout is how long Acquire keeps retrying before giving up
	WaitTimeout time.Duration
	RetryDelay  time.Duration
	Namespace   string
}

// NewRateLimiterOptions creates rate limiter options with default values
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		TransactionTTL: 30 * time.Second,
		WaitTimeout:    10 * time.Second,
		RetryDelay:     200 * time.Millisecond,
	}
}

// WithMaxTransactionsPerMinute sets the per-minute budget
func (o *RateLimiterOptions) WithMaxTransactionsPerMinute(limit int) *RateLimiterOptions {
	o.MaxTransactionsPerMinute = limit
	return o
}

// WithMaxActiveTransactions sets the concurrency cap
func (o *RateLimiterOptions) WithMaxActiveTransactions(limit int) *RateLimiterOptions {
	o.MaxActiveTransactions = limit
	return o
}

// WithWaitTimeout sets how long Acquire waits for a free slot
func (o *RateLimiterOptions) WithWaitTimeout(timeout time.Duration) *RateLimiterOptions {
	o.WaitTimeout = timeout
	return o
}

// WithNamespace sets the key namespace
func (o *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	o.Namespace = namespace
	return o
}

// Validate validates the options
func (o *RateLimiterOptions) Validate() error {
	if o.MaxActiveTransactions < 0 || o.MaxTransactionsPerMinute < 0 {
		return fmt.Errorf("limits must be non-negative")
	}
	if o.MaxActiveTransactions == 0 && o.MaxTransactionsPerMinute == 0 {
		return fmt.Errorf("at least one limit must be set")
	}
	if o.TransactionTTL <= 0 {
		return fmt.Errorf("transaction TTL must be positive")
	}
	if o.RetryDelay <= 0 {
		return fmt.Errorf("retry delay must be positive")
	}
	return nil
}

// RateLimiter is a rate limiter shared by every process using the same Redis key
type RateLimiter struct {
	client        *Client
	key           string
	opts          *RateLimiterOptions
	activeKeyName string
	tpmKeyName    string
}

// NewRateLimiter creates a new distributed rate limiter
func NewRateLimiter(client *Client, key string, opts *RateLimiterOptions) (*RateLimiter, error) {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limiter := &RateLimiter{client: client, key: key, opts: opts}
	limiter.activeKeyName = limiter.buildKey("active")
	limiter.tpmKeyName = limiter.buildKey("tpm")
	return limiter, nil
}

// buildKey constructs the full key using Namespace::key::suffix format
func (rl *RateLimiter) buildKey(suffix string) string {
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + rl.key + "::" + suffix
	}
	return rl.key + "::" + suffix
}

// Acquire waits up to WaitTimeout for a transaction slot and returns its id
func (rl *RateLimiter) Acquire(ctx context.Context) (string, error) {
	deadline := time.Now().Add(rl.opts.WaitTimeout)

	for {
		transactionID, acquired, err := rl.tryAcquire(ctx)
		if err != nil {
			return "", err
		}
		if acquired {
			return transactionID, nil
		}
		if time.Now().After(deadline) {
			return "", ErrRateLimited
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(rl.opts.RetryDelay):
		}
	}
}

func (rl *RateLimiter) tryAcquire(ctx context.Context) (string, bool, error) {
	transactionID := uuid.NewString()
	result, err := rl.client.GetClient().Eval(ctx, acquireScript,
		[]string{rl.activeKeyName, rl.tpmKeyName},
		rl.opts.MaxActiveTransactions,
		rl.opts.MaxTransactionsPerMinute,
		transactionID,
		time.Now().UnixNano(),
		int(rl.opts.TransactionTTL.Seconds()),
	).Int64()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire rate limiter: %w", err)
	}
	return transactionID, result == 1, nil
}

// Release frees the active slot. Per-minute entries age out on their own.
func (rl *RateLimiter) Release(ctx context.Context, transactionID string) error {
	if transactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if rl.opts.MaxActiveTransactions == 0 {
		return nil
	}

	count, err := rl.client.GetClient().Decr(ctx, rl.activeKeyName).Result()
	if err != nil {
		return fmt.Errorf("failed to release transaction: %w", err)
	}
	if count < 0 {
		return rl.client.GetClient().Set(ctx, rl.activeKeyName, 0, rl.opts.TransactionTTL*2).Err()
	}
	return nil
}

// WithTransaction executes fn inside an acquired slot
func (rl *RateLimiter) WithTransaction(ctx context.Context, fn func() error) error {
	transactionID, err := rl.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire rate limiter: %w", err)
	}
	defer func() { _ = rl.Release(context.WithoutCancel(ctx), transactionID) }()

	return fn()
}

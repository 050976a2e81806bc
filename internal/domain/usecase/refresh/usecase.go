package refresh

import "context"

// Summary counts the outcome of one RefreshAll run
type Summary struct {
	RequestID string `json:"requestId"`
	Processed int    `json:"processed"`
	Enqueued  int    `json:"enqueued"`
	Failed    int    `json:"failed"`
}

type UseCase interface {
	// RefreshAll enqueues every saved query id for re-aggregation
	RefreshAll(ctx context.Context, requestID string) (*Summary, error)
}

package db

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"weatherapp/internal/domain/entity"
)

// MemoryLocationQueryGateway keeps saved queries in process memory. Used when no database
// is configured and in tests.
type MemoryLocationQueryGateway struct {
	mu      sync.RWMutex
	queries map[string]entity.LocationQuery
	now     func() time.Time
}

var _ LocationQueryGateway = (*MemoryLocationQueryGateway)(nil)

func NewMemoryLocationQueryGateway() *MemoryLocationQueryGateway {
	return &MemoryLocationQueryGateway{
		queries: make(map[string]entity.LocationQuery),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func cloneLocationQuery(q entity.LocationQuery) entity.LocationQuery {
	q.Result.Series = slices.Clone(q.Result.Series)
	return q
}

func (gateway *MemoryLocationQueryGateway) FindAll(ctx context.Context) ([]entity.LocationQuery, error) {
	gateway.mu.RLock()
	defer gateway.mu.RUnlock()

	results := make([]entity.LocationQuery, 0, len(gateway.queries))
	for _, q := range gateway.queries {
		results = append(results, cloneLocationQuery(q))
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (gateway *MemoryLocationQueryGateway) FindByID(ctx context.Context, id string) (*entity.LocationQuery, error) {
	gateway.mu.RLock()
	defer gateway.mu.RUnlock()

	q, ok := gateway.queries[id]
	if !ok {
		return nil, nil
	}
	q = cloneLocationQuery(q)
	return &q, nil
}

func (gateway *MemoryLocationQueryGateway) FindIDsAfter(ctx context.Context, lastID string, limit int) ([]string, error) {
	gateway.mu.RLock()
	defer gateway.mu.RUnlock()

	ids := make([]string, 0, len(gateway.queries))
	for id := range gateway.queries {
		if id > lastID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (gateway *MemoryLocationQueryGateway) Create(ctx context.Context, query entity.LocationQuery) (*entity.LocationQuery, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	query.ID = uuid.New().String()
	query.CreatedAt = gateway.now()
	query.UpdatedAt = query.CreatedAt
	gateway.queries[query.ID] = cloneLocationQuery(query)

	return &query, nil
}

func (gateway *MemoryLocationQueryGateway) UpdateByID(ctx context.Context, id string, patch entity.QueryPatch) (*entity.LocationQuery, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	q, ok := gateway.queries[id]
	if !ok {
		return nil, nil
	}

	if patch.LocationInput != nil {
		q.LocationInput = *patch.LocationInput
	}
	if patch.NormalizedLocation != nil {
		q.NormalizedLocation = *patch.NormalizedLocation
	}
	if patch.DateRange != nil {
		q.DateRange = *patch.DateRange
	}
	if patch.Result != nil {
		q.Result = *patch.Result
	}
	if patch.Notes != nil {
		notes := *patch.Notes
		q.Notes = &notes
	}
	q.UpdatedAt = gateway.now()

	gateway.queries[id] = cloneLocationQuery(q)
	return &q, nil
}

func (gateway *MemoryLocationQueryGateway) DeleteByID(ctx context.Context, id string) (bool, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	if _, ok := gateway.queries[id]; !ok {
		return false, nil
	}
	delete(gateway.queries, id)
	return true, nil
}

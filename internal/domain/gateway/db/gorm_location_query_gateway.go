package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"weatherapp/internal/domain/entity"
)

// locationQueryRecord maps the location_queries table. JSON columns are kept as raw text.
type locationQueryRecord struct {
	ID                 string    `gorm:"primaryKey;type:text"`
	LocationInput      string    `gorm:"type:jsonb;not null"`
	NormalizedLocation string    `gorm:"type:jsonb;not null"`
	StartDate          time.Time `gorm:"type:date;not null"`
	EndDate            time.Time `gorm:"type:date;not null"`
	Units              string    `gorm:"type:text;not null"`
	Source             string    `gorm:"type:text;not null"`
	Result             string    `gorm:"type:jsonb;not null"`
	Notes              *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"not null;index:idx_location_queries_created_at,sort:desc"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (locationQueryRecord) TableName() string {
	return "location_queries"
}

func (r *locationQueryRecord) toEntity() (*entity.LocationQuery, error) {
	q := &entity.LocationQuery{
		ID:     r.ID,
		Units:  entity.Units(r.Units),
		Source: r.Source,
		Notes:  r.Notes,
		DateRange: entity.DateRange{
			Start: r.StartDate.Format(entity.DateLayout),
			End:   r.EndDate.Format(entity.DateLayout),
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}

	if err := json.Unmarshal([]byte(r.LocationInput), &q.LocationInput); err != nil {
		return nil, fmt.Errorf("decode location_input of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.NormalizedLocation), &q.NormalizedLocation); err != nil {
		return nil, fmt.Errorf("decode normalized_location of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Result), &q.Result); err != nil {
		return nil, fmt.Errorf("decode result of %s: %w", r.ID, err)
	}
	return q, nil
}

func encodeJSON(value any) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(entity.DateLayout, value)
}

type GormLocationQueryGateway struct {
	DB *gorm.DB
}

var _ LocationQueryGateway = (*GormLocationQueryGateway)(nil)

func NewGormLocationQueryGateway(db *gorm.DB) *GormLocationQueryGateway {
	return &GormLocationQueryGateway{DB: db}
}

// AutoMigrate creates or updates the location_queries table.
func (gateway *GormLocationQueryGateway) AutoMigrate() error {
	return gateway.DB.AutoMigrate(&locationQueryRecord{})
}

func (gateway *GormLocationQueryGateway) FindAll(ctx context.Context) ([]entity.LocationQuery, error) {
	var records []locationQueryRecord
	if err := gateway.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	results := make([]entity.LocationQuery, 0, len(records))
	for i := range records {
		q, err := records[i].toEntity()
		if err != nil {
			return nil, err
		}
		results = append(results, *q)
	}
	return results, nil
}

func (gateway *GormLocationQueryGateway) FindByID(ctx context.Context, id string) (*entity.LocationQuery, error) {
	var record locationQueryRecord
	err := gateway.DB.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record.toEntity()
}

func (gateway *GormLocationQueryGateway) FindIDsAfter(ctx context.Context, lastID string, limit int) ([]string, error) {
	ids := make([]string, 0, limit)
	err := gateway.DB.WithContext(ctx).
		Model(&locationQueryRecord{}).
		Where("id > ?", lastID).
		Order("id").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (gateway *GormLocationQueryGateway) Create(ctx context.Context, query entity.LocationQuery) (*entity.LocationQuery, error) {
	record := locationQueryRecord{
		ID:     uuid.New().String(),
		Units:  string(query.Units),
		Source: query.Source,
		Notes:  query.Notes,
	}

	var err error
	if record.LocationInput, err = encodeJSON(query.LocationInput); err != nil {
		return nil, err
	}
	if record.NormalizedLocation, err = encodeJSON(query.NormalizedLocation); err != nil {
		return nil, err
	}
	if record.Result, err = encodeJSON(query.Result); err != nil {
		return nil, err
	}
	if record.StartDate, err = parseDate(query.DateRange.Start); err != nil {
		return nil, err
	}
	if record.EndDate, err = parseDate(query.DateRange.End); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err = gateway.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toEntity()
}

func (gateway *GormLocationQueryGateway) UpdateByID(ctx context.Context, id string, patch entity.QueryPatch) (*entity.LocationQuery, error) {
	values, err := patchValues(patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	var record locationQueryRecord
	result := gateway.DB.WithContext(ctx).
		Model(&record).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return record.toEntity()
}

// patchValues maps the fields present in patch to their columns, plus updated_at.
func patchValues(patch entity.QueryPatch, now time.Time) (map[string]any, error) {
	values := map[string]any{"updated_at": now}

	if patch.LocationInput != nil {
		encoded, err := encodeJSON(patch.LocationInput)
		if err != nil {
			return nil, err
		}
		values["location_input"] = encoded
	}
	if patch.NormalizedLocation != nil {
		encoded, err := encodeJSON(patch.NormalizedLocation)
		if err != nil {
			return nil, err
		}
		values["normalized_location"] = encoded
	}
	if patch.DateRange != nil {
		start, err := parseDate(patch.DateRange.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(patch.DateRange.End)
		if err != nil {
			return nil, err
		}
		values["start_date"] = start
		values["end_date"] = end
	}
	if patch.Result != nil {
		encoded, err := encodeJSON(patch.Result)
		if err != nil {
			return nil, err
		}
		values["result"] = encoded
	}
	if patch.Notes != nil {
		values["notes"] = *patch.Notes
	}
	return values, nil
}

func (gateway *GormLocationQueryGateway) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := gateway.DB.WithContext(ctx).Delete(&locationQueryRecord{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

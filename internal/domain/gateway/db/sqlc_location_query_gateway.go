package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"weatherapp/internal/domain/entity"
)

const locationQueryColumns = `id, location_input, normalized_location, start_date, end_date,
	units, source, result, notes, created_at, updated_at`

type SQLCLocationQueryGateway struct {
	DB *sql.DB
}

var _ LocationQueryGateway = (*SQLCLocationQueryGateway)(nil)

func NewSQLCLocationQueryGateway(db *sql.DB) *SQLCLocationQueryGateway {
	return &SQLCLocationQueryGateway{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocationQuery(row rowScanner) (*entity.LocationQuery, error) {
	var q entity.LocationQuery
	var locationInput, normalizedLocation, result []byte
	var start, end time.Time
	var units string
	var notes sql.NullString

	err := row.Scan(&q.ID, &locationInput, &normalizedLocation, &start, &end,
		&units, &q.Source, &result, &notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(locationInput, &q.LocationInput); err != nil {
		return nil, fmt.Errorf("decode location_input of %s: %w", q.ID, err)
	}
	if err = json.Unmarshal(normalizedLocation, &q.NormalizedLocation); err != nil {
		return nil, fmt.Errorf("decode normalized_location of %s: %w", q.ID, err)
	}
	if err = json.Unmarshal(result, &q.Result); err != nil {
		return nil, fmt.Errorf("decode result of %s: %w", q.ID, err)
	}

	q.DateRange = entity.DateRange{
		Start: start.Format(entity.DateLayout),
		End:   end.Format(entity.DateLayout),
	}
	q.Units = entity.Units(units)
	if notes.Valid {
		q.Notes = &notes.String
	}
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()

	return &q, nil
}

func (gateway *SQLCLocationQueryGateway) FindAll(ctx context.Context) (results []entity.LocationQuery, err error) {
	rows, err := gateway.DB.QueryContext(ctx, `
		SELECT `+locationQueryColumns+`
		FROM location_queries
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	results = make([]entity.LocationQuery, 0)
	for rows.Next() {
		q, scanErr := scanLocationQuery(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, *q)
	}
	return results, rows.Err()
}

func (gateway *SQLCLocationQueryGateway) FindByID(ctx context.Context, id string) (*entity.LocationQuery, error) {
	q, err := scanLocationQuery(gateway.DB.QueryRowContext(ctx, `
		SELECT `+locationQueryColumns+`
		FROM location_queries
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (gateway *SQLCLocationQueryGateway) FindIDsAfter(ctx context.Context, lastID string, limit int) (ids []string, err error) {
	rows, err := gateway.DB.QueryContext(ctx, `
		SELECT id
		FROM location_queries
		WHERE id > $1
		ORDER BY id
		LIMIT $2`, lastID, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	ids = make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (gateway *SQLCLocationQueryGateway) Create(ctx context.Context, query entity.LocationQuery) (*entity.LocationQuery, error) {
	locationInput, err := json.Marshal(query.LocationInput)
	if err != nil {
		return nil, err
	}
	normalizedLocation, err := json.Marshal(query.NormalizedLocation)
	if err != nil {
		return nil, err
	}
	result, err := json.Marshal(query.Result)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return scanLocationQuery(gateway.DB.QueryRowContext(ctx, `
		INSERT INTO location_queries (id, location_input, normalized_location, start_date, end_date,
			units, source, result, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING `+locationQueryColumns,
		uuid.New().String(), string(locationInput), string(normalizedLocation), query.DateRange.Start, query.DateRange.End,
		string(query.Units), query.Source, string(result), query.Notes, now))
}

func (gateway *SQLCLocationQueryGateway) UpdateByID(ctx context.Context, id string, patch entity.QueryPatch) (*entity.LocationQuery, error) {
	statement, args, err := buildUpdateStatement(id, patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	q, err := scanLocationQuery(gateway.DB.QueryRowContext(ctx, statement, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// buildUpdateStatement sets only the columns present in patch, plus updated_at.
// The id is always the last placeholder.
func buildUpdateStatement(id string, patch entity.QueryPatch, now time.Time) (string, []any, error) {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	setJSON := func(column string, value any) error {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", column, err)
		}
		set(column, string(encoded))
		return nil
	}

	if patch.LocationInput != nil {
		if err := setJSON("location_input", patch.LocationInput); err != nil {
			return "", nil, err
		}
	}
	if patch.NormalizedLocation != nil {
		if err := setJSON("normalized_location", patch.NormalizedLocation); err != nil {
			return "", nil, err
		}
	}
	if patch.DateRange != nil {
		set("start_date", patch.DateRange.Start)
		set("end_date", patch.DateRange.End)
	}
	if patch.Result != nil {
		if err := setJSON("result", patch.Result); err != nil {
			return "", nil, err
		}
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}
	set("updated_at", now)

	args = append(args, id)
	statement := fmt.Sprintf(`UPDATE location_queries SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), locationQueryColumns)
	return statement, args, nil
}

func (gateway *SQLCLocationQueryGateway) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := gateway.DB.ExecContext(ctx, `DELETE FROM location_queries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapp/internal/domain/entity"
)

var updateClock = time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

func TestBuildUpdateStatementNotesOnly(t *testing.T) {
	notes := "beach trip"

	statement, args, err := buildUpdateStatement("q-1", entity.QueryPatch{Notes: &notes}, updateClock)

	require.NoError(t, err)
	assert.Contains(t, statement, "SET notes = $1, updated_at = $2 WHERE id = $3 RETURNING")
	assert.NotContains(t, statement, "location_input =")
	assert.NotContains(t, statement, "result =")
	assert.Equal(t, []any{"beach trip", updateClock, "q-1"}, args)
}

func TestBuildUpdateStatementAllFields(t *testing.T) {
	notes := ""
	patch := entity.QueryPatch{
		LocationInput:      &entity.LocationInput{Type: entity.LocationZip, Zip: "33410"},
		NormalizedLocation: &entity.NormalizedLocation{Lat: 26.84, Lon: -80.13},
		DateRange:          &entity.DateRange{Start: "2024-05-02", End: "2024-05-04"},
		Result:             &entity.QueryResult{Series: []entity.DailyForecast{}},
		Notes:              &notes,
	}

	statement, args, err := buildUpdateStatement("q-9", patch, updateClock)

	require.NoError(t, err)
	assert.Contains(t, statement, "SET location_input = $1, normalized_location = $2, start_date = $3, end_date = $4, result = $5, notes = $6, updated_at = $7 WHERE id = $8")
	require.Len(t, args, 8)
	assert.JSONEq(t, `{"type":"zip","zip":"33410"}`, args[0].(string))
	assert.Equal(t, "2024-05-02", args[2])
	assert.Equal(t, "2024-05-04", args[3])
	assert.Equal(t, "", args[5])
	assert.Equal(t, "q-9", args[7])
}

func TestBuildUpdateStatementEmptyPatchOnlyTouchesTimestamp(t *testing.T) {
	statement, args, err := buildUpdateStatement("q-1", entity.QueryPatch{}, updateClock)

	require.NoError(t, err)
	assert.Contains(t, statement, "SET updated_at = $1 WHERE id = $2")
	assert.Equal(t, []any{updateClock, "q-1"}, args)
}

func TestPatchValuesOnlyPatchedColumns(t *testing.T) {
	values, err := patchValues(entity.QueryPatch{
		DateRange: &entity.DateRange{Start: "2024-05-02", End: "2024-05-03"},
	}, updateClock)

	require.NoError(t, err)
	assert.Len(t, values, 3)
	assert.Equal(t, updateClock, values["updated_at"])
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), values["start_date"])
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), values["end_date"])
	assert.NotContains(t, values, "notes")
	assert.NotContains(t, values, "result")
}

func TestPatchValuesEncodesJSONColumns(t *testing.T) {
	notes := "n"
	values, err := patchValues(entity.QueryPatch{
		LocationInput: &entity.LocationInput{Type: entity.LocationPlace, Query: "Paris"},
		Result:        &entity.QueryResult{Summary: entity.DaySummary{Count: 1}},
		Notes:         &notes,
	}, updateClock)

	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"q","q":"Paris"}`, values["location_input"].(string))
	assert.Contains(t, values["result"].(string), `"count":1`)
	assert.Equal(t, "n", values["notes"])
}

func TestPatchValuesRejectsBadDate(t *testing.T) {
	_, err := patchValues(entity.QueryPatch{DateRange: &entity.DateRange{Start: "05/02/2024", End: "2024-05-03"}}, updateClock)

	assert.Error(t, err)
}

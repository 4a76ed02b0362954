package lots_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"lotdesk/internal/domain/entity"
	"lotdesk/internal/domain/service/lots"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func parse(t *testing.T, payload string) any {
	t.Helper()

	var raw any
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	return raw
}

func ids(result []entity.Lot) []string {
	out := make([]string, len(result))
	for i, lot := range result {
		out[i] = lot.ID.String()
	}

	return out
}

func TestNormalizeAcceptedShapes(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		payload string
		wantIDs []string
	}{
		{
			name:    "bare array",
			payload: `[{"id":1},{"id":2}]`,
			wantIDs: []string{"1", "2"},
		},
		{
			name:    "bare array with json wrappers",
			payload: `[{"json":{"id":"a"}},{"json":{"id":"b"}}]`,
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "data envelope",
			payload: `{"data":[{"id":1}]}`,
			wantIDs: []string{"1"},
		},
		{
			name:    "data envelope with json wrappers",
			payload: `{"data":[{"json":{"id":1}},{"json":{"id":2}}]}`,
			wantIDs: []string{"1", "2"},
		},
		{
			name:    "items envelope",
			payload: `{"items":[{"id":"x"},{"id":"y"}]}`,
			wantIDs: []string{"x", "y"},
		},
		{
			name:    "lots envelope",
			payload: `{"lots":[{"id":1,"status":"parsed","supplier_name":"Acme"}]}`,
			wantIDs: []string{"1"},
		},
		{
			name:    "envelope priority order is data, items, lots",
			payload: `{"lots":[{"id":"low"}],"data":[{"id":"high"}]}`,
			wantIDs: []string{"high"},
		},
		{
			name:    "single lot object",
			payload: `{"id":7,"supplier_name":"Solo"}`,
			wantIDs: []string{"7"},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			result := lots.Normalize(parse(t, tc.payload))
			rq.Equal(tc.wantIDs, ids(result))
		})
	}
}

func TestNormalizeUnrecognizedShapes(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		payload string
	}{
		{name: "empty object", payload: `{}`},
		{name: "object without id", payload: `{"supplier_name":"Acme"}`},
		{name: "falsy numeric id", payload: `{"id":0}`},
		{name: "falsy string id", payload: `{"id":""}`},
		{name: "scalar", payload: `42`},
		{name: "string", payload: `"lots"`},
		{name: "bool", payload: `true`},
		{name: "envelope with non-array value", payload: `{"data":"nope"}`},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			result := lots.Normalize(parse(t, tc.payload))
			rq.NotNil(result)
			rq.Empty(result)
		})
	}
}

func TestNormalizeNil(t *testing.T) {
	rq := require.New(t)

	result := lots.Normalize(nil)
	rq.NotNil(result)
	rq.Empty(result)
}

func TestNormalizeSkipsNonObjectElements(t *testing.T) {
	rq := require.New(t)

	result := lots.Normalize(parse(t, `[{"id":1},"junk",2,null,{"id":3}]`))
	rq.Equal([]string{"1", "3"}, ids(result))
}

func TestNormalizeLotFields(t *testing.T) {
	rq := require.New(t)

	payload := `{"lots":[{
		"id":"lot-9",
		"status":"Parsed",
		"supplier_name":"Acme",
		"supplier_id":"sup-1",
		"received_at":"2025-06-01T12:00:00Z",
		"region":"EU",
		"supplier_whatsapp_id":"wa-77",
		"positions":[{"model":"iPhone 15","quantity":5}]
	}]}`

	result := lots.Normalize(parse(t, payload))
	rq.Len(result, 1)

	lot := result[0]
	rq.Equal(entity.LotID("lot-9"), lot.ID)
	rq.Equal(entity.StatusParsed, lot.Status.Effective())
	rq.Equal("Acme", lot.SupplierName)
	rq.Equal("EU", lot.Region)
	rq.Len(lot.Positions, 1)
	rq.Equal("iPhone 15", lot.Positions[0].Model)
}

func TestNormalizePositionsNeverNil(t *testing.T) {
	rq := require.New(t)

	result := lots.Normalize(parse(t, `[{"id":1},{"id":2,"positions":null}]`))
	rq.Len(result, 2)

	for _, lot := range result {
		rq.NotNil(lot.Positions)
	}
}

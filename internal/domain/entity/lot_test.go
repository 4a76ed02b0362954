package entity_test

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"lotdesk/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestLotIDDecode(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		raw  string
		want entity.LotID
	}{
		{name: "string id", raw: `{"id":"lot-17"}`, want: "lot-17"},
		{name: "numeric id", raw: `{"id":42}`, want: "42"},
		{name: "null id", raw: `{"id":null}`, want: ""},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(*testing.T) {
			var lot entity.Lot
			rq.NoError(json.Unmarshal([]byte(tc.raw), &lot))
			rq.Equal(tc.want, lot.ID)
		})
	}
}

func TestLotIDEncodeKeepsLiteralForm(t *testing.T) {
	rq := require.New(t)

	numeric, err := json.Marshal(entity.LotID("42"))
	rq.NoError(err)
	rq.Equal("42", string(numeric))

	text, err := json.Marshal(entity.LotID("lot-17"))
	rq.NoError(err)
	rq.Equal(`"lot-17"`, string(text))

	// Integer-looking but non-canonical ids must stay quoted: emitted raw
	// they would be invalid JSON numbers.
	for raw, want := range map[string]string{
		"007": `"007"`,
		"+5":  `"+5"`,
		"-0":  `"-0"`,
	} {
		encoded, err := json.Marshal(entity.LotID(raw))
		rq.NoError(err)
		rq.Equal(want, string(encoded))
	}
}

func TestPositionsNeverNil(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		raw  string
	}{
		{name: "absent", raw: `{"id":1}`},
		{name: "null", raw: `{"id":1,"positions":null}`},
		{name: "not an array", raw: `{"id":1,"positions":"oops"}`},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(*testing.T) {
			var lot entity.Lot
			rq.NoError(json.Unmarshal([]byte(tc.raw), &lot))
			rq.NotNil(lot.Positions)
			rq.Empty(lot.Positions)
		})
	}
}

func TestPositionsDecode(t *testing.T) {
	rq := require.New(t)

	raw := `{"id":1,"positions":[{"brand":"Apple","model":"iPhone 15","color":"black","capacity_gb":256,"quantity":10,"unit_price":780.5,"currency":"USD"}]}`

	var lot entity.Lot
	rq.NoError(json.Unmarshal([]byte(raw), &lot))
	rq.Len(lot.Positions, 1)

	p := lot.Positions[0]
	rq.Equal("Apple", p.Brand)
	rq.Equal("iPhone 15", p.Model)
	rq.NotNil(p.CapacityGB)
	rq.Equal(256, *p.CapacityGB)
	rq.NotNil(p.Quantity)
	rq.Equal(10, *p.Quantity)
	rq.NotNil(p.UnitPrice)
	rq.InDelta(780.5, *p.UnitPrice, 0.001)
	rq.Equal("USD", p.Currency)
}

func TestStatusDefaults(t *testing.T) {
	rq := require.New(t)

	var absent entity.LotStatus

	rq.Equal(entity.StatusParsed, absent.Effective())
	rq.Equal("new", absent.Display())

	rq.Equal(entity.StatusSent, entity.LotStatus("SENT").Effective())
	rq.Equal("SENT", entity.LotStatus("SENT").Display())
}

func TestDisplayNameFallsBackToSupplierID(t *testing.T) {
	rq := require.New(t)

	named := entity.Lot{SupplierName: "Acme", SupplierID: "sup-1"}
	rq.Equal("Acme", named.DisplayName())

	unnamed := entity.Lot{SupplierID: "sup-1"}
	rq.Equal("sup-1", unnamed.DisplayName())

	var numericID entity.Lot
	rq.NoError(json.Unmarshal([]byte(`{"id":1,"supplier_id":77}`), &numericID))
	rq.Equal("77", numericID.DisplayName())
}

func TestIsFresh(t *testing.T) {
	rq := require.New(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	fresh := entity.Lot{ReceivedAt: entity.FlexString(now.Add(-time.Minute).Format(time.RFC3339))}
	rq.True(fresh.IsFresh(now))

	stale := entity.Lot{ReceivedAt: entity.FlexString(now.Add(-6 * time.Minute).Format(time.RFC3339))}
	rq.False(stale.IsFresh(now))

	rq.False(entity.Lot{}.IsFresh(now))
	rq.False(entity.Lot{ReceivedAt: "not-a-date"}.IsFresh(now))
}

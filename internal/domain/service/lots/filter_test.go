package lots_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lotdesk/internal/domain/entity"
	"lotdesk/internal/domain/service/lots"
)

func testLots() []entity.Lot {
	return []entity.Lot{
		{ID: "1", Status: "parsed", SupplierName: "Acme"},
		{ID: "2", Status: "SENT", SupplierName: "AnvarStore"},
		{ID: "3", Status: "error", SupplierID: "sup-42"},
		{ID: "4", SupplierName: "Globex"}, // no status: effective parsed
	}
}

func TestVisibleNoFiltersReturnsInputUnchanged(t *testing.T) {
	rq := require.New(t)

	all := testLots()
	visible := lots.Visible(all, lots.FilterAll, "")

	rq.Equal(all, visible)
	rq.Equal([]entity.Lot(nil), lots.Visible(nil, lots.FilterAll, ""))
}

func TestVisibleByStatus(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		status  string
		wantIDs []string
	}{
		{name: "parsed includes missing status", status: "parsed", wantIDs: []string{"1", "4"}},
		{name: "sent is case-insensitive", status: "sent", wantIDs: []string{"2"}},
		{name: "error", status: "error", wantIDs: []string{"3"}},
		{name: "new matches nothing here", status: "new", wantIDs: []string{}},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(*testing.T) {
			visible := lots.Visible(testLots(), tc.status, "")
			rq.Equal(tc.wantIDs, ids(visible))

			for _, lot := range visible {
				rq.Equal(entity.LotStatus(tc.status), lot.Status.Effective())
			}
		})
	}
}

func TestVisibleBySupplier(t *testing.T) {
	rq := require.New(t)

	// Substring, case-folded, with supplier_id as fallback.
	rq.Equal([]string{"1", "2"}, ids(lots.Visible(testLots(), "all", "a")))
	rq.Equal([]string{"2"}, ids(lots.Visible(testLots(), "all", "ANVAR")))
	rq.Equal([]string{"3"}, ids(lots.Visible(testLots(), "all", "sup-42")))
	rq.Equal([]string{"1"}, ids(lots.Visible(testLots(), "all", "  acme  ")))
	rq.Empty(lots.Visible(testLots(), "all", "nobody"))
}

func TestVisibleFiltersCompose(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]string{"1"}, ids(lots.Visible(testLots(), "parsed", "acme")))
	rq.Empty(ids(lots.Visible(testLots(), "sent", "acme")))
}

func TestVisibleIsIdempotent(t *testing.T) {
	rq := require.New(t)

	all := testLots()

	first := lots.Visible(all, "parsed", "a")
	second := lots.Visible(all, "parsed", "a")

	rq.Equal(first, second)
	rq.Equal(testLots(), all) // input untouched
}

func TestStatusFilterAllowed(t *testing.T) {
	rq := require.New(t)

	for _, value := range []string{"all", "parsed", "sent", "error", "new"} {
		rq.True(lots.StatusFilterAllowed(value))
	}

	rq.False(lots.StatusFilterAllowed("rejected"))
	rq.False(lots.StatusFilterAllowed(""))
}

package supplier_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"lotdesk/internal/domain"
	"lotdesk/internal/infrastructure/supplier"
	"lotdesk/pkg/errcodes"
)

func TestFetchLots(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal(http.MethodGet, r.Method)
		rq.Equal("/lots", r.URL.Path)
		rq.Equal("no-store", r.Header.Get("Cache-Control"))

		w.Write([]byte(`{"lots":[{"id":1,"status":"parsed","supplier_name":"Acme"}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	result, err := client.FetchLots(context.Background())
	rq.NoError(err)
	rq.Len(result, 1)
	rq.Equal("1", result[0].ID.String())
	rq.Equal("Acme", result[0].SupplierName)
}

func TestFetchLotsTransportError(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	_, err := client.FetchLots(context.Background())
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.TransportError))
	rq.ErrorContains(err, "HTTP 502")
}

func TestFetchLotsParseError(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"lots": [`)) //nolint:errcheck
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	_, err := client.FetchLots(context.Background())
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.ParseError))
}

func TestFetchLotsUnrecognizedShapeIsEmptyNotError(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	result, err := client.FetchLots(context.Background())
	rq.NoError(err)
	rq.Empty(result)
}

func TestAcceptLot(t *testing.T) {
	rq := require.New(t)

	var gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal(http.MethodPost, r.Method)
		rq.Equal("/lots/accept", r.URL.Path)
		rq.Equal("application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		rq.NoError(err)
		gotBody = string(body)
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	rq.NoError(client.AcceptLot(context.Background(), "42", 15))
	rq.JSONEq(`{"lot_id":42,"margin_percent":15}`, gotBody)

	rq.NoError(client.AcceptLot(context.Background(), "lot-a", 0))
	rq.JSONEq(`{"lot_id":"lot-a","margin_percent":0}`, gotBody)
}

func TestRejectLot(t *testing.T) {
	rq := require.New(t)

	var gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/lots/reject", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		rq.NoError(err)
		gotBody = string(body)
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	rq.NoError(client.RejectLot(context.Background(), "2"))
	rq.JSONEq(`{"lot_id":2}`, gotBody)
}

func TestRejectLotNon2xx(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	err := client.RejectLot(context.Background(), "2")
	rq.True(domain.HasCode(err, errcodes.TransportError))
	rq.ErrorContains(err, "HTTP 500")
}

func TestNotifySuppliersSendsNoBody(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/send-to-suppliers", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		rq.NoError(err)
		rq.Empty(body)
	}))
	defer server.Close()

	client := supplier.NewClient(server.URL, nil)

	rq.NoError(client.NotifySuppliers(context.Background()))
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	client := supplier.NewClient(server.URL, nil)

	_, err := client.FetchLots(context.Background())
	rq.True(domain.HasCode(err, errcodes.TransportError))
}

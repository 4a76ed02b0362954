package supplier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"lotdesk/internal/domain"
	"lotdesk/internal/domain/entity"
	"lotdesk/internal/domain/service/lots"
	"lotdesk/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Client talks to the supplier webhook endpoints. The remote side is an
// opaque collaborator: only status codes and the lots payload shape are
// part of the contract, response bodies of the POST calls are ignored.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type acceptRequest struct {
	LotID         entity.LotID `json:"lot_id"`
	MarginPercent float64      `json:"margin_percent"`
}

type rejectRequest struct {
	LotID entity.LotID `json:"lot_id"`
}

// FetchLots runs one poll cycle: fetch, syntax-check, normalize.
// A non-2xx status or network failure is a TransportError; a body that is
// not valid JSON is a ParseError. A valid but unrecognized shape is not an
// error — it normalizes to an empty list.
func (c *Client) FetchLots(ctx context.Context) ([]entity.Lot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/lots", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	// Cache bypass: every cycle must observe the current feed.
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.TransportError, "lots fetch failed")
	}

	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, domain.NewError(errcodes.TransportError, fmt.Sprintf("lots fetch failed: HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.TransportError, "lots fetch failed")
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.WrapError(err, errcodes.ParseError, "invalid JSON from lots endpoint")
	}

	return lots.Normalize(raw), nil
}

// AcceptLot submits the operator's accept decision with the chosen margin.
func (c *Client) AcceptLot(ctx context.Context, id entity.LotID, marginPercent float64) error {
	return c.post(ctx, "/lots/accept", acceptRequest{LotID: id, MarginPercent: marginPercent})
}

// RejectLot submits the operator's reject decision.
func (c *Client) RejectLot(ctx context.Context, id entity.LotID) error {
	return c.post(ctx, "/lots/reject", rejectRequest{LotID: id})
}

// NotifySuppliers triggers the broadcast to supplier groups. No body.
func (c *Client) NotifySuppliers(ctx context.Context) error {
	return c.post(ctx, "/send-to-suppliers", nil)
}

func (c *Client) post(ctx context.Context, endpoint string, request any) error {
	var payload io.Reader = http.NoBody

	if request != nil {
		b, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, payload)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, "request failed")
	}

	defer resp.Body.Close()

	// Drain so the connection can be reused; the body itself is ignored.
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if !is2xx(resp.StatusCode) {
		return domain.NewError(errcodes.TransportError, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	return nil
}

func is2xx(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

// HTTPClient talks to the ledger gateway's JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLedgerClient(cfg config.LedgerConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/v1/health", c.baseURL)
	if _, err := sendRequest[any, HealthResponse](c, ctx, http.MethodGet, url, nil); err != nil {
		return domain.NewConnectionFailedError(err)
	}
	return nil
}

func (c *HTTPClient) Accounts(ctx context.Context) ([]domain.Address, error) {
	url := fmt.Sprintf("%s/api/v1/accounts", c.baseURL)
	resp, err := sendRequest[any, AccountsResponse](c, ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Address, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		accounts = append(accounts, domain.Address(a).Normalize())
	}
	return accounts, nil
}

func (c *HTTPClient) Register(ctx context.Context, addr domain.Address, stake string) error {
	url := fmt.Sprintf("%s/api/v1/oracles", c.baseURL)
	req := RegisterRequest{Address: addr.String(), Stake: stake}
	_, err := sendRequest[RegisterRequest, RegisterResponse](c, ctx, http.MethodPost, url, &req)
	return err
}

func (c *HTTPClient) AssignedIndexes(ctx context.Context, addr domain.Address) (domain.IndexSet, error) {
	endpoint := fmt.Sprintf("%s/api/v1/oracles/%s/indexes", c.baseURL, url.PathEscape(addr.String()))
	resp, err := sendRequest[any, IndexesResponse](c, ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	indexes := make([]uint8, 0, len(resp.Indexes))
	for _, idx := range resp.Indexes {
		if idx < 0 || idx > 255 {
			return nil, fmt.Errorf("ledger returned index %d out of range for oracle %s", idx, addr)
		}
		indexes = append(indexes, uint8(idx))
	}
	return domain.NewIndexSet(indexes...), nil
}

func (c *HTTPClient) RequestEvents(ctx context.Context, from uint64, limit int) (*application.EventPage, error) {
	url := fmt.Sprintf("%s/api/v1/events/oracle-requests?from=%d&limit=%d", c.baseURL, from, limit)
	resp, err := sendRequest[any, EventsResponse](c, ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	page := &application.EventPage{
		Events: make([]application.RawEvent, 0, len(resp.Events)),
		Next:   resp.Next,
	}
	for _, ev := range resp.Events {
		page.Events = append(page.Events, application.RawEvent{Offset: ev.Offset, Payload: ev.Payload})
	}
	return page, nil
}

func (c *HTTPClient) SubmitResponse(ctx context.Context, from domain.Address, resp domain.OracleResponse) error {
	url := fmt.Sprintf("%s/api/v1/oracle-responses", c.baseURL)
	req := SubmitResponseRequest{
		From:       from.String(),
		Index:      resp.Index,
		Airline:    resp.Airline.String(),
		Flight:     resp.Flight,
		Timestamp:  resp.Timestamp,
		StatusCode: uint8(resp.StatusCode),
	}
	_, err := sendRequest[SubmitResponseRequest, SubmitResponseResponse](c, ctx, http.MethodPost, url, &req)
	return err
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var ledgerErrResp application.LedgerErrorResponse
		if err := json.Unmarshal(body, &ledgerErrResp); err != nil || ledgerErrResp.Err == "" {
			return nil, &application.LedgerError{
				Code:       http.StatusText(resp.StatusCode),
				Message:    string(body),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &application.LedgerError{
			Code:       ledgerErrResp.Err,
			Message:    ledgerErrResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var ledgerResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&ledgerResp); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &ledgerResp, nil
}

var _ application.Ledger = (*HTTPClient)(nil)

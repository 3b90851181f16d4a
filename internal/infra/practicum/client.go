// internal/infra/practicum/client.go
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"homework_status_bot/internal/domain/homework"
)

// maxBodySize caps how much of a response is read; the API answers with a few KB at most.
const maxBodySize = 1 << 20

// Client queries the homework_statuses endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient returns a client reusing httpClient for every request.
func NewClient(httpClient *http.Client, endpoint, token string) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
	}
}

// Fetch asks for homework status changes since fromDate (Unix seconds) and returns the decoded JSON body.
// Numbers are kept as json.Number. Failures are reported as *homework.NetworkError,
// *homework.RemoteServiceError or *homework.MalformedResponseError. Nothing is retried.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &homework.NetworkError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &homework.NetworkError{Endpoint: c.endpoint, Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &homework.RemoteServiceError{
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &homework.MalformedResponseError{Reason: "empty body"}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &homework.MalformedResponseError{Reason: "body is not valid JSON", Err: err}
	}
	if dec.More() {
		return nil, &homework.MalformedResponseError{Reason: "trailing data after JSON value"}
	}
	return raw, nil
}

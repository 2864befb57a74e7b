package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Page is one page of a list response. Each list envelope type implements it
// so pagination decodes straight into typed structs, with no dynamic field
// lookups.
type Page[T any] interface {
	PageItems() []T
	NextToken() string
}

// Do sends one authenticated request and decodes the JSON response into T.
// A non-2xx response is returned as an *APIError carrying the status and
// body verbatim.
func Do[T any](ctx context.Context, c *Client, method, rawurl string, body any) (T, error) {
	var out T
	if err := c.do(ctx, method, rawurl, body, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Paginate executes one logical list operation that may take several HTTP
// round-trips, accumulating pages in server order. A limit > 0 caps the
// result at exactly limit items and stops requesting once reached; limit 0
// follows next_page_token until the server stops returning one. It returns
// the items plus the total count observed.
func Paginate[T any, P Page[T]](
	ctx context.Context,
	c *Client,
	method, rawurl string,
	body any,
	limit int,
) ([]T, int, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	q := u.Query()
	q.Set("page_size", strconv.Itoa(c.PageSize))

	var items []T
	for {
		u.RawQuery = q.Encode()

		var page P
		if err := c.do(ctx, method, u.String(), body, &page); err != nil {
			return nil, 0, err
		}
		items = append(items, page.PageItems()...)

		if limit > 0 && len(items) >= limit {
			items = items[:limit]
			break
		}

		next := page.NextToken()
		if next == "" {
			break
		}
		q.Set("page_token", next)
	}

	return items, len(items), nil
}

// do issues one bearer-authenticated request. out may be nil when the caller
// does not care about the response body.
func (c *Client) do(ctx context.Context, method, rawurl string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawurl, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

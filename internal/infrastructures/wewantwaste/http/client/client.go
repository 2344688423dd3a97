package wewantwaste

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/infrastructures/wewantwaste/dto"
	"github.com/ozzus/skip-hire/internal/infrastructures/wewantwaste/mappers"
)

const (
	DefaultBaseURL = "https://app.wewantwaste.co.uk"
	skipsPath      = "/api/skips/by-location"
)

type Client struct {
	baseURL    string
	location   models.Location
	httpClient *http.Client
}

func NewClient(baseURL string, location models.Location, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		location:   location,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Location() models.Location {
	return c.location
}

// FetchSkips loads the skips for the client's location. Any failure other
// than the caller giving up is reported as ErrDataFetchFailure.
func (c *Client) FetchSkips(ctx context.Context) ([]models.Skip, error) {
	skips, err := c.fetch(ctx)
	if err == nil {
		return skips, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return nil, fmt.Errorf("%w: %w", derr.ErrDataFetchFailure, err)
}

func (c *Client) fetch(ctx context.Context) ([]models.Skip, error) {
	reqURL, err := c.buildURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wewantwaste request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("wewantwaste status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read wewantwaste response: %w", err)
	}

	items, err := decodeSkips(body)
	if err != nil {
		return nil, fmt.Errorf("decode wewantwaste response: %w", err)
	}

	return mappers.ToSkips(items)
}

func (c *Client) buildURL() (string, error) {
	u, err := url.Parse(c.baseURL + skipsPath)
	if err != nil {
		return "", fmt.Errorf("parse wewantwaste base url: %w", err)
	}

	q := u.Query()
	q.Set("postcode", c.location.Postcode)
	q.Set("area", c.location.Area)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeSkips accepts either a bare array or an object with a skips array.
func decodeSkips(body []byte) ([]dto.SkipItem, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}

	raw := json.RawMessage(body)
	if body[0] == '{' {
		var envelope dto.SkipsEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		if len(envelope.Skips) == 0 {
			return nil, errors.New("object without skips field")
		}
		raw = envelope.Skips
	}

	var items []dto.SkipItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("skips is null")
	}
	return items, nil
}

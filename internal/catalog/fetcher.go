// Package catalog fetches the product catalog snapshot from the data
// feed. The feed is a single JSON document mapping slugs to products.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"price-display-api/internal/models"
)

type Fetcher struct {
	feedURL string
	client  *http.Client
}

func NewFetcher(feedURL string) *Fetcher {
	return &Fetcher{
		feedURL: feedURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch downloads and decodes one catalog snapshot. A cache-busting
// query parameter is appended so CDN layers never serve a stale
// document, same trick the storefront uses.
func (f *Fetcher) Fetch(ctx context.Context) (models.Catalog, error) {
	reqURL, err := f.snapshotURL()
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL %q: %w", f.feedURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var catalog models.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return catalog, nil
}

func (f *Fetcher) snapshotURL() (string, error) {
	u, err := url.Parse(f.feedURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("v", strconv.FormatInt(time.Now().UnixNano(), 10))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

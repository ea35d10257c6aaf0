package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type Currency struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewCurrency(endpoint, apiKey string) *Currency {
	return &Currency{endpoint: endpoint, apiKey: apiKey, client: &http.Client{}}
}

// Rate fetches the conversion rate for a currency pair like EUR -> USD.
func (c *Currency) Rate(ctx context.Context, from, to string) (float64, error) {
	pair := strings.ToUpper(from) + "_" + strings.ToUpper(to)

	query := url.Values{}
	query.Set("q", pair)
	query.Set("compact", "y")
	if c.apiKey != "" {
		query.Set("apiKey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("error creating request %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error executing request %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code on rate lookup: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, fmt.Errorf("error reading response %w", err)
	}

	var parsed map[string]struct {
		Val float64 `json:"val"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("error decoding response %w", err)
	}

	rate, ok := parsed[pair]
	if !ok {
		return 0, fmt.Errorf("no rate returned for %s", pair)
	}

	return rate.Val, nil
}

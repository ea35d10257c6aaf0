// Package lookup holds the HTTP clients behind the encyclopedia and
// currency commands.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gabbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// DefaultWikipediaEndpoint is a format string taking the language code.
const DefaultWikipediaEndpoint = "https://%s.wikipedia.org/w/api.php"

type Wikipedia struct {
	endpoint string
	client   *http.Client
}

// NewWikipedia takes the search endpoint as a format string with one %s verb
// for the language code.
func NewWikipedia(endpoint string) *Wikipedia {
	return &Wikipedia{endpoint: endpoint, client: &http.Client{}}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// Search returns a link to the top search hit for the article.
func (w *Wikipedia) Search(ctx context.Context, article, lang string) (string, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("list", "search")
	query.Set("format", "json")
	query.Set("srsearch", article)

	endpoint := fmt.Sprintf(w.endpoint, lang) + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request %w", err)
	}

	res, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error executing request %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code on search: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("error decoding response %w", err)
	}

	if len(parsed.Query.Search) == 0 {
		return "", domain.ErrNoResults
	}

	title := strings.ReplaceAll(parsed.Query.Search[0].Title, " ", "_")

	log.Debug().Str("article", article).Str("title", title).Msg("resolved article")

	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", lang, title), nil
}

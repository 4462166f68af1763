package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yanqian/weather-buddy/internal/domain/directory"
	"github.com/yanqian/weather-buddy/internal/infra/resilience"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// Client calls the Places text-search endpoint.
type Client struct {
	apiKey  string
	baseURL string
	doer    *resilience.Doer
}

// NewClient builds a Places client. An empty API key is rejected so callers
// can leave the directory agent unavailable instead.
func NewClient(apiKey, baseURL string, doer *resilience.Doer) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("places api key is required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, doer: doer}, nil
}

type searchRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
}

type searchResponse struct {
	Places []placeRecord `json:"places"`
}

type placeRecord struct {
	DisplayName *struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress    *string       `json:"formattedAddress"`
	Rating              *float64      `json:"rating"`
	RegularOpeningHours *openingHours `json:"regularOpeningHours"`
	CurrentOpeningHours *openingHours `json:"currentOpeningHours"`
}

type openingHours struct {
	OpenNow             *bool    `json:"openNow"`
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

// Search runs a text query restricted to the given field mask.
func (c *Client) Search(ctx context.Context, query string, fields []string, maxResults int) ([]directory.Place, error) {
	body, err := json.Marshal(searchRequest{TextQuery: query, MaxResultCount: maxResults})
	if err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", strings.Join(fields, ","))

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("places search: %w", resilience.StatusError(resp))
	}
	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}
	out := make([]directory.Place, 0, len(decoded.Places))
	for _, rec := range decoded.Places {
		out = append(out, rec.toPlace())
	}
	return out, nil
}

func (r placeRecord) toPlace() directory.Place {
	p := directory.Place{Address: r.FormattedAddress, Rating: r.Rating}
	if r.DisplayName != nil {
		p.Name = r.DisplayName.Text
	}
	if r.RegularOpeningHours != nil {
		p.WeekdayDescriptions = r.RegularOpeningHours.WeekdayDescriptions
	}
	if r.CurrentOpeningHours != nil {
		p.OpenNow = r.CurrentOpeningHours.OpenNow
	}
	return p
}

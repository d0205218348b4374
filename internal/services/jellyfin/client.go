package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jellyboxd/internal/config"
	"jellyboxd/internal/services"
)

const (
	tokenHeader   = "X-Emby-Token"
	userAgent     = "jellyboxd/1.0"
	maxErrorBody  = 2048
	watchedFields = "ProductionYear,UserData,SeriesName"
	watchedTypes  = ItemTypeMovie + "," + ItemTypeEpisode
)

// HTTPDoer describes the HTTP client used by the Jellyfin client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues authenticated GET requests against a Jellyfin server.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// NewClient constructs a client for baseURL using apiKey for every request.
// A nil doer falls back to http.DefaultClient.
func NewClient(baseURL, apiKey string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  doer,
	}
}

// NewConfiguredClient builds a client from the [jellyfin] config section.
func NewConfiguredClient(cfg *config.Config) *Client {
	httpClient := &http.Client{Timeout: cfg.Jellyfin.RequestTimeoutDuration()}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}
	return NewClient(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, httpClient)
}

// ListUsers returns every user visible to the API key.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/Users", nil, &users); err != nil {
		return nil, services.Wrap(services.ErrTransport, "jellyfin", "list users", "", err)
	}
	return users, nil
}

// ResolveUserID finds the user whose name equals username exactly.
func (c *Client) ResolveUserID(ctx context.Context, username string) (string, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.Name == username {
			return u.ID, nil
		}
	}
	return "", &UserNotFoundError{Username: username}
}

// ListWatchedItems returns the played Movie and Episode items for userID in
// server order, recursing through every library.
func (c *Client) ListWatchedItems(ctx context.Context, userID string) ([]Item, error) {
	params := url.Values{}
	params.Set("Recursive", "true")
	params.Set("IncludeItemTypes", watchedTypes)
	params.Set("IsPlayed", "true")
	params.Set("Fields", watchedFields)

	var resp itemsResponse
	path := "/Users/" + url.PathEscape(userID) + "/Items"
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		return nil, services.Wrap(services.ErrTransport, "jellyfin", "list watched items", "", err)
	}
	return resp.Items, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", c.baseURL+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     http.MethodGet,
			URL:        c.baseURL + path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/inventory"
	"github.com/osse101/RecipeCraft_Go/internal/toast"
)

const (
	defaultClientTimeout = 10 * time.Second
	defaultMaxRetries    = 3
	defaultRetryDelay    = 500 * time.Millisecond
	apiPrefix            = "/api/v1"
)

// APIClient handles communication with the RecipeCraft core API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: defaultClientTimeout,
		},
		APIKey:     apiKey,
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
	}
}

// APIError is a non-2xx answer from the core API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s", e.Message)
}

// UseItemResult is the answer to an item use
type UseItemResult struct {
	Item     string `json:"item"`
	Consumed bool   `json:"consumed"`
	Teaches  string `json:"teaches,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	Added   int    `json:"added,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			if c.RetryDelay == 0 {
				jitter = 0
			}
			delay := c.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("server error: %d", resp.StatusCode)}
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call performs the request and decodes a 2xx body into out
func (c *APIClient) call(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListRecipes returns the discovered recipes, optionally filtered by category
func (c *APIClient) ListRecipes(category string) ([]domain.RecipeView, error) {
	path := apiPrefix + "/recipes"
	if category != "" {
		params := url.Values{}
		params.Set("category", category)
		path += "?" + params.Encode()
	}

	var recipes []domain.RecipeView
	if err := c.call(http.MethodGet, path, nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns a single recipe by name
func (c *APIClient) GetRecipe(name string) (*domain.RecipeView, error) {
	var recipe domain.RecipeView
	if err := c.call(http.MethodGet, apiPrefix+"/recipes/"+url.PathEscape(name), nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SetDiscovery marks a recipe discovered or undiscovered
func (c *APIClient) SetDiscovery(name string, discovered bool) (string, error) {
	req := map[string]interface{}{
		"name":       name,
		"discovered": discovered,
	}

	var msg messageResponse
	if err := c.call(http.MethodPost, apiPrefix+"/recipes/discover", req, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// StartCraft begins crafting the named recipe
func (c *APIClient) StartCraft(recipe string) (*domain.CraftStatus, error) {
	req := map[string]string{"recipe": recipe}

	var status domain.CraftStatus
	if err := c.call(http.MethodPost, apiPrefix+"/craft", req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CraftStatus returns the current craft state
func (c *APIClient) CraftStatus() (*domain.CraftStatus, error) {
	var status domain.CraftStatus
	if err := c.call(http.MethodGet, apiPrefix+"/craft", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Inventory returns the party's items
func (c *APIClient) Inventory() ([]inventory.Slot, error) {
	var slots []inventory.Slot
	if err := c.call(http.MethodGet, apiPrefix+"/inventory", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// UseItem uses one item from the party inventory
func (c *APIClient) UseItem(itemType domain.ItemType, id int) (*UseItemResult, error) {
	req := map[string]interface{}{
		"type": string(itemType),
		"id":   id,
	}

	var result UseItemResult
	if err := c.call(http.MethodPost, apiPrefix+"/items/use", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Professions returns every tracked profession
func (c *APIClient) Professions() ([]domain.ProfessionInfo, error) {
	var professions []domain.ProfessionInfo
	if err := c.call(http.MethodGet, apiPrefix+"/professions", nil, &professions); err != nil {
		return nil, err
	}
	return professions, nil
}

// Toasts drains pending learn notifications
func (c *APIClient) Toasts() ([]toast.Toast, error) {
	var toasts []toast.Toast
	if err := c.call(http.MethodGet, apiPrefix+"/toasts", nil, &toasts); err != nil {
		return nil, err
	}
	return toasts, nil
}

// Save persists the current recipe state
func (c *APIClient) Save() (string, error) {
	var msg messageResponse
	if err := c.call(http.MethodPost, apiPrefix+"/save", nil, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// Healthy reports whether the core API answers its liveness probe
func (c *APIClient) Healthy() bool {
	resp, err := c.Client.Get(c.BaseURL + "/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

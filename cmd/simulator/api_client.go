package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type Banner struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Link        string `json:"link"`
	Visible     bool   `json:"visible"`
	Countdown   int    `json:"countdown"`
}

// Authenticate signs the account up if it does not exist yet, then logs in.
func (c *APIClient) Authenticate(email, password string) (*LoginResponse, error) {
	creds := map[string]string{"email": email, "password": password}

	resp, err := c.post("/auth/signup", creds, "")
	if err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return nil, fmt.Errorf("signup failed (status %d)", resp.StatusCode)
	}

	resp, err = c.post("/auth/login", creds, "")
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError("login", resp)
	}

	var result LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// CreateBanner creates a banner
func (c *APIClient) CreateBanner(token string, banner Banner) (*Banner, error) {
	resp, err := c.post("/banners", banner, token)
	if err != nil {
		return nil, fmt.Errorf("create banner request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, readError("create banner", resp)
	}

	var created Banner
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &created, nil
}

// SetVisible toggles a banner's visibility
func (c *APIClient) SetVisible(token, bannerID string, visible bool) (*Banner, error) {
	resp, err := c.put("/banners/"+bannerID, map[string]bool{"visible": visible}, token)
	if err != nil {
		return nil, fmt.Errorf("update banner request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError("update banner", resp)
	}

	var updated Banner
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &updated, nil
}

// ListBanners returns every banner
func (c *APIClient) ListBanners() ([]Banner, error) {
	resp, err := c.do(http.MethodGet, "/banners", nil, "")
	if err != nil {
		return nil, fmt.Errorf("list banners request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError("list banners", resp)
	}

	var banners []Banner
	if err := json.NewDecoder(resp.Body).Decode(&banners); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return banners, nil
}

func readError(action string, resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s failed (status %d): %s", action, resp.StatusCode, string(bodyBytes))
}

func (c *APIClient) post(path string, body interface{}, token string) (*http.Response, error) {
	return c.do(http.MethodPost, path, body, token)
}

func (c *APIClient) put(path string, body interface{}, token string) (*http.Response, error) {
	return c.do(http.MethodPut, path, body, token)
}

func (c *APIClient) do(method, path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

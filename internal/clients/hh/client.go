package hh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.hh.ru"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
	token       string
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 15 * time.Second}, baseURL: DefaultBaseURL}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// SetUserAgent sets the HH-User-Agent header hh.ru requires from applications.
func (c *Client) SetUserAgent(userAgent string) {
	c.userAgent = userAgent
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) GetEmployer(ctx context.Context, id string) (Employer, error) {

	apiURL := c.baseURL + "/employers/" + url.PathEscape(id)

	body, err := c.sendRequest(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return Employer{}, err
	}

	var employer Employer
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&employer); err != nil {
		return Employer{}, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return employer, nil
}

func (c *Client) GetEmployerVacancies(ctx context.Context, query VacancyQuery) ([]Vacancy, error) {

	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := c.baseURL + "/vacancies?" + query.ToUrlParams().Encode()

	body, err := c.sendRequest(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}

	var vacanciesResponse getVacanciesResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&vacanciesResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return vacanciesResponse.Vacancies, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("HH-User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}

// Package gateway implements the GatewayClient port over the gateway's HTTP API.
package gateway

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rubengr/gwreports/internal/domain/model"
	"github.com/rubengr/gwreports/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GatewayClient = (*Client)(nil)

// defaultTimeout bounds every gateway request as a safety net alongside
// context cancellation.
const defaultTimeout = 30 * time.Second

const (
	loginPath  = "/login"
	reportPath = "/plugins/testrunner/get_test_report"
	healthPath = "/health_check"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithInsecureTLS disables server certificate verification. Gateways on lab
// networks commonly run with self-signed certificates; verification stays on
// unless this option is given.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.insecure = true
	}
}

// WithAcceptTerms controls whether login sends the accept_terms parameter
// the gateway expects from automated clients. On by default.
func WithAcceptTerms(accept bool) Option {
	return func(c *Client) {
		c.acceptTerms = accept
	}
}

// WithHTTPClient replaces the underlying HTTP client, bypassing the transport
// built from the other options. Intended for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client implements the driven.GatewayClient port using plain net/http.
// The gateway API is two GET endpoints and a health probe; nothing here
// warrants a generated binding.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	insecure    bool
	acceptTerms bool
}

// New creates a gateway client for the given base URL, e.g. "https://gw.local".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		timeout:     defaultTimeout,
		acceptTerms: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
		if c.insecure {
			slog.Warn("gateway TLS certificate verification disabled")
			c.httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	return c
}

// endpoint returns the full URL for path without any query string, so it is
// safe to carry in errors and logs.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// loginResponse is the JSON shape the gateway returns from /login.
// success is a pointer so that its absence can be told apart from false.
type loginResponse struct {
	Success *bool  `json:"success"`
	Token   string `json:"token"`
	Msg     string `json:"msg"`
}

// Login exchanges the credentials for a bearer token via
// GET /login?username=...&password=....
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("password", password)
	if c.acceptTerms {
		query.Set("accept_terms", "True")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(loginPath)+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &driven.ConnectionError{Endpoint: c.endpoint(loginPath), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &driven.AuthenticationError{StatusCode: resp.StatusCode}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", &driven.MalformedResponseError{Reason: fmt.Sprintf("body is not valid JSON: %v", err)}
	}

	if lr.Success != nil && !*lr.Success {
		return "", &driven.AuthenticationError{StatusCode: resp.StatusCode, Message: lr.Msg}
	}

	if lr.Token == "" {
		return "", &driven.MalformedResponseError{Reason: "token missing or empty"}
	}

	slog.Info("logged in to gateway", "user", username)

	return lr.Token, nil
}

// FetchTestReport retrieves the combined test report with the given bearer
// token. The body is returned untouched, whatever its size or content.
func (c *Client) FetchTestReport(ctx context.Context, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(reportPath), nil)
	if err != nil {
		return nil, fmt.Errorf("creating report request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &driven.ConnectionError{Endpoint: c.endpoint(reportPath), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &driven.ReportFetchError{StatusCode: resp.StatusCode, Endpoint: c.endpoint(reportPath)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &driven.ConnectionError{Endpoint: c.endpoint(reportPath), Err: err}
	}

	slog.Info("fetched test report", "bytes", len(body))

	return body, nil
}

// healthResponse is the JSON shape the gateway returns from /health_check.
type healthResponse struct {
	HealthVersion int `json:"health_version"`
	Health        map[string]struct {
		State bool `json:"state"`
	} `json:"health"`
}

// CheckHealth probes the gateway's unauthenticated health endpoint.
func (c *Client) CheckHealth(ctx context.Context) (model.GatewayHealth, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(healthPath), nil)
	if err != nil {
		return model.GatewayHealth{}, fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.GatewayHealth{}, &driven.ConnectionError{Endpoint: c.endpoint(healthPath), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.GatewayHealth{}, fmt.Errorf("health check: unexpected status %d", resp.StatusCode)
	}

	var hr healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return model.GatewayHealth{}, fmt.Errorf("decoding health response: %w", err)
	}

	health := model.GatewayHealth{
		Version:  hr.HealthVersion,
		Services: make(map[string]bool, len(hr.Health)),
	}
	for name, svc := range hr.Health {
		health.Services[name] = svc.State
	}

	return health, nil
}

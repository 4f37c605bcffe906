package qbittorrent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"qbsort/internal/config"
	"qbsort/internal/logging"
)

const (
	userAgent = "qbsort/0.2.0"

	loginPath             = "/api/v2/auth/login"
	versionPath           = "/api/v2/app/version"
	setLocationPath       = "/api/v2/torrents/setLocation"
	setCategoryPath       = "/api/v2/torrents/setCategory"
	setAutoManagementPath = "/api/v2/torrents/setAutoManagement"

	csrfCookieName = "XSRF-TOKEN"
	csrfHeaderName = "X-CSRF-Token"

	// The WebUI reports login failures with status 200 and a different body,
	// so both the status and this literal are checked.
	loginOKBody = "Ok."
)

// Session is the authenticated handle returned by Login. It lives for one
// invocation: the cookie jar backing it belongs to the Client and nothing is
// persisted across runs.
type Session struct {
	csrfToken string
}

// Client speaks the qBittorrent WebUI API. Every request carries the
// configured timeout, the qbsort User-Agent, and, once the login handshake
// has run, the anti-forgery token the server handed out.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// New constructs a Client for the configured WebUI endpoint. The underlying
// HTTP client owns a fresh cookie jar so session state never leaks between
// processes.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.QBittorrent.BaseURL(), "/"),
		username: cfg.QBittorrent.Username,
		password: cfg.QBittorrent.Password,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: time.Duration(cfg.QBittorrent.RequestTimeout) * time.Second,
		},
		logger: logging.NewComponentLogger(logger, "qbittorrent"),
	}, nil
}

// BaseURL returns the WebUI endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login performs the WebUI authentication handshake: a preliminary GET to
// collect the anti-forgery cookie (its status is irrelevant, only transport
// failures matter), then a form-encoded POST of the credentials. Success
// requires status 200 and the literal body "Ok."; there are no retries.
func (c *Client) Login(ctx context.Context) (*Session, error) {
	csrfToken, err := c.fetchCSRFToken(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{
		"username": {c.username},
		"password": {c.password},
	}
	resp, err := c.postForm(ctx, loginPath, form, csrfToken)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return nil, fmt.Errorf("read login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login returned status %d", resp.StatusCode)
	}
	if string(body) != loginOKBody {
		return nil, fmt.Errorf("login rejected: unexpected response %q", strings.TrimSpace(string(body)))
	}

	c.logger.Debug("login complete", logging.Bool("csrf_token", csrfToken != ""))
	return &Session{csrfToken: csrfToken}, nil
}

// fetchCSRFToken primes the cookie jar and extracts the XSRF-TOKEN value,
// which older WebUI builds require echoed back as a header. Absence of the
// cookie is fine; newer servers do not issue one.
func (c *Client) fetchCSRFToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+loginPath, nil)
	if err != nil {
		return "", fmt.Errorf("build handshake request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("handshake request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == csrfCookieName {
			return cookie.Value, nil
		}
	}
	return "", nil
}

// Version reports the qBittorrent application version. It is an
// authenticated read used by preflight checks, never by the apply path.
func (c *Client) Version(ctx context.Context, session *Session) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+versionPath, nil)
	if err != nil {
		return "", fmt.Errorf("build version request: %w", err)
	}
	c.applyHeaders(req, sessionToken(session))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read version response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version returned status %d", resp.StatusCode)
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, csrfToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.applyHeaders(req, csrfToken)
	return c.httpClient.Do(req)
}

func (c *Client) applyHeaders(req *http.Request, csrfToken string) {
	req.Header.Set("User-Agent", userAgent)
	if csrfToken != "" {
		req.Header.Set(csrfHeaderName, csrfToken)
	}
}

func sessionToken(session *Session) string {
	if session == nil {
		return ""
	}
	return session.csrfToken
}

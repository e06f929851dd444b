package maestro

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultBaseURL is used when configuration supplies no backend address.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// Client is the single choke-point for outbound calls to the Maestro backend.
// It attaches the stored bearer credential at dispatch time, normalizes error
// bodies, and performs the global invalidate-and-navigate side effect when any
// response comes back 401.
type Client struct {
	baseURL    string
	http       *http.Client
	creds      CredentialStore
	nav        Navigator
	loginRoute string
	logger     Logger
	clientID   string

	// invalidating dedupes the navigation side effect across concurrent
	// in-flight 401s; it re-arms whenever a new credential is stored.
	invalidating atomic.Bool

	mu             sync.Mutex
	onUnauthorized []func()
}

// NewClient returns a Client wired to cfg and the given credential store.
func NewClient(cfg Config, creds CredentialStore) *Client {
	baseURL := cfg.GetBaseURL()
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		http:       &http.Client{Timeout: cfg.GetHTTPTimeout()},
		creds:      creds,
		loginRoute: cfg.GetLoginRoute(),
		logger:     defLogger{},
		clientID:   InstallID(),
	}

	c.nav = NavigatorFunc(func(path string) {
		c.logger.Info("navigation requested", "path", path)
	})

	return c
}

func (c *Client) WithLogger(logger Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithNavigator sets the capability invoked when a 401 forces the client back
// to the login view.
func (c *Client) WithNavigator(nav Navigator) *Client {
	if nav != nil {
		c.nav = nav
	}
	return c
}

func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// OnUnauthorized registers a hook run after the credential is cleared on a
// 401. The session store uses it to flip itself anonymous; this is the
// feedback edge from the transport layer back into session state.
func (c *Client) OnUnauthorized(fn func()) *Client {
	if fn == nil {
		return c
	}
	c.mu.Lock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
	c.mu.Unlock()
	return c
}

// BaseURL returns the backend address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Credential reads the stored bearer token, empty when absent.
func (c *Client) Credential() (string, error) {
	return c.creds.Load()
}

// StoreCredential persists a new bearer token and re-arms the navigation
// latch so a later 401 can redirect again.
func (c *Client) StoreCredential(token string) error {
	if err := c.creds.Save(token); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to persist credential")
	}
	c.invalidating.Store(false)
	return nil
}

// ClearCredential removes the stored bearer token. Idempotent.
func (c *Client) ClearCredential() error {
	if err := c.creds.Clear(); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to clear credential")
	}
	return nil
}

// Get issues a GET request; query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.PostQuery(ctx, path, nil, body, out)
}

// PostQuery issues a POST request with a JSON body and query parameters.
func (c *Client) PostQuery(ctx context.Context, path string, query url.Values, body, out any) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, query, "application/json", reader, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, "application/json", reader, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, out)
}

// PostForm issues a POST request encoded as application/x-www-form-urlencoded.
// The login endpoint is the one consumer; the encoding is a backend contract.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, nil, "application/x-www-form-urlencoded", body, out)
}

// PostMultipart issues a POST request with a single file part plus optional
// string fields, used by the image analysis endpoint.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to encode form field")
		}
	}

	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to create file part")
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to copy file contents")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to finalize multipart body")
	}

	return c.do(ctx, http.MethodPost, path, nil, w.FormDataContentType(), buf, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to build request")
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}

	token, err := c.creds.Load()
	if err != nil {
		c.logger.Warn("credential load failed, sending unauthenticated", "error", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return normalizeTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalizeTransportError(err)
	}

	c.logger.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate()
		return normalizeAPIError(resp.StatusCode, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to decode response")
		}
	}

	return nil
}

// invalidate is the 401 side effect: clear the credential, notify session
// hooks, and navigate to the login route at most once until a new credential
// is stored. The caller still receives the original failure afterwards.
func (c *Client) invalidate() {
	if err := c.creds.Clear(); err != nil {
		c.logger.Error("failed to clear credential after 401", "error", err)
	}

	c.mu.Lock()
	hooks := make([]func(), len(c.onUnauthorized))
	copy(hooks, c.onUnauthorized)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	if c.invalidating.CompareAndSwap(false, true) {
		c.logger.Info("session invalidated by 401, navigating to login", "path", c.loginRoute)
		c.nav.Navigate(c.loginRoute)
	}
}

func jsonBody(v any) (io.Reader, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to encode request body")
	}
	return bytes.NewReader(data), nil
}

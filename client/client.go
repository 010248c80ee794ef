// Package client is the Go client for the show-desk API. It carries the
// pieces the dashboard owns: the remote data client, the durable token
// store, the session/role gate, the multi-section show form, and the
// two-step delete flow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/evergreenmedia/showdesk/internal/adapter"
)

// Client issues authenticated requests against the API. Every method is a
// plain request/response mapping: no retries, no caching, no batching.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	token   string
}

// New builds a client for the given base URL. The stored token, if any, is
// loaded immediately so a previous session can resume.
func New(baseURL string, store TokenStore) *Client {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
	}
	c.token = store.Load()
	return c
}

// Token returns the bearer token currently in use, empty when logged out.
func (c *Client) Token() string { return c.token }

// SetToken installs a token and persists it.
func (c *Client) SetToken(tok string) {
	c.token = tok
	c.store.Save(tok)
}

// ClearToken forgets the token in memory and in the durable store.
func (c *Client) ClearToken() {
	c.token = ""
	c.store.Clear()
}

// APIError is the uniform error for any non-2xx response. Message prefers
// the server's detail text when the body carries one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// loginResp is the body of a successful POST /login.
type loginResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserProfile is the authenticated account as /users/me reports it.
type UserProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// Login exchanges credentials for a bearer token and installs it. The
// username field carries the account email.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out loginResp
	if err := c.send(req, &out); err != nil {
		return err
	}
	c.SetToken(out.AccessToken)
	return nil
}

// Me fetches the current account profile.
func (c *Client) Me(ctx context.Context) (UserProfile, error) {
	var out UserProfile
	err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &out)
	return out, err
}

// ListShows returns the caller's role-scoped show set.
func (c *Client) ListShows(ctx context.Context) ([]adapter.ShowWire, error) {
	var out []adapter.ShowWire
	err := c.doJSON(ctx, http.MethodGet, "/podcasts", nil, &out)
	return out, err
}

// FilterShows runs the server-side filter conjunction. Params use the wire
// field names (title, media_type, tentpole, ...).
func (c *Client) FilterShows(ctx context.Context, params url.Values) ([]adapter.ShowWire, error) {
	path := "/podcasts/filter"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []adapter.ShowWire
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// GetShow fetches one show by id.
func (c *Client) GetShow(ctx context.Context, id string) (adapter.ShowWire, error) {
	var out adapter.ShowWire
	err := c.doJSON(ctx, http.MethodGet, "/podcasts/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateShow persists a new show and returns the stored record.
func (c *Client) CreateShow(ctx context.Context, w adapter.ShowWire) (adapter.ShowWire, error) {
	var out adapter.ShowWire
	err := c.doJSON(ctx, http.MethodPost, "/podcasts", w, &out)
	return out, err
}

// UpdateShow sends a partial update; only fields present in the patch
// overwrite stored values.
func (c *Client) UpdateShow(ctx context.Context, id string, p adapter.ShowPatch) (adapter.ShowWire, error) {
	var out adapter.ShowWire
	err := c.doJSON(ctx, http.MethodPut, "/podcasts/"+url.PathEscape(id), p, &out)
	return out, err
}

// DeleteShow removes a show. Interactive callers should go through
// DeleteFlow, which enforces the double confirmation.
func (c *Client) DeleteShow(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/podcasts/"+url.PathEscape(id), nil, nil)
}

// MyShows returns the shows attached to the calling partner account.
func (c *Client) MyShows(ctx context.Context) ([]adapter.ShowWire, error) {
	var out []adapter.ShowWire
	err := c.doJSON(ctx, http.MethodGet, "/partners/me/podcasts", nil, &out)
	return out, err
}

// PartnerShows returns the shows attached to the named partner (admin only).
func (c *Client) PartnerShows(ctx context.Context, partnerID string) ([]adapter.ShowWire, error) {
	var out []adapter.ShowWire
	err := c.doJSON(ctx, http.MethodGet, "/partners/"+url.PathEscape(partnerID)+"/podcasts", nil, &out)
	return out, err
}

// CreatePartner registers a partner account (admin only).
func (c *Client) CreatePartner(ctx context.Context, name, email, password string) (UserProfile, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out UserProfile
	err := c.doJSON(ctx, http.MethodPost, "/partners", body, &out)
	return out, err
}

// SetPartnerPassword resets a partner account password (admin only).
func (c *Client) SetPartnerPassword(ctx context.Context, partnerID, password string) error {
	body := map[string]string{"password": password}
	return c.doJSON(ctx, http.MethodPut, "/partners/"+url.PathEscape(partnerID)+"/password", body, nil)
}

// DeleteUser removes an account (admin only).
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), nil, nil)
}

// AttachPartner grants a partner view access to a show (admin only).
func (c *Client) AttachPartner(ctx context.Context, showID, partnerID string) error {
	return c.doJSON(ctx, http.MethodPost,
		"/podcasts/"+url.PathEscape(showID)+"/partners/"+url.PathEscape(partnerID), nil, nil)
}

// DetachPartner revokes a partner's view access to a show (admin only).
func (c *Client) DetachPartner(ctx context.Context, showID, partnerID string) error {
	return c.doJSON(ctx, http.MethodDelete,
		"/podcasts/"+url.PathEscape(showID)+"/partners/"+url.PathEscape(partnerID), nil, nil)
}

// LedgerEntry is the wire form of one revenue transaction.
type LedgerEntry struct {
	ID            string   `json:"id"`
	ShowID        string   `json:"show_id"`
	Agency        string   `json:"agency"`
	Advertiser    string   `json:"advertiser"`
	Campaign      string   `json:"campaign"`
	Dates         string   `json:"dates"`
	TotalNet      float64  `json:"total_net"`
	EvergreenComp float64  `json:"evergreen_comp"`
	PartnerComp   float64  `json:"partner_comp"`
	AmountPaid    *float64 `json:"amount_paid"`
	DatePaid      *string  `json:"date_paid"`
	Notes         string   `json:"notes"`
	CreatedAt     string   `json:"created_at"`
}

// LedgerSummary is the aggregate fold the summary endpoint returns.
type LedgerSummary struct {
	TotalNet      float64 `json:"total_net"`
	EvergreenComp float64 `json:"evergreen_comp"`
	PartnerComp   float64 `json:"partner_comp"`
	AmountPaid    float64 `json:"amount_paid"`
	Payments      int     `json:"payments"`
	EvergreenPct  float64 `json:"evergreen_pct"`
	PartnerPct    float64 `json:"partner_pct"`
}

// ListLedger returns the role-scoped ledger, optionally narrowed by
// show_id, dates, and agency params.
func (c *Client) ListLedger(ctx context.Context, params url.Values) ([]LedgerEntry, error) {
	path := "/ledger"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []LedgerEntry
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// LedgerTotals returns the aggregate over the same filtered set ListLedger
// would return.
func (c *Client) LedgerTotals(ctx context.Context, params url.Values) (LedgerSummary, error) {
	path := "/ledger/summary"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out LedgerSummary
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ExportCSV downloads the CSV export, optionally restricted to a selection
// of ids.
func (c *Client) ExportCSV(ctx context.Context, ids []string) (string, error) {
	path := "/podcasts/export"
	if len(ids) > 0 {
		path += "?ids=" + url.QueryEscape(strings.Join(ids, ","))
	}
	return c.doText(ctx, path)
}

// ImportTemplate downloads the import template CSV.
func (c *Client) ImportTemplate(ctx context.Context) (string, error) {
	return c.doText(ctx, "/podcasts/import/template")
}

// ImportCSV uploads a CSV and returns the number of imported rows.
func (c *Client) ImportCSV(ctx context.Context, content string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/podcasts/import",
		strings.NewReader(content))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "text/csv")
	var out struct {
		Imported int `json:"imported"`
	}
	if err := c.send(req, &out); err != nil {
		return 0, err
	}
	return out.Imported, nil
}

// doJSON performs one JSON request. A nil out means the response body is
// discarded; a 204 always reads as an empty success.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) doText(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apiError(resp.StatusCode, b)
	}
	return string(b), nil
}

func (c *Client) send(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, b)
	}
	if out == nil || len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

// apiError extracts the server's detail text when the body carries one,
// falling back to a generic status message.
func apiError(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &APIError{Status: status, Message: payload.Detail}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("HTTP error! status: %d", status)}
}

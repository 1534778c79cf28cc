// Package sharepoint implements the folder-provisioning client for the
// external file store. All calls are best-effort from the caller's
// point of view: provisioning failures degrade to "no folder path
// recorded" and never interrupt the primary CRUD flow.
package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const requestTimeout = 15 * time.Second

// FolderEnsurer is the interface the provisioning worker depends on.
// Implementations must be idempotent: ensuring an existing folder
// returns it without error.
type FolderEnsurer interface {
	EnsureFolder(ctx context.Context, path string) (string, error)
}

// Client talks to the folder-provisioning HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	companyID  string
}

// Options holds parameters for creating a Client.
type Options struct {
	BaseURL      string
	Tenant       string
	ClientID     string
	ClientSecret string
	CompanyID    string
	// For testing: inject an HTTP client instead of the OAuth2 one.
	HTTPClient *http.Client
}

// New creates a Client. Unless a test client is injected, requests are
// authenticated with an OAuth2 client-credentials token for the tenant.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("sharepoint: base URL is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		if opts.ClientID == "" || opts.ClientSecret == "" {
			return nil, fmt.Errorf("sharepoint: client credentials are required")
		}
		cc := clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", opts.Tenant),
			Scopes:       []string{opts.BaseURL + "/.default"},
		}
		hc = cc.Client(context.Background())
	}
	hc.Timeout = requestTimeout

	return &Client{
		httpClient: hc,
		baseURL:    opts.BaseURL,
		companyID:  opts.CompanyID,
	}, nil
}

// folderResponse is the wire shape for folder lookups and creates.
type folderResponse struct {
	ServerRelativeURL string `json:"serverRelativeUrl"`
}

// EnsureFolder locates or creates the folder at path and returns its
// server-relative URL. Ensuring an existing folder is a no-op.
func (c *Client) EnsureFolder(ctx context.Context, path string) (string, error) {
	got, err := c.getFolder(ctx, path)
	if err == nil {
		return got, nil
	}

	created, err := c.createFolder(ctx, path)
	if err != nil {
		return "", err
	}
	return created, nil
}

func (c *Client) getFolder(ctx context.Context, path string) (string, error) {
	u := fmt.Sprintf("%s/folders?path=%s&company=%s",
		c.baseURL, url.QueryEscape(path), url.QueryEscape(c.companyID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("sharepoint: get folder: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sharepoint: get folder %q: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("sharepoint: get folder %q: status %d", path, resp.StatusCode)
	}

	var fr folderResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return "", fmt.Errorf("sharepoint: decode folder %q: %w", path, err)
	}
	if fr.ServerRelativeURL == "" {
		fr.ServerRelativeURL = path
	}
	return fr.ServerRelativeURL, nil
}

func (c *Client) createFolder(ctx context.Context, path string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"path":    path,
		"company": c.companyID,
		"role":    "rfq",
	})
	if err != nil {
		return "", fmt.Errorf("sharepoint: marshal create: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/folders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("sharepoint: create folder: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sharepoint: create folder %q: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var fr folderResponse
		if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
			return "", fmt.Errorf("sharepoint: decode create %q: %w", path, err)
		}
		if fr.ServerRelativeURL == "" {
			fr.ServerRelativeURL = path
		}
		return fr.ServerRelativeURL, nil
	case http.StatusConflict:
		// Someone else created it between our get and create.
		io.Copy(io.Discard, resp.Body)
		return path, nil
	default:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("sharepoint: create folder %q: status %d", path, resp.StatusCode)
	}
}

// Ping checks that the API answers at all, for the doctor command.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("sharepoint: ping: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sharepoint: ping: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 500 {
		return fmt.Errorf("sharepoint: ping: status %d", resp.StatusCode)
	}
	return nil
}

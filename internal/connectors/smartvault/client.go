package smartvault

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the SmartVault REST host.
const DefaultBaseURL = "https://rest.smartvault.com"

// APIError classifies any non-2xx response or transport failure.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("smartvault: request failed: %s", e.Body)
	}
	return fmt.Sprintf("smartvault: unexpected status %d: %s", e.Status, e.Body)
}

// Client talks to the SmartVault REST API.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// ExchangeCode trades an authorization code for tokens. SmartVault
// answers these endpoints with XML.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, code string) (*Token, error) {
	payload := map[string]any{
		"grant_type":    "authorization_code",
		"code":          code,
		"client_id":     clientID,
		"client_secret": clientSecret,
	}
	return c.postToken(ctx, "/auto/auth/dtoken/2", payload)
}

// Refresh trades a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, clientSecret, refreshToken string) (*Token, error) {
	payload := map[string]any{
		"grant_type":    "refresh_token",
		"client_secret": clientSecret,
		"refresh_token": refreshToken,
	}
	return c.postToken(ctx, "/auto/auth/rtoken/2", payload)
}

func (c *Client) postToken(ctx context.Context, path string, payload map[string]any) (*Token, error) {
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Body: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var envelope tokenEnvelope
	if err := xml.Unmarshal(respBody, &envelope); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("invalid XML token response: %v", err)}
	}
	if envelope.Message.AccessToken == "" {
		return nil, &APIError{Status: resp.StatusCode, Body: "token response missing message body"}
	}
	return &envelope.Message, nil
}

// FirmAccountID looks up the id of the first firm entity visible to the
// token. Client creation happens under this account.
func (c *Client) FirmAccountID(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/nodes/entity/SmartVault.Accounting.Firm", nil)
	if err != nil {
		return "", &APIError{Body: err.Error()}
	}
	c.setAuthHeaders(req, accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &APIError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var listing firmListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return "", &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("decode firm listing: %v", err)}
	}
	if len(listing.Entities) == 0 {
		return "", &APIError{Status: resp.StatusCode, Body: "no firm entities found for account"}
	}
	return listing.Entities[0].ID, nil
}

// CreateFirmClient creates an individual client under the firm account.
// The API answers the creation PUT with a JSON node description.
func (c *Client) CreateFirmClient(ctx context.Context, accessToken, accountID string, entity ClientEntity) (map[string]any, error) {
	body, err := json.Marshal(entity)
	if err != nil {
		return nil, &APIError{Body: err.Error()}
	}

	u := fmt.Sprintf("%s/nodes/entity/SmartVault.Accounting.Firm/%s/SmartVault.Accounting.FirmClient",
		c.baseURL, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Body: err.Error()}
	}
	c.setAuthHeaders(req, accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("decode create response: %v", err)}
	}
	return result, nil
}

func (c *Client) setAuthHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
}

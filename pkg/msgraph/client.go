// Package msgraph sends mail through the Microsoft Graph API using
// application (client-credentials) permissions.
package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	defaultScope   = "https://graph.microsoft.com/.default"
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

// Client sends mail on behalf of a configured sender mailbox.
type Client interface {
	SendMail(ctx context.Context, recipient, subject, htmlBody string) error
}

// TokenError indicates the client-credentials token exchange failed. Callers
// distinguish it from a rejected send via errors.As.
type TokenError struct {
	Err error
}

func (e *TokenError) Error() string {
	return "msgraph: token exchange failed: " + e.Err.Error()
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Credentials holds the service principal used for the token exchange.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the Graph API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithTokenURL overrides the identity provider token endpoint.
func WithTokenURL(url string) Option {
	return func(c *httpClient) {
		c.tokenURL = url
	}
}

// WithHTTPClient overrides the token-authenticated http.Client. Intended for
// tests; the oauth2 transport is skipped entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	sender   string
	baseURL  string
	tokenURL string
	http     *http.Client
}

// NewClient creates a Graph mail client that sends as the given mailbox.
// The returned client caches and refreshes its access token internally.
func NewClient(creds Credentials, sender string, opts ...Option) Client {
	c := &httpClient{
		sender:   sender,
		baseURL:  defaultBaseURL,
		tokenURL: fmt.Sprintf(tokenURLFormat, creds.TenantID),
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		cc := &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     c.tokenURL,
			Scopes:       []string{defaultScope},
		}
		base := &http.Client{Timeout: 30 * time.Second}
		c.http = cc.Client(context.WithValue(context.Background(), oauth2.HTTPClient, base))
	}
	return c
}

// sendMailRequest is the Graph sendMail payload.
type sendMailRequest struct {
	Message message `json:"message"`
}

type message struct {
	Subject      string      `json:"subject"`
	Body         itemBody    `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

func (c *httpClient) SendMail(ctx context.Context, to, subject, htmlBody string) error {
	payload := sendMailRequest{
		Message: message{
			Subject: subject,
			Body: itemBody{
				ContentType: "HTML",
				Content:     htmlBody,
			},
			ToRecipients: []recipient{
				{EmailAddress: emailAddress{Address: to}},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "msgraph: marshal sendMail")
	}

	url := fmt.Sprintf("%s/users/%s/sendMail", c.baseURL, c.sender)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "msgraph: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return &TokenError{Err: retrieveErr}
		}
		return eris.Wrap(err, "msgraph: send request")
	}
	defer resp.Body.Close()

	// Graph answers 202 Accepted on success.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return eris.Errorf("msgraph: sendMail rejected with status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

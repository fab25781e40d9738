// Package groups talks to the mailing-list service that hosts the
// club's group addresses. Members are added on join/migration and
// removed on terminal expiry.
package groups

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clubstack/membership-backend-go/internal/config"
)

// Directory defines the group-membership transport the engine calls
type Directory interface {
	Add(ctx context.Context, memberEmail, groupEmail string) error
	Remove(ctx context.Context, memberEmail, groupEmail string) error
}

// APIError represents a mailing-list service error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("groups API error [%d]: %s", e.StatusCode, e.Message)
}

// Client is a REST client for the mailing-list service
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a mailing-list service client
func NewClient(cfg config.GroupsConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type membershipRequest struct {
	MemberEmail string `json:"member_email"`
}

// Add subscribes a member to a group address
func (c *Client) Add(ctx context.Context, memberEmail, groupEmail string) error {
	url := fmt.Sprintf("%s/groups/%s/members", c.baseURL, groupEmail)
	return c.do(ctx, http.MethodPost, url, membershipRequest{MemberEmail: memberEmail})
}

// Remove unsubscribes a member from a group address
func (c *Client) Remove(ctx context.Context, memberEmail, groupEmail string) error {
	url := fmt.Sprintf("%s/groups/%s/members/%s", c.baseURL, groupEmail, memberEmail)
	return c.do(ctx, http.MethodDelete, url, nil)
}

func (c *Client) do(ctx context.Context, method, url string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call groups API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}
	return nil
}

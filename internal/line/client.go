package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAPIBase is the platform's messaging API host.
	DefaultAPIBase = "https://api.line.me"
	// DefaultClientTimeout bounds one outbound platform call.
	DefaultClientTimeout = 10 * time.Second
)

// Client talks to the platform's messaging API: replying to events and
// looking up user profiles. All calls carry the channel access token as a
// bearer credential and run with a bounded timeout.
type Client struct {
	baseURL      string
	channelToken string
	client       *http.Client
}

// NewClient builds a platform client. baseURL is overridable so tests can
// point it at a local server; empty means the production host.
func NewClient(baseURL, channelToken string, timeout time.Duration) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultAPIBase
	}
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	return &Client{
		baseURL:      base,
		channelToken: strings.TrimSpace(channelToken),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Profile is the platform's user profile record.
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl,omitempty"`
}

type replyRequest struct {
	ReplyToken string         `json:"replyToken"`
	Messages   []replyMessage `json:"messages"`
}

type replyMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reply sends one text message back to the platform using the event's reply
// token. The token authorizes exactly one reply to one inbound event.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if c.channelToken == "" {
		return fmt.Errorf("channel access token is not configured")
	}
	if strings.TrimSpace(replyToken) == "" {
		return fmt.Errorf("reply token is required")
	}

	body, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages: []replyMessage{
			{Type: "text", Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal reply request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/bot/message/reply", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reply endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// GetProfile fetches one user profile by platform user id.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.channelToken == "" {
		return nil, fmt.Errorf("channel access token is not configured")
	}
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return nil, fmt.Errorf("user id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/bot/profile/"+trimmed, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("profile endpoint status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &profile, nil
}

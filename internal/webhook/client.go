package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.line.me"

// Message is one outbound reply message in the platform's wire shape,
// either a text message or a flex card.
type Message map[string]any

func TextMessage(text string) Message {
	return Message{"type": "text", "text": text}
}

func FlexMessage(altText string, contents map[string]any) Message {
	return Message{"type": "flex", "altText": altText, "contents": contents}
}

// ReplyClient sends reply messages through the chat platform's reply
// endpoint.
type ReplyClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewReplyClient(token string) *ReplyClient {
	return &ReplyClient{
		baseURL: defaultAPIBase,
		token:   token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Reply answers one webhook event. Reply tokens are single-use, so at
// most five messages go out in one call per the platform contract.
func (c *ReplyClient) Reply(ctx context.Context, replyToken string, messages []Message) error {
	payload := struct {
		ReplyToken string    `json:"replyToken"`
		Messages   []Message `json:"messages"`
	}{
		ReplyToken: replyToken,
		Messages:   messages,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/bot/message/reply", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("reply rejected: %s: %s", resp.Status, body)
	}
	return nil
}

package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Webhook relays the message as JSON to a configured endpoint. Anything but
// HTTP 200 is a failure.
type Webhook struct {
	url         string
	countryCode string
	client      *http.Client
}

type webhookPayload struct {
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewWebhook(url, countryCode string, timeout time.Duration) *Webhook {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		url:         url,
		countryCode: countryCode,
		client:      &http.Client{Timeout: timeout},
	}
}

func (w *Webhook) Name() string {
	return "webhook"
}

func (w *Webhook) Send(ctx context.Context, phone, message string) Result {
	payload, err := json.Marshal(webhookPayload{
		Phone:     Normalize(phone, w.countryCode),
		Message:   message,
		Timestamp: time.Now(),
	})
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("webhook payload error: %v", err), Method: w.Name()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("webhook request error: %v", err), Method: w.Name()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("webhook transport error: %v", err), Method: w.Name()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{Success: false, Detail: fmt.Sprintf("webhook error: %s %s", resp.Status, body), Method: w.Name()}
	}

	return Result{Success: true, Detail: "delivered to webhook endpoint", Method: w.Name()}
}

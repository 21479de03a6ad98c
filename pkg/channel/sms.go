package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/citasalud/notifier/config"
	"github.com/citasalud/notifier/internal/entity"
)

// SMS delivers through a ClickSend-style REST gateway. Both credentials are
// required; a blank one fails the attempt immediately without touching the
// network.
type SMS struct {
	apiURL      string
	username    string
	apiKey      string
	sender      string
	countryCode string
	client      *http.Client
}

type smsMessage struct {
	Source string `json:"source"`
	Body   string `json:"body"`
	To     string `json:"to"`
}

type smsPayload struct {
	Messages []smsMessage `json:"messages"`
}

func NewSMS(cfg config.SMSConfig, countryCode string) *SMS {
	return &SMS{
		apiURL:      cfg.APIURL,
		username:    cfg.Username,
		apiKey:      cfg.APIKey,
		sender:      cfg.Sender,
		countryCode: countryCode,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *SMS) Name() string {
	return "sms"
}

func (s *SMS) Send(ctx context.Context, phone, message string) Result {
	if s.username == "" || s.apiKey == "" {
		return Result{Success: false, Detail: entity.ErrMissingCredentials.Error(), Method: s.Name()}
	}

	payload, err := json.Marshal(smsPayload{
		Messages: []smsMessage{{Source: s.sender, Body: message, To: Normalize(phone, s.countryCode)}},
	})
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("sms payload error: %v", err), Method: s.Name()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("sms request error: %v", err), Method: s.Name()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.username, s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("sms transport error: %v", err), Method: s.Name()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		// provider-level rejection, return the error body as detail
		return Result{Success: false, Detail: fmt.Sprintf("sms api error: %s %s", resp.Status, body), Method: s.Name()}
	}

	return Result{Success: true, Detail: fmt.Sprintf("sms accepted: %s", body), Method: s.Name()}
}

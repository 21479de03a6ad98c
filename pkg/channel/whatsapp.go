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

// WhatsApp delivers through a locally running WhatsApp bridge session.
// It is the direct-automation channel: availability depends on the bridge
// process being up next to the service.
type WhatsApp struct {
	bridgeURL   string
	countryCode string
	client      *http.Client
}

func NewWhatsApp(bridgeURL, countryCode string, timeout time.Duration) *WhatsApp {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &WhatsApp{
		bridgeURL:   bridgeURL,
		countryCode: countryCode,
		client:      &http.Client{Timeout: timeout},
	}
}

func (w *WhatsApp) Name() string {
	return "whatsapp"
}

// Available probes the bridge session endpoint. Used once per run by the
// auto-selection factory.
func (w *WhatsApp) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.bridgeURL+"/session/status", nil)
	if err != nil {
		return false
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (w *WhatsApp) Send(ctx context.Context, phone, message string) Result {
	payload, err := json.Marshal(map[string]string{
		"phone":   Normalize(phone, w.countryCode),
		"message": message,
	})
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("whatsapp payload error: %v", err), Method: w.Name()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.bridgeURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("whatsapp request error: %v", err), Method: w.Name()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("whatsapp session error: %v", err), Method: w.Name()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{Success: false, Detail: fmt.Sprintf("whatsapp bridge error: %s %s", resp.Status, body), Method: w.Name()}
	}

	return Result{Success: true, Detail: "message delivered over whatsapp", Method: w.Name()}
}

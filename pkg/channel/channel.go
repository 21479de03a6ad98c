package channel

import (
	"context"

	"github.com/citasalud/notifier/config"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of one delivery attempt. Detail carries a
// human-readable provider response, generated link or error text.
type Result struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
	Method  string `json:"method"`
}

// Channel is a concrete outbound delivery mechanism. Implementations must
// never panic on bad phone input; they report failure through Result.
type Channel interface {
	Name() string
	Send(ctx context.Context, phone, message string) Result
}

// New builds the channel for the configured mode. Selection happens once per
// run: in auto mode the WhatsApp bridge is probed a single time and link
// generation is used as the fallback, so one batch never mixes channels.
func New(ctx context.Context, cfg *config.Config) Channel {
	cc := cfg.App.CountryCode

	var selected Channel
	auto := false
	switch cfg.Channels.Mode {
	case "whatsapp":
		selected = NewWhatsApp(cfg.Channels.WhatsApp.BridgeURL, cc, cfg.Channels.WhatsApp.Timeout)
	case "sms":
		selected = NewSMS(cfg.Channels.SMS, cc)
	case "link":
		selected = NewLink(cc)
	case "webhook":
		selected = NewWebhook(cfg.Channels.Webhook.URL, cc, cfg.Channels.Webhook.Timeout)
	case "demo":
		selected = NewDemo()
	default: // auto
		auto = true
		wa := NewWhatsApp(cfg.Channels.WhatsApp.BridgeURL, cc, cfg.Channels.WhatsApp.Timeout)
		if wa.Available(ctx) {
			selected = wa
		} else {
			logrus.Warn("whatsapp bridge unreachable, falling back to link generation")
			selected = NewLink(cc)
		}
	}

	// the SMS safety net only applies to auto selection; an explicitly
	// chosen channel is used as-is
	if auto && cfg.Channels.SMS.Fallback {
		selected = WithSMSFallback(selected, NewSMS(cfg.Channels.SMS, cc))
	}

	logrus.Infof("delivery channel selected: %s", selected.Name())
	return selected
}

// WithSMSFallback wraps a channel so that a failed attempt is retried once
// through the SMS gateway. The result reports the method that delivered.
func WithSMSFallback(primary, sms Channel) Channel {
	return &fallbackChannel{primary: primary, sms: sms}
}

type fallbackChannel struct {
	primary Channel
	sms     Channel
}

func (f *fallbackChannel) Name() string {
	return f.primary.Name()
}

func (f *fallbackChannel) Send(ctx context.Context, phone, message string) Result {
	res := f.primary.Send(ctx, phone, message)
	if res.Success {
		return res
	}

	logrus.Warnf("%s delivery failed (%s), retrying over sms", f.primary.Name(), res.Detail)
	return f.sms.Send(ctx, phone, message)
}

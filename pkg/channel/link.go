package channel

import (
	"context"
	"net/url"
	"strings"
)

// Link builds a wa.me deep link encoding the message, to be opened manually.
// This is construction, not transmission, so it never fails.
type Link struct {
	countryCode string
}

func NewLink(countryCode string) *Link {
	return &Link{countryCode: countryCode}
}

func (l *Link) Name() string {
	return "link"
}

func (l *Link) Send(_ context.Context, phone, message string) Result {
	normalized := strings.TrimPrefix(Normalize(phone, l.countryCode), "+")
	link := "https://wa.me/" + normalized + "?text=" + url.QueryEscape(message)

	return Result{Success: true, Detail: link, Method: l.Name()}
}

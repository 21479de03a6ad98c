package channel

import "strings"

// Normalize applies the clinic phone convention shared by every channel
// that transmits: a number without "+" gets the default country code, a
// number already starting with the bare country digits only gets the "+".
func Normalize(phone, countryCode string) string {
	p := strings.TrimSpace(phone)
	if p == "" || strings.HasPrefix(p, "+") {
		return p
	}

	bare := strings.TrimPrefix(countryCode, "+")
	if strings.HasPrefix(p, bare) && len(p) > len(bare) {
		return "+" + p
	}
	return countryCode + p
}

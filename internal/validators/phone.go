package validators

import "strings"

// NormalizePhone keeps the digits of a Brazilian phone number. It accepts
// 10 or 11 digits (DDD + number), optionally prefixed by the country code 55.
func NormalizePhone(phone string) (string, bool) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) >= 12 && strings.HasPrefix(digits, "55") {
		digits = digits[2:]
	}
	if len(digits) != 10 && len(digits) != 11 {
		return "", false
	}
	return digits, true
}

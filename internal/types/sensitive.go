package types

import "strings"

// secretPatterns are name fragments that mark a variable as worth
// masking in shelter output regardless of how its value classifies.
var secretPatterns = []string{
	"secret", "key", "token", "password", "pass", "pwd",
	"auth", "credential", "cred", "private",
	"cert", "certificate", "api_key", "apikey",
	"client_secret", "oauth", "bearer", "jwt",
	"session", "cookie", "salt", "signature", "signing",
}

// Sensitive reports whether a variable should be sheltered, judged by
// its name and its classified type tag. Connection strings embed
// credentials, so database_url values are always sensitive.
func Sensitive(name, tag string) bool {
	if tag == TypeDatabaseURL {
		return true
	}
	lower := strings.ToLower(name)
	for _, pattern := range secretPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Mask shelters a value for display: the first keep characters stay,
// the rest become asterisks. Short values mask entirely.
func Mask(value string, keep int) string {
	if keep < 0 {
		keep = 0
	}
	runes := []rune(value)
	if len(runes) <= keep {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:keep]) + strings.Repeat("*", len(runes)-keep)
}

// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address. All store lookups and
// writes go through this so the same address can never appear twice
// under different casings.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// RegistrationNumber uppercases and trims a registration number.
func RegistrationNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

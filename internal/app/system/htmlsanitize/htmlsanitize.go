// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy is built once at init; bluemonday policies are safe for
// concurrent use after construction.
var policy = bluemonday.UGCPolicy()

// Sanitize strips unsafe HTML from user-generated content such as
// profile bios. Basic formatting tags survive, scripts and event
// handlers do not.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

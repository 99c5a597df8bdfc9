// Package htmltext converts HTML fragments from the remote helpdesk into
// plain text suitable for storage and display.
package htmltext

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// Strip removes all markup from s and collapses runs of whitespace into a
// single space. Malformed markup never fails; bluemonday sanitizes whatever
// it can and the remainder passes through as text.
func Strip(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

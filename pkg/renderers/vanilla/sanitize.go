package vanilla

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// plainText strips markup from author-supplied copy (labels, placeholders,
// messages). The template escapes on output, so entities produced by the
// policy are decoded here to avoid double escaping.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textPolicy().Sanitize(trimmed)))
}

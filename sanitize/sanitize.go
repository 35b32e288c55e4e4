// server/sanitize/sanitize.go
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is safe for concurrent use once built. The strict policy keeps no
// elements, so its output never carries an attribute value.
var policy = bluemonday.StrictPolicy()

// unescape restores the text entities the policy emits for characters that
// are harmless once no element survives. &lt; and &gt; are kept.
var unescape = strings.NewReplacer("&amp;", "&", "&#34;", `"`, "&#39;", "'")

// Text neutralizes markup in user supplied free text before it is written to
// a response. Script and style elements are dropped together with their
// content, every other tag is stripped, and a bare < or > comes back as an
// entity. Ampersands and quotes come back as written.
func Text(s string) string {
	return unescape.Replace(policy.Sanitize(s))
}

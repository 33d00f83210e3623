// package richtext converts untrusted upstream descriptions into safe HTML.
//
// Backends deliver video descriptions either as pre-linkified HTML or as
// plain text. Both paths end in the same bluemonday sanitizer; plain text is
// run through blackfriday first so bare URLs and light formatting survive.
package richtext

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var (
	bfRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank,
	})
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.Autolink | blackfriday.HardLineBreak

	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Render converts a description into sanitized HTML, picking the HTML or
// plain-text path based on the input.
func Render(source string) string {
	if source == "" {
		return ""
	}
	if looksLikeHTML(source) {
		return SanitizeHTML(source)
	}
	return RenderPlain(source)
}

// SanitizeHTML strips everything outside the UGC policy from upstream HTML.
func SanitizeHTML(source string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(source))
}

// RenderPlain renders a plain-text description to sanitized HTML with
// autolinked URLs and preserved line breaks.
func RenderPlain(source string) string {
	unsafe := blackfriday.Run([]byte(source),
		blackfriday.WithRenderer(bfRenderer),
		blackfriday.WithExtensions(bfExtensions),
	)
	return string(bytes.TrimSpace(ugcPolicy.SanitizeBytes(unsafe)))
}

// PlainText strips all markup, for compact previews and meta descriptions.
func PlainText(source string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(source))
}

func looksLikeHTML(s string) bool {
	for _, marker := range []string{"<a ", "<a\n", "<br", "<p>", "<p ", "</span>", "&nbsp;"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// package static embeds the placeholder assets substituted for missing
// thumbnails and avatars.
package static

import "embed"

//go:embed placeholder-thumbnail.svg placeholder-avatar.svg
var FS embed.FS

package streams

import (
	"strings"

	"github.com/VimVoyager/opentube-frontend/internal/api"
)

// Kind distinguishes video and audio renditions where the descriptor alone
// is ambiguous.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// ContainerMime returns the container MIME type of a rendition (for example
// "video/mp4"), inferring it from the format or codec when the descriptor
// carries no MIME type of its own.
func ContainerMime(s api.Stream, kind Kind) string {
	if mt := strings.TrimSpace(s.MimeType); mt != "" {
		// Strip any codecs parameter.
		mt, _, _ = strings.Cut(mt, ";")
		return strings.TrimSpace(mt)
	}

	switch strings.ToUpper(strings.TrimSpace(s.Format)) {
	case "MPEG_4", "MP4":
		return string(kind) + "/mp4"
	case "M4A":
		return "audio/mp4"
	case "WEBM":
		return string(kind) + "/webm"
	case "WEBMA", "WEBMA_OPUS":
		return "audio/webm"
	}

	c := strings.ToLower(s.Codec)
	switch {
	case strings.HasPrefix(c, "opus"), strings.HasPrefix(c, "vorbis"):
		return "audio/webm"
	case strings.HasPrefix(c, "mp4a"):
		return "audio/mp4"
	case strings.HasPrefix(c, "vp8"), strings.HasPrefix(c, "vp9"), strings.HasPrefix(c, "vp09"):
		return "video/webm"
	case strings.HasPrefix(c, "avc1"), strings.HasPrefix(c, "av01"), strings.HasPrefix(c, "hev1"), strings.HasPrefix(c, "hvc1"):
		return "video/mp4"
	}

	return string(kind) + "/mp4"
}

// ContentType returns the full playback content type including the codecs
// parameter, e.g. `video/mp4; codecs="avc1.64001f"`.
func ContentType(s api.Stream, kind Kind) string {
	mime := ContainerMime(s, kind)
	if s.Codec == "" {
		return mime
	}
	return mime + `; codecs="` + s.Codec + `"`
}

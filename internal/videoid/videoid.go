// package videoid validates video IDs and resolves pasted watch URLs.
package videoid

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalid reports that the input is neither a video ID nor a watch URL.
var ErrInvalid = errors.New("videoid: not a video id or watch url")

// sourceDomain scopes the deterministic UUID namespace below.
const sourceDomain = "youtube.com"

// IsValid reports whether s has the shape of a video ID: 11 characters from
// the base64url alphabet.
func IsValid(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// Resolve turns user input into a canonical video ID. It accepts raw IDs and
// watch URLs in the common shapes (watch?v=, youtu.be/, shorts/, embed/,
// live/, v/).
func Resolve(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInvalid
	}
	if IsValid(input) {
		return input, nil
	}

	// The backend hands out relative watch URLs ("/watch?v=…").
	if strings.HasPrefix(input, "/") {
		return resolvePath(input)
	}

	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrInvalid
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch {
	case host == "youtu.be":
		id = firstPathSegment(u.Path)
	case strings.HasSuffix(host, "youtube.com") || strings.Contains(host, "."):
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/", "/v/", "/watch/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id = firstPathSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	}

	if !IsValid(id) {
		return "", ErrInvalid
	}
	return id, nil
}

// UUID returns a deterministic UUIDv5 for a video ID, scoped by the source
// domain namespace. Used as a stable correlation key in logs and caches.
func UUID(videoID string) uuid.UUID {
	ns := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(sourceDomain))
	return uuid.NewSHA1(ns, []byte(strings.TrimSpace(videoID)))
}

func resolvePath(input string) (string, error) {
	u, err := url.Parse(input)
	if err != nil {
		return "", ErrInvalid
	}
	id := u.Query().Get("v")
	if id == "" {
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id = firstPathSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	}
	if !IsValid(id) {
		return "", ErrInvalid
	}
	return id, nil
}

func firstPathSegment(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}

// package streams implements the rendition selection heuristics used for
// playback: picking the best video/audio/subtitle streams out of a details
// payload and computing the presentation duration.
package streams

import (
	"errors"
	"strings"

	"github.com/VimVoyager/opentube-frontend/internal/api"
)

// ErrNoStreams reports that no usable rendition exists for a selection.
var ErrNoStreams = errors.New("streams: no usable streams")

// codecRank orders codec families by preference at equal resolution.
// Newer codecs compress better, so prefer them when the player can choose.
func codecRank(codec string) int {
	c := strings.ToLower(codec)
	switch {
	case strings.HasPrefix(c, "av01"):
		return 3
	case strings.HasPrefix(c, "vp9"), strings.HasPrefix(c, "vp09"):
		return 2
	case strings.HasPrefix(c, "avc1"), strings.HasPrefix(c, "h264"):
		return 1
	default:
		return 0
	}
}

// BestVideo picks the adaptive video-only rendition closest to targetHeight
// without exceeding it. If every rendition exceeds the target, the smallest
// one wins. Ties break on codec preference, then bitrate.
func BestVideo(candidates []api.Stream, targetHeight int) (*api.Stream, error) {
	var best *api.Stream
	for i := range candidates {
		s := &candidates[i]
		if !s.VideoOnly || s.URL == "" || s.Height <= 0 {
			continue
		}
		if best == nil {
			best = s
			continue
		}
		if videoLess(best, s, targetHeight) {
			best = s
		}
	}
	if best == nil {
		return nil, ErrNoStreams
	}
	return best, nil
}

// videoLess reports whether b is a better pick than a for targetHeight.
func videoLess(a, b *api.Stream, targetHeight int) bool {
	da := heightDistance(a.Height, targetHeight)
	db := heightDistance(b.Height, targetHeight)
	if da != db {
		return db < da
	}
	if ra, rb := codecRank(a.Codec), codecRank(b.Codec); ra != rb {
		return rb > ra
	}
	return b.Bitrate > a.Bitrate
}

// heightDistance scores a rendition height against the target. Heights above
// the target are penalized so "closest without exceeding" wins.
func heightDistance(height, target int) int {
	if height <= target {
		return target - height
	}
	return (height - target) * 1000
}

// BestProgressive picks the highest-resolution muxed (audio+video) stream.
// Progressive streams are the fallback for players without MSE support.
func BestProgressive(candidates []api.Stream) (*api.Stream, error) {
	var best *api.Stream
	for i := range candidates {
		s := &candidates[i]
		if s.VideoOnly || s.URL == "" {
			continue
		}
		if best == nil || s.Height > best.Height ||
			(s.Height == best.Height && s.Bitrate > best.Bitrate) {
			best = s
		}
	}
	if best == nil {
		return nil, ErrNoStreams
	}
	return best, nil
}

// BestAudio picks the best audio rendition: the default/original track in the
// preferred locale when present, then the highest bitrate.
func BestAudio(candidates []api.Stream, preferredLocale string) (*api.Stream, error) {
	var best *api.Stream
	for i := range candidates {
		s := &candidates[i]
		if s.URL == "" {
			continue
		}
		if best == nil || audioLess(best, s, preferredLocale) {
			best = s
		}
	}
	if best == nil {
		return nil, ErrNoStreams
	}
	return best, nil
}

func audioLess(a, b *api.Stream, preferredLocale string) bool {
	if la, lb := localeMatches(a, preferredLocale), localeMatches(b, preferredLocale); la != lb {
		return lb
	}
	if oa, ob := isOriginalTrack(a), isOriginalTrack(b); oa != ob {
		return ob
	}
	return b.Bitrate > a.Bitrate
}

func localeMatches(s *api.Stream, locale string) bool {
	if locale == "" || s.AudioTrackLocale == "" {
		return false
	}
	return strings.EqualFold(baseLang(s.AudioTrackLocale), baseLang(locale))
}

func isOriginalTrack(s *api.Stream) bool {
	// Untagged streams are the sole (hence original) track.
	return s.AudioTrackType == "" || strings.EqualFold(s.AudioTrackType, "original")
}

// SelectSubtitle picks the subtitle track for preferredLang: an exact code
// match beats a base-language match, and human-authored tracks beat
// autogenerated ones. Returns nil when nothing matches.
func SelectSubtitle(tracks []api.Subtitle, preferredLang string) *api.Subtitle {
	if preferredLang == "" {
		return nil
	}
	var best *api.Subtitle
	bestScore := 0
	for i := range tracks {
		t := &tracks[i]
		score := 0
		switch {
		case strings.EqualFold(t.Code, preferredLang):
			score = 4
		case strings.EqualFold(baseLang(t.Code), baseLang(preferredLang)):
			score = 2
		default:
			continue
		}
		if !t.AutoGenerated {
			score++
		}
		if score > bestScore {
			best = t
			bestScore = score
		}
	}
	return best
}

// Duration returns the presentation duration in seconds: the declared stream
// duration when positive, otherwise the longest estimate derived from
// rendition sizes and bitrates.
func Duration(d *api.StreamDetails) float64 {
	if d == nil {
		return 0
	}
	if d.Duration > 0 {
		return d.Duration
	}
	var max float64
	for _, list := range [][]api.Stream{d.VideoStreams, d.AudioStreams} {
		for _, s := range list {
			if s.ContentLength > 0 && s.Bitrate > 0 {
				if est := float64(s.ContentLength) * 8 / float64(s.Bitrate); est > max {
					max = est
				}
			}
		}
	}
	return max
}

func baseLang(code string) string {
	base, _, _ := strings.Cut(code, "-")
	return base
}

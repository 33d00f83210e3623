package dash

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/streams"
)

// Options control manifest generation.
type Options struct {
	// ProxyBaseURL routes every media URL through the media proxy.
	// Empty leaves the upstream URLs untouched.
	ProxyBaseURL string
}

// Generate builds a static on-demand MPD from the adaptive renditions of a
// details payload. Renditions are grouped into one AdaptationSet per
// (kind, container, audio track) and addressed by byte range.
func Generate(d *api.StreamDetails, opts Options) (*MPD, error) {
	if d == nil {
		return nil, streams.ErrNoStreams
	}

	adaptive := make([]api.Stream, 0, len(d.VideoStreams))
	for _, s := range d.VideoStreams {
		if s.VideoOnly && s.URL != "" {
			adaptive = append(adaptive, s)
		}
	}
	if len(adaptive) == 0 && len(d.AudioStreams) == 0 {
		return nil, fmt.Errorf("dash: generate: %w", streams.ErrNoStreams)
	}

	var sets []AdaptationSet
	sets = append(sets, videoSets(adaptive)...)
	sets = append(sets, audioSets(d.AudioStreams)...)
	if len(sets) == 0 {
		return nil, fmt.Errorf("dash: generate: %w", streams.ErrNoStreams)
	}
	for i := range sets {
		sets[i].ID = i
	}

	mpd := &MPD{
		XMLNS:                     Namespace,
		Profiles:                  ProfileOnDemand,
		Type:                      "static",
		MediaPresentationDuration: FormatDuration(streams.Duration(d)),
		MinBufferTime:             defaultBufferTime,
		Periods:                   []Period{{ID: "0", AdaptationSets: sets}},
	}

	if opts.ProxyBaseURL != "" {
		RewriteBaseURLs(mpd, opts.ProxyBaseURL)
	}
	return mpd, nil
}

// Encode serializes an MPD document with the XML prolog.
func Encode(mpd *MPD) ([]byte, error) {
	body, err := xml.MarshalIndent(mpd, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("dash: encode: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func videoSets(adaptive []api.Stream) []AdaptationSet {
	byMime := groupBy(adaptive, func(s api.Stream) string {
		return streams.ContainerMime(s, streams.KindVideo)
	})

	sets := make([]AdaptationSet, 0, len(byMime.keys))
	for _, mime := range byMime.keys {
		group := byMime.groups[mime]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Height != group[j].Height {
				return group[i].Height > group[j].Height
			}
			return group[i].Bitrate > group[j].Bitrate
		})

		set := AdaptationSet{
			MimeType:            mime,
			StartWithSAP:        1,
			SubsegmentAlignment: true,
		}
		for i, s := range group {
			rep := Representation{
				ID:        fmt.Sprintf("video-%s-%d", shortMime(mime), i),
				Codecs:    s.Codec,
				Bandwidth: s.Bitrate,
				Width:     s.Width,
				Height:    s.Height,
				FrameRate: s.FPS,
				BaseURL:   s.URL,
			}
			rep.SegmentBase = segmentBase(s)
			set.Representations = append(set.Representations, rep)
		}
		sets = append(sets, set)
	}
	return sets
}

func audioSets(audio []api.Stream) []AdaptationSet {
	usable := make([]api.Stream, 0, len(audio))
	for _, s := range audio {
		if s.URL != "" {
			usable = append(usable, s)
		}
	}

	byTrack := groupBy(usable, func(s api.Stream) string {
		return streams.ContainerMime(s, streams.KindAudio) + "|" + s.AudioTrackID
	})

	sets := make([]AdaptationSet, 0, len(byTrack.keys))
	for _, key := range byTrack.keys {
		group := byTrack.groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Bitrate > group[j].Bitrate
		})

		mime, _, _ := strings.Cut(key, "|")
		first := group[0]
		set := AdaptationSet{
			MimeType:            mime,
			Lang:                first.AudioTrackLocale,
			SubsegmentAlignment: true,
			Role: &Role{
				SchemeIDURI: RoleSchemeIDURI,
				Value:       audioRole(first),
			},
		}
		for i, s := range group {
			rep := Representation{
				ID:        fmt.Sprintf("audio-%s-%d", shortMime(mime), i),
				Codecs:    s.Codec,
				Bandwidth: s.Bitrate,
				AudioChannelConfiguration: &AudioChannelConfiguration{
					SchemeIDURI: "urn:mpeg:dash:23003:3:audio_channel_configuration:2011",
					Value:       "2",
				},
				BaseURL: s.URL,
			}
			rep.SegmentBase = segmentBase(s)
			set.Representations = append(set.Representations, rep)
		}
		sets = append(sets, set)
	}
	return sets
}

// segmentBase builds byte-range addressing from the rendition's init/index
// offsets. Descriptors without a usable index degrade to range-less playback.
func segmentBase(s api.Stream) *SegmentBase {
	if s.IndexEnd <= 0 || s.IndexStart < 0 || s.IndexEnd < s.IndexStart {
		return nil
	}
	sb := &SegmentBase{
		IndexRange: fmt.Sprintf("%d-%d", s.IndexStart, s.IndexEnd),
	}
	if s.InitEnd > 0 && s.InitEnd >= s.InitStart {
		sb.Initialization = &Initialization{
			Range: fmt.Sprintf("%d-%d", s.InitStart, s.InitEnd),
		}
	}
	return sb
}

func audioRole(s api.Stream) string {
	if s.AudioTrackType == "" || strings.EqualFold(s.AudioTrackType, "original") {
		return "main"
	}
	return "alternate"
}

// FormatDuration renders seconds as an ISO-8601 duration (PT212.500S).
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "PT0S"
	}
	return fmt.Sprintf("PT%.3fS", seconds)
}

func shortMime(mime string) string {
	_, sub, ok := strings.Cut(mime, "/")
	if !ok {
		return mime
	}
	return sub
}

// orderedGroups preserves first-seen key order so generated manifests are
// deterministic for ETag comparison.
type orderedGroups struct {
	keys   []string
	groups map[string][]api.Stream
}

func groupBy(list []api.Stream, key func(api.Stream) string) orderedGroups {
	og := orderedGroups{groups: map[string][]api.Stream{}}
	for _, s := range list {
		k := key(s)
		if _, ok := og.groups[k]; !ok {
			og.keys = append(og.keys, k)
		}
		og.groups[k] = append(og.groups[k], s)
	}
	return og
}

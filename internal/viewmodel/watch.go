// package viewmodel adapts raw backend payloads into UI-ready view-models.
//
// Adapters are total functions: missing or malformed input fields fall back
// to defaults instead of panicking, matching what the player UI expects.
package viewmodel

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/dash"
	"github.com/VimVoyager/opentube-frontend/internal/streams"
	"github.com/VimVoyager/opentube-frontend/pkg/utils/format"
	"github.com/VimVoyager/opentube-frontend/pkg/utils/language"
	"github.com/VimVoyager/opentube-frontend/pkg/utils/richtext"
)

// Fallbacks substituted for missing payload fields.
const (
	FallbackTitle     = "Untitled video"
	FallbackChannel   = "Unknown channel"
	FallbackThumbnail = "/static/placeholder-thumbnail.svg"
	FallbackAvatar    = "/static/placeholder-avatar.svg"
)

// Options tune adaptation for the requesting client.
type Options struct {
	// ProxyBaseURL routes direct media URLs through the media proxy.
	ProxyBaseURL string
	// TargetHeight picks the default video rendition.
	TargetHeight int
	// PreferredSubtitleLang picks the default subtitle track.
	PreferredSubtitleLang string
	// HideShorts drops short-form items from card lists.
	HideShorts bool
}

// WatchPage is the view-model for the video playback surface.
type WatchPage struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	DescriptionHTML string          `json:"descriptionHtml"`
	Category        string          `json:"category,omitempty"`
	Livestream      bool            `json:"livestream"`
	Views           int64           `json:"views"`
	ViewsLabel      string          `json:"viewsLabel"`
	LikesLabel      string          `json:"likesLabel"`
	UploadedLabel   string          `json:"uploadedLabel"`
	DurationSeconds float64         `json:"durationSeconds"`
	DurationLabel   string          `json:"durationLabel"`
	Thumbnail       string          `json:"thumbnail"`
	Uploader        Channel         `json:"uploader"`
	ManifestURL     string          `json:"manifestUrl"`
	HLSURL          string          `json:"hlsUrl,omitempty"`
	DefaultVideo    *Rendition      `json:"defaultVideo,omitempty"`
	DefaultAudio    *Rendition      `json:"defaultAudio,omitempty"`
	DefaultSubtitle *SubtitleTrack  `json:"defaultSubtitle,omitempty"`
	Subtitles       []SubtitleTrack `json:"subtitles"`
	Chapters        []ChapterMark   `json:"chapters"`
	Related         []Card          `json:"related"`
}

// Channel describes the uploading channel.
type Channel struct {
	Name             string `json:"name"`
	URL              string `json:"url,omitempty"`
	Avatar           string `json:"avatar"`
	Verified         bool   `json:"verified"`
	SubscribersLabel string `json:"subscribersLabel,omitempty"`
}

// Rendition is the player-facing description of one selected stream.
type Rendition struct {
	URL         string `json:"url"`
	Quality     string `json:"quality,omitempty"`
	ContentType string `json:"contentType"`
	Bitrate     int64  `json:"bitrate,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// SubtitleTrack is one selectable subtitle entry.
type SubtitleTrack struct {
	URL           string `json:"url"`
	Code          string `json:"code"`
	Label         string `json:"label"`
	MimeType      string `json:"mimeType,omitempty"`
	AutoGenerated bool   `json:"autoGenerated"`
}

// ChapterMark is a labeled point on the timeline.
type ChapterMark struct {
	Title      string `json:"title"`
	Image      string `json:"image,omitempty"`
	Start      int64  `json:"start"`
	StartLabel string `json:"startLabel"`
}

// Watch adapts a details payload into the playback view-model.
func Watch(videoID string, d *api.StreamDetails, opts Options) WatchPage {
	if d == nil {
		d = &api.StreamDetails{}
	}

	duration := streams.Duration(d)
	page := WatchPage{
		ID:              videoID,
		Title:           fallback(d.Title, FallbackTitle),
		DescriptionHTML: richtext.Render(d.Description),
		Category:        d.Category,
		Livestream:      d.Livestream,
		Views:           d.Views,
		ViewsLabel:      humanize.Comma(d.Views) + " views",
		LikesLabel:      format.Number(d.Likes),
		UploadedLabel:   uploadedLabel(d.Uploaded, d.UploadDate),
		DurationSeconds: duration,
		DurationLabel:   format.Duration(int64(duration)),
		Thumbnail:       fallback(d.ThumbnailURL, FallbackThumbnail),
		Uploader: Channel{
			Name:             fallback(d.Uploader, FallbackChannel),
			URL:              d.UploaderURL,
			Avatar:           fallback(d.UploaderAvatar, FallbackAvatar),
			Verified:         d.UploaderVerified,
			SubscribersLabel: subscribersLabel(d.UploaderSubscriberCount),
		},
		ManifestURL: "/api/videos/" + videoID + "/manifest.mpd",
		HLSURL:      dash.ProxyURL(opts.ProxyBaseURL, d.HlsURL),
		Subtitles:   SubtitleTracks(d.Subtitles, opts),
		Chapters:    chapters(d.Chapters),
		Related:     Cards(d.RelatedStreams, opts),
	}

	if v, err := streams.BestVideo(d.VideoStreams, opts.TargetHeight); err == nil {
		page.DefaultVideo = rendition(v, streams.KindVideo, opts)
	} else if p, err := streams.BestProgressive(d.VideoStreams); err == nil {
		page.DefaultVideo = rendition(p, streams.KindVideo, opts)
	}
	if a, err := streams.BestAudio(d.AudioStreams, opts.PreferredSubtitleLang); err == nil {
		page.DefaultAudio = rendition(a, streams.KindAudio, opts)
	}
	if t := streams.SelectSubtitle(d.Subtitles, opts.PreferredSubtitleLang); t != nil {
		track := subtitleTrack(*t, opts)
		page.DefaultSubtitle = &track
	}

	return page
}

// SubtitleTracks adapts subtitle descriptors into labeled tracks.
func SubtitleTracks(subs []api.Subtitle, opts Options) []SubtitleTrack {
	out := make([]SubtitleTrack, 0, len(subs))
	for _, s := range subs {
		if s.URL == "" {
			continue
		}
		out = append(out, subtitleTrack(s, opts))
	}
	return out
}

func subtitleTrack(s api.Subtitle, opts Options) SubtitleTrack {
	label := s.Name
	if label == "" {
		label = language.DisplayName(s.Code)
	}
	if label == "" {
		label = s.Code
	}
	if s.AutoGenerated {
		label += " (auto-generated)"
	}
	return SubtitleTrack{
		URL:           dash.ProxyURL(opts.ProxyBaseURL, s.URL),
		Code:          s.Code,
		Label:         label,
		MimeType:      s.MimeType,
		AutoGenerated: s.AutoGenerated,
	}
}

func rendition(s *api.Stream, kind streams.Kind, opts Options) *Rendition {
	return &Rendition{
		URL:         dash.ProxyURL(opts.ProxyBaseURL, s.URL),
		Quality:     s.Quality,
		ContentType: streams.ContentType(*s, kind),
		Bitrate:     s.Bitrate,
		Width:       s.Width,
		Height:      s.Height,
	}
}

func chapters(in []api.Chapter) []ChapterMark {
	out := make([]ChapterMark, 0, len(in))
	for _, c := range in {
		out = append(out, ChapterMark{
			Title:      c.Title,
			Image:      c.Image,
			Start:      c.Start,
			StartLabel: format.Duration(c.Start),
		})
	}
	return out
}

func uploadedLabel(uploadedMillis int64, uploadDate string) string {
	if uploadedMillis > 0 {
		return humanize.Time(time.UnixMilli(uploadedMillis))
	}
	return uploadDate
}

func subscribersLabel(n int64) string {
	if n <= 0 {
		return ""
	}
	return format.Number(n) + " subscribers"
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

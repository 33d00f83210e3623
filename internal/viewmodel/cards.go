package viewmodel

import (
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/videoid"
	"github.com/VimVoyager/opentube-frontend/pkg/utils/format"
	"github.com/VimVoyager/opentube-frontend/pkg/utils/richtext"
)

// Card is one entry in a related-videos or search-results list.
type Card struct {
	Type          string  `json:"type"`
	VideoID       string  `json:"videoId,omitempty"`
	URL           string  `json:"url,omitempty"`
	Title         string  `json:"title"`
	Thumbnail     string  `json:"thumbnail"`
	Uploader      Channel `json:"uploader"`
	UploadedLabel string  `json:"uploadedLabel,omitempty"`
	ViewsLabel    string  `json:"viewsLabel,omitempty"`
	DurationLabel string  `json:"durationLabel,omitempty"`
	Live          bool    `json:"live,omitempty"`
	Short         bool    `json:"short,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// SearchResults is the view-model for the search surface.
type SearchResults struct {
	Query      string `json:"query"`
	Items      []Card `json:"items"`
	Nextpage   string `json:"nextpage,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Corrected  bool   `json:"corrected,omitempty"`
}

// Cards adapts related-stream previews into display cards. Non-stream items
// (channels, playlists) keep their type so the UI can route them; shorts are
// dropped when opts.HideShorts is set.
func Cards(items []api.RelatedStream, opts Options) []Card {
	out := make([]Card, 0, len(items))
	for _, item := range items {
		if opts.HideShorts && item.IsShort {
			continue
		}
		out = append(out, card(item))
	}
	return out
}

// Search adapts one search page.
func Search(query string, page *api.SearchPage, opts Options) SearchResults {
	if page == nil {
		page = &api.SearchPage{}
	}
	return SearchResults{
		Query:      query,
		Items:      Cards(page.Items, opts),
		Nextpage:   page.Nextpage,
		Suggestion: page.Suggestion,
		Corrected:  page.Corrected,
	}
}

func card(item api.RelatedStream) Card {
	c := Card{
		Type:      fallback(item.Type, "stream"),
		URL:       item.URL,
		Title:     fallback(item.Title, FallbackTitle),
		Thumbnail: fallback(item.Thumbnail, FallbackThumbnail),
		Uploader: Channel{
			Name:     fallback(item.UploaderName, FallbackChannel),
			URL:      item.UploaderURL,
			Avatar:   fallback(item.UploaderAvatar, FallbackAvatar),
			Verified: item.UploaderVerified,
		},
		UploadedLabel: uploadedLabel(item.Uploaded, item.UploadedDate),
		Short:         item.IsShort,
		Description:   format.Truncate(richtext.PlainText(item.ShortDescription), 160),
	}

	if id, err := videoid.Resolve(item.URL); err == nil {
		c.VideoID = id
	}

	// Upcoming and live items carry a negative duration and show no timestamp.
	switch {
	case item.Duration < 0:
		c.Live = true
	default:
		c.DurationLabel = format.Duration(item.Duration)
	}

	if item.Views > 0 {
		c.ViewsLabel = format.Number(item.Views) + " views"
	}
	return c
}

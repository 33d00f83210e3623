package viewmodel

import (
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/dash"
)

// Storyboard is the seek-preview view-model: a set of sprite-sheet levels the
// player scrubs through.
type Storyboard struct {
	Levels []StoryboardLevel `json:"levels"`
}

// StoryboardLevel is one resolution tier of preview frames.
type StoryboardLevel struct {
	PageURLs         []string `json:"pageUrls"`
	FrameWidth       int      `json:"frameWidth"`
	FrameHeight      int      `json:"frameHeight"`
	TotalCount       int      `json:"totalCount"`
	DurationPerFrame int      `json:"durationPerFrame"`
	Columns          int      `json:"columns"`
	Rows             int      `json:"rows"`
}

// Thumbnails adapts storyboard descriptors. Levels without pages or frame
// geometry are dropped; page URLs are routed through the media proxy.
func Thumbnails(frames []api.PreviewFrames, opts Options) Storyboard {
	levels := make([]StoryboardLevel, 0, len(frames))
	for _, f := range frames {
		if len(f.URLs) == 0 || f.FrameWidth <= 0 || f.FrameHeight <= 0 {
			continue
		}
		urls := make([]string, 0, len(f.URLs))
		for _, u := range f.URLs {
			urls = append(urls, dash.ProxyURL(opts.ProxyBaseURL, u))
		}
		levels = append(levels, StoryboardLevel{
			PageURLs:         urls,
			FrameWidth:       f.FrameWidth,
			FrameHeight:      f.FrameHeight,
			TotalCount:       f.TotalCount,
			DurationPerFrame: f.DurationPerFrame,
			Columns:          max(f.FramesPerPageX, 1),
			Rows:             max(f.FramesPerPageY, 1),
		})
	}
	return Storyboard{Levels: levels}
}

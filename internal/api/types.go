package api

// Raw payload shapes returned by the OpenTube backend. Fields mirror the wire
// format; adaptation into view-models happens in internal/viewmodel.

// StreamDetails is the full /streams/details payload for one video.
type StreamDetails struct {
	Title                   string          `json:"title"`
	Description             string          `json:"description"`
	UploadDate              string          `json:"uploadDate"`
	Uploaded                int64           `json:"uploaded"` // unix millis
	Uploader                string          `json:"uploader"`
	UploaderURL             string          `json:"uploaderUrl"`
	UploaderAvatar          string          `json:"uploaderAvatar"`
	UploaderVerified        bool            `json:"uploaderVerified"`
	UploaderSubscriberCount int64           `json:"uploaderSubscriberCount"`
	ThumbnailURL            string          `json:"thumbnailUrl"`
	Category                string          `json:"category"`
	Duration                float64         `json:"duration"` // seconds
	Views                   int64           `json:"views"`
	Likes                   int64           `json:"likes"`
	Livestream              bool            `json:"livestream"`
	DashURL                 string          `json:"dash"`
	HlsURL                  string          `json:"hls"`
	VideoStreams            []Stream        `json:"videoStreams"`
	AudioStreams            []Stream        `json:"audioStreams"`
	Subtitles               []Subtitle      `json:"subtitles"`
	RelatedStreams          []RelatedStream `json:"relatedStreams"`
	PreviewFrames           []PreviewFrames `json:"previewFrames"`
	Chapters                []Chapter       `json:"chapters"`
}

// Stream is one video or audio rendition of a stream.
type Stream struct {
	URL              string `json:"url"`
	Format           string `json:"format"`
	Quality          string `json:"quality"`
	MimeType         string `json:"mimeType"`
	Codec            string `json:"codec"`
	Bitrate          int64  `json:"bitrate"`
	ContentLength    int64  `json:"contentLength"`
	VideoOnly        bool   `json:"videoOnly"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	FPS              int    `json:"fps"`
	InitStart        int64  `json:"initStart"`
	InitEnd          int64  `json:"initEnd"`
	IndexStart       int64  `json:"indexStart"`
	IndexEnd         int64  `json:"indexEnd"`
	AudioTrackID     string `json:"audioTrackId"`
	AudioTrackName   string `json:"audioTrackName"`
	AudioTrackType   string `json:"audioTrackType"`
	AudioTrackLocale string `json:"audioTrackLocale"`
}

// Subtitle is one subtitle track descriptor.
type Subtitle struct {
	URL           string `json:"url"`
	MimeType      string `json:"mimeType"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	AutoGenerated bool   `json:"autoGenerated"`
}

// RelatedStream is the compact preview used in related lists and search results.
type RelatedStream struct {
	URL              string `json:"url"`
	Type             string `json:"type"` // "stream", "channel", "playlist"
	Title            string `json:"title"`
	Thumbnail        string `json:"thumbnail"`
	UploaderName     string `json:"uploaderName"`
	UploaderURL      string `json:"uploaderUrl"`
	UploaderAvatar   string `json:"uploaderAvatar"`
	UploaderVerified bool   `json:"uploaderVerified"`
	UploadedDate     string `json:"uploadedDate"`
	Uploaded         int64  `json:"uploaded"` // unix millis
	ShortDescription string `json:"shortDescription"`
	Duration         int64  `json:"duration"` // seconds, -1 for upcoming/live
	Views            int64  `json:"views"`
	IsShort          bool   `json:"isShort"`
}

// PreviewFrames describes one storyboard level for seek thumbnails.
type PreviewFrames struct {
	URLs             []string `json:"urls"`
	FrameWidth       int      `json:"frameWidth"`
	FrameHeight      int      `json:"frameHeight"`
	TotalCount       int      `json:"totalCount"`
	DurationPerFrame int      `json:"durationPerFrame"` // millis
	FramesPerPageX   int      `json:"framesPerPageX"`
	FramesPerPageY   int      `json:"framesPerPageY"`
}

// Chapter is a chapter marker in the stream timeline.
type Chapter struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Start int64  `json:"start"` // seconds
}

// SearchPage is the /streams/search payload.
type SearchPage struct {
	Items      []RelatedStream `json:"items"`
	Nextpage   string          `json:"nextpage"`
	Suggestion string          `json:"suggestion"`
	Corrected  bool            `json:"corrected"`
}

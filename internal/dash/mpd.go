// package dash builds and parses MPEG-DASH media presentation descriptions.
//
// Generated manifests are static, single-period, on-demand profile documents
// with byte-range addressed representations (SegmentBase + Initialization).
// Upstream manifests for livestreams are parsed into the same model so their
// segment URLs can be rewritten through the media proxy before serving.
package dash

import "encoding/xml"

const (
	Namespace         = "urn:mpeg:dash:schema:mpd:2011"
	ProfileOnDemand   = "urn:mpeg:dash:profile:isoff-on-demand:2011"
	RoleSchemeIDURI   = "urn:mpeg:dash:role:2011"
	defaultBufferTime = "PT1.5S"
)

type MPD struct {
	XMLName                   xml.Name `xml:"MPD"`
	XMLNS                     string   `xml:"xmlns,attr"`
	Profiles                  string   `xml:"profiles,attr"`
	Type                      string   `xml:"type,attr"`
	MediaPresentationDuration string   `xml:"mediaPresentationDuration,attr,omitempty"`
	MinBufferTime             string   `xml:"minBufferTime,attr,omitempty"`
	MinimumUpdatePeriod       string   `xml:"minimumUpdatePeriod,attr,omitempty"`
	Periods                   []Period `xml:"Period"`
}

type Period struct {
	ID             string          `xml:"id,attr,omitempty"`
	Start          string          `xml:"start,attr,omitempty"`
	AdaptationSets []AdaptationSet `xml:"AdaptationSet"`
}

type AdaptationSet struct {
	ID                  int              `xml:"id,attr"`
	MimeType            string           `xml:"mimeType,attr"`
	Lang                string           `xml:"lang,attr,omitempty"`
	StartWithSAP        int              `xml:"startWithSAP,attr,omitempty"`
	SubsegmentAlignment bool             `xml:"subsegmentAlignment,attr"`
	Role                *Role            `xml:"Role,omitempty"`
	Representations     []Representation `xml:"Representation"`
}

type Role struct {
	SchemeIDURI string `xml:"schemeIdUri,attr"`
	Value       string `xml:"value,attr"`
}

type Representation struct {
	ID                        string                     `xml:"id,attr"`
	Codecs                    string                     `xml:"codecs,attr,omitempty"`
	Bandwidth                 int64                      `xml:"bandwidth,attr,omitempty"`
	Width                     int                        `xml:"width,attr,omitempty"`
	Height                    int                        `xml:"height,attr,omitempty"`
	FrameRate                 int                        `xml:"frameRate,attr,omitempty"`
	AudioChannelConfiguration *AudioChannelConfiguration `xml:"AudioChannelConfiguration,omitempty"`
	BaseURL                   string                     `xml:"BaseURL,omitempty"`
	SegmentBase               *SegmentBase               `xml:"SegmentBase,omitempty"`
	SegmentTemplate           *SegmentTemplate           `xml:"SegmentTemplate,omitempty"`
}

type AudioChannelConfiguration struct {
	SchemeIDURI string `xml:"schemeIdUri,attr"`
	Value       string `xml:"value,attr"`
}

// SegmentBase addresses subsegments of a single media file by byte range.
type SegmentBase struct {
	IndexRange     string          `xml:"indexRange,attr"`
	Initialization *Initialization `xml:"Initialization,omitempty"`
}

type Initialization struct {
	Range     string `xml:"range,attr,omitempty"`
	SourceURL string `xml:"sourceURL,attr,omitempty"`
}

// SegmentTemplate appears in upstream livestream manifests; generated
// manifests never use it, but the parser must round-trip it.
type SegmentTemplate struct {
	Timescale      int    `xml:"timescale,attr,omitempty"`
	Duration       int    `xml:"duration,attr,omitempty"`
	StartNumber    int    `xml:"startNumber,attr,omitempty"`
	Initialization string `xml:"initialization,attr,omitempty"`
	Media          string `xml:"media,attr,omitempty"`
}

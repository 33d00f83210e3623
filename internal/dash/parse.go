package dash

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Parse decodes an MPD document.
func Parse(r io.Reader) (*MPD, error) {
	var mpd MPD
	if err := xml.NewDecoder(r).Decode(&mpd); err != nil {
		return nil, fmt.Errorf("dash: parse: %w", err)
	}
	return &mpd, nil
}

// RewriteBaseURLs routes every absolute media URL in the manifest through the
// media proxy. The original host travels in the query so the proxy can
// restore it upstream.
func RewriteBaseURLs(mpd *MPD, proxyBase string) {
	proxyBase = strings.TrimRight(proxyBase, "/")
	for p := range mpd.Periods {
		period := &mpd.Periods[p]
		for a := range period.AdaptationSets {
			set := &period.AdaptationSets[a]
			for r := range set.Representations {
				rep := &set.Representations[r]
				rep.BaseURL = ProxyURL(proxyBase, rep.BaseURL)
				if rep.SegmentTemplate != nil {
					rep.SegmentTemplate.Initialization = ProxyURL(proxyBase, rep.SegmentTemplate.Initialization)
					rep.SegmentTemplate.Media = ProxyURL(proxyBase, rep.SegmentTemplate.Media)
				}
				if rep.SegmentBase != nil && rep.SegmentBase.Initialization != nil {
					rep.SegmentBase.Initialization.SourceURL = ProxyURL(proxyBase, rep.SegmentBase.Initialization.SourceURL)
				}
			}
		}
	}
}

// ProxyURL rewrites one absolute URL to its proxied form:
// {proxyBase}/proxy/media?url={escaped}&host={upstream host}.
// Relative and non-http(s) URLs pass through untouched.
func ProxyURL(proxyBase, raw string) string {
	if proxyBase == "" || raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return raw
	}
	q := url.Values{}
	q.Set("url", raw)
	q.Set("host", u.Host)
	return proxyBase + "/proxy/media?" + q.Encode()
}

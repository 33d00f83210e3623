package video_api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/viewmodel"
)

const testVideoID = "dQw4w9WgXcQ"

const detailsPayload = `{
	"title": "Test Video",
	"description": "plain description",
	"uploader": "Channel",
	"duration": 100,
	"views": 1500,
	"videoStreams": [
		{"url": "https://cdn.example/v720.mp4", "format": "MPEG_4", "codec": "avc1.64001f",
		 "bitrate": 1500000, "videoOnly": true, "width": 1280, "height": 720,
		 "initStart": 0, "initEnd": 739, "indexStart": 740, "indexEnd": 1259}
	],
	"audioStreams": [
		{"url": "https://cdn.example/a.m4a", "format": "M4A", "codec": "mp4a.40.2", "bitrate": 128000,
		 "initStart": 0, "initEnd": 631, "indexStart": 632, "indexEnd": 1335}
	]
}`

func testConfig() *config.Config {
	return &config.Config{
		ProxyBaseURL:          "https://front.example",
		DefaultTargetHeight:   720,
		PreferredSubtitleLang: "en",
	}
}

// newUpstream fakes the backend API.
func newUpstream(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 0)
}

func doRequest(t *testing.T, h echo.HandlerFunc, target string, paramValue string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(paramValue)

	err := h(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestHandleDetails(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/streams/details", r.URL.Path)
		require.Equal(t, testVideoID, r.URL.Query().Get("videoId"))
		_, _ = w.Write([]byte(detailsPayload))
	})

	rec := doRequest(t, HandleDetails(client, testConfig()), "/api/videos/"+testVideoID, testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page viewmodel.WatchPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, "Test Video", page.Title)
	require.Equal(t, "1,500 views", page.ViewsLabel)
	require.NotNil(t, page.DefaultVideo)
	require.Equal(t, 720, page.DefaultVideo.Height)
	require.Contains(t, page.DefaultVideo.URL, "https://front.example/proxy/media?")
}

func TestHandleDetails_InvalidID(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called for invalid ids")
	})

	rec := doRequest(t, HandleDetails(client, testConfig()), "/api/videos/nope", "nope", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDetails_UpstreamNotFound(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	rec := doRequest(t, HandleDetails(client, testConfig()), "/api/videos/"+testVideoID, testVideoID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDetails_UpstreamFailure(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	rec := doRequest(t, HandleDetails(client, testConfig()), "/api/videos/"+testVideoID, testVideoID, nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleRelated(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/streams/related", r.URL.Path)
		_, _ = w.Write([]byte(`[{"type": "stream", "title": "Next up", "duration": 61, "views": 10}]`))
	})

	rec := doRequest(t, HandleRelated(client, testConfig()), "/api/videos/"+testVideoID+"/related", testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cards []viewmodel.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	require.Equal(t, "Next up", cards[0].Title)
	require.Equal(t, "1:01", cards[0].DurationLabel)
}

func TestHandleManifest_Generated(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/streams/details", r.URL.Path)
		_, _ = w.Write([]byte(detailsPayload))
	})

	rec := doRequest(t, HandleManifest(client, testConfig()), "/api/videos/"+testVideoID+"/manifest.mpd", testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, manifestContentType, rec.Header().Get(echo.HeaderContentType))
	require.NotEmpty(t, rec.Header().Get("ETag"))

	body := rec.Body.String()
	require.Contains(t, body, "<MPD")
	require.Contains(t, body, `type="static"`)
	require.Contains(t, body, `indexRange="740-1259"`)
	require.Contains(t, body, "front.example/proxy/media?")
}

func TestHandleManifest_ETagRoundTrip(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailsPayload))
	})
	h := HandleManifest(client, testConfig())

	first := doRequest(t, h, "/api/videos/"+testVideoID+"/manifest.mpd", testVideoID, nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := doRequest(t, h, "/api/videos/"+testVideoID+"/manifest.mpd", testVideoID,
		http.Header{"If-None-Match": []string{etag}})
	require.Equal(t, http.StatusNotModified, second.Code)
	// The 304 carries the ETag so caches can keep revalidating.
	require.Equal(t, etag, second.Header().Get("ETag"))
	require.Empty(t, second.Body.String())
}

func TestHandleManifest_NoStreams(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title": "empty"}`))
	})

	rec := doRequest(t, HandleManifest(client, testConfig()), "/api/videos/"+testVideoID+"/manifest.mpd", testVideoID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleManifest_LivestreamPassthrough(t *testing.T) {
	const live = `<?xml version="1.0"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="dynamic" profiles="urn:mpeg:dash:profile:isoff-live:2011">
  <Period id="0">
    <AdaptationSet id="0" mimeType="video/mp4" subsegmentAlignment="true">
      <Representation id="1" codecs="avc1.640028" bandwidth="4000000">
        <SegmentTemplate media="https://live.example/seg-$Number$.m4s" initialization="https://live.example/init.mp4"/>
      </Representation>
    </AdaptationSet>
  </Period>
</MPD>`

	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/streams/details":
			_, _ = w.Write([]byte(`{"title": "live", "livestream": true, "dash": "https://upstream.example/dash"}`))
		case "/streams/dash":
			_, _ = w.Write([]byte(live))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	rec := doRequest(t, HandleManifest(client, testConfig()), "/api/videos/"+testVideoID+"/manifest.mpd", testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `type="dynamic"`)
	require.Contains(t, body, "front.example/proxy/media?")
	require.NotContains(t, body, `media="https://live.example/`)
}

func TestHandleManifest_OTFPassthrough(t *testing.T) {
	// OTF streams carry a backend MPD and renditions without segment
	// indexes; the upstream manifest wins over a range-less generated one.
	const upstream = `<?xml version="1.0"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" profiles="urn:mpeg:dash:profile:isoff-main:2011" mediaPresentationDuration="PT100.000S">
  <Period id="0">
    <AdaptationSet id="0" mimeType="video/mp4" subsegmentAlignment="true">
      <Representation id="1" codecs="avc1.64001f" bandwidth="1500000">
        <SegmentTemplate media="https://otf.example/seg-$Number$.m4s" initialization="https://otf.example/init.mp4"/>
      </Representation>
    </AdaptationSet>
  </Period>
</MPD>`

	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/streams/details":
			_, _ = w.Write([]byte(`{
				"title": "otf", "duration": 100, "dash": "https://upstream.example/dash",
				"videoStreams": [
					{"url": "https://otf.example/v.mp4", "format": "MPEG_4", "codec": "avc1.64001f",
					 "bitrate": 1500000, "videoOnly": true, "width": 1280, "height": 720}
				]
			}`))
		case "/streams/dash":
			_, _ = w.Write([]byte(upstream))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	rec := doRequest(t, HandleManifest(client, testConfig()), "/api/videos/"+testVideoID+"/manifest.mpd", testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "front.example/proxy/media?")
	require.NotContains(t, body, `media="https://otf.example/`)
}

func TestHandleManifest_IndexedStreamsStayGenerated(t *testing.T) {
	// A backend MPD link does not override generation when the renditions
	// carry byte ranges.
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/streams/details", r.URL.Path)
		payload := detailsPayload[:len(detailsPayload)-1] + `, "dash": "https://upstream.example/dash"}`
		_, _ = w.Write([]byte(payload))
	})

	rec := doRequest(t, HandleManifest(client, testConfig()), "/api/videos/"+testVideoID+"/manifest.mpd", testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `indexRange="740-1259"`)
}

func TestHandleSubtitles(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/streams/subtitles", r.URL.Path)
		_, _ = w.Write([]byte(`[{"url": "https://cdn.example/s.vtt", "code": "en", "mimeType": "text/vtt"}]`))
	})

	rec := doRequest(t, HandleSubtitles(client, testConfig()), "/api/videos/"+testVideoID+"/subtitles", testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tracks []viewmodel.SubtitleTrack
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tracks))
	require.Len(t, tracks, 1)
	require.Equal(t, "English", tracks[0].Label)
	require.Contains(t, tracks[0].URL, "/proxy/media?")
}

func TestHandleThumbnails(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/streams/thumbnails", r.URL.Path)
		_, _ = w.Write([]byte(`[{"urls": ["https://cdn.example/sb.jpg"], "frameWidth": 160, "frameHeight": 90, "framesPerPageX": 5, "framesPerPageY": 5}]`))
	})

	rec := doRequest(t, HandleThumbnails(client, testConfig()), "/api/videos/"+testVideoID+"/thumbnails", testVideoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sb viewmodel.Storyboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sb))
	require.Len(t, sb.Levels, 1)
}

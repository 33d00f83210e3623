package dash

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/streams"
)

func sampleDetails() *api.StreamDetails {
	return &api.StreamDetails{
		Title:    "Sample",
		Duration: 212.5,
		VideoStreams: []api.Stream{
			{
				URL: "https://cdn.example/video-720.mp4", Format: "MPEG_4",
				Codec: "avc1.64001f", Bitrate: 1_500_000, VideoOnly: true,
				Width: 1280, Height: 720, FPS: 30,
				InitStart: 0, InitEnd: 739, IndexStart: 740, IndexEnd: 1259,
			},
			{
				URL: "https://cdn.example/video-1080.webm", Format: "WEBM",
				Codec: "vp9", Bitrate: 3_000_000, VideoOnly: true,
				Width: 1920, Height: 1080, FPS: 30,
				InitStart: 0, InitEnd: 219, IndexStart: 220, IndexEnd: 819,
			},
			{
				// Muxed fallback stream, must not appear in the manifest.
				URL: "https://cdn.example/muxed-360.mp4", Format: "MPEG_4",
				Codec: "avc1.4d401e", Bitrate: 600_000, VideoOnly: false,
				Width: 640, Height: 360,
			},
		},
		AudioStreams: []api.Stream{
			{
				URL: "https://cdn.example/audio-en.m4a", Format: "M4A",
				Codec: "mp4a.40.2", Bitrate: 128_000,
				AudioTrackID: "en.0", AudioTrackLocale: "en-US", AudioTrackType: "original",
				InitStart: 0, InitEnd: 631, IndexStart: 632, IndexEnd: 1335,
			},
			{
				URL: "https://cdn.example/audio-de.m4a", Format: "M4A",
				Codec: "mp4a.40.2", Bitrate: 128_000,
				AudioTrackID: "de.3", AudioTrackLocale: "de-DE", AudioTrackType: "dubbed",
				InitStart: 0, InitEnd: 631, IndexStart: 632, IndexEnd: 1335,
			},
		},
	}
}

func TestGenerate_GroupsAndRanges(t *testing.T) {
	mpd, err := Generate(sampleDetails(), Options{})
	require.NoError(t, err)

	require.Equal(t, Namespace, mpd.XMLNS)
	require.Equal(t, "static", mpd.Type)
	require.Equal(t, ProfileOnDemand, mpd.Profiles)
	require.Equal(t, "PT212.500S", mpd.MediaPresentationDuration)
	require.Len(t, mpd.Periods, 1)

	// video/mp4, video/webm, audio en, audio de
	sets := mpd.Periods[0].AdaptationSets
	require.Len(t, sets, 4)

	require.Equal(t, "video/mp4", sets[0].MimeType)
	require.Len(t, sets[0].Representations, 1)
	rep := sets[0].Representations[0]
	require.Equal(t, "avc1.64001f", rep.Codecs)
	require.Equal(t, 1280, rep.Width)
	require.Equal(t, "https://cdn.example/video-720.mp4", rep.BaseURL)
	require.NotNil(t, rep.SegmentBase)
	require.Equal(t, "740-1259", rep.SegmentBase.IndexRange)
	require.NotNil(t, rep.SegmentBase.Initialization)
	require.Equal(t, "0-739", rep.SegmentBase.Initialization.Range)

	require.Equal(t, "video/webm", sets[1].MimeType)

	require.Equal(t, "audio/mp4", sets[2].MimeType)
	require.Equal(t, "en-US", sets[2].Lang)
	require.NotNil(t, sets[2].Role)
	require.Equal(t, "main", sets[2].Role.Value)

	require.Equal(t, "de-DE", sets[3].Lang)
	require.Equal(t, "alternate", sets[3].Role.Value)

	// AdaptationSet IDs are sequential.
	for i, set := range sets {
		require.Equal(t, i, set.ID)
	}
}

func TestGenerate_SkipsMuxedStreams(t *testing.T) {
	mpd, err := Generate(sampleDetails(), Options{})
	require.NoError(t, err)

	out, err := Encode(mpd)
	require.NoError(t, err)
	require.NotContains(t, string(out), "muxed-360")
	require.True(t, strings.HasPrefix(string(out), "<?xml"))
}

func TestGenerate_NoStreams(t *testing.T) {
	_, err := Generate(&api.StreamDetails{}, Options{})
	require.ErrorIs(t, err, streams.ErrNoStreams)

	_, err = Generate(nil, Options{})
	require.ErrorIs(t, err, streams.ErrNoStreams)
}

func TestGenerate_MalformedRangesDegrade(t *testing.T) {
	d := &api.StreamDetails{
		Duration: 10,
		VideoStreams: []api.Stream{
			{URL: "https://cdn.example/v", Codec: "avc1.64001f", VideoOnly: true, Height: 720, IndexStart: 500, IndexEnd: 100},
		},
	}
	mpd, err := Generate(d, Options{})
	require.NoError(t, err)
	require.Nil(t, mpd.Periods[0].AdaptationSets[0].Representations[0].SegmentBase)
}

func TestGenerate_ProxyRewrite(t *testing.T) {
	mpd, err := Generate(sampleDetails(), Options{ProxyBaseURL: "https://front.example"})
	require.NoError(t, err)

	rep := mpd.Periods[0].AdaptationSets[0].Representations[0]
	u, err := url.Parse(rep.BaseURL)
	require.NoError(t, err)
	require.Equal(t, "front.example", u.Host)
	require.Equal(t, "/proxy/media", u.Path)
	require.Equal(t, "https://cdn.example/video-720.mp4", u.Query().Get("url"))
	require.Equal(t, "cdn.example", u.Query().Get("host"))
}

func TestParse_RoundTrip(t *testing.T) {
	mpd, err := Generate(sampleDetails(), Options{})
	require.NoError(t, err)
	out, err := Encode(mpd)
	require.NoError(t, err)

	parsed, err := Parse(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Equal(t, mpd.MediaPresentationDuration, parsed.MediaPresentationDuration)
	require.Len(t, parsed.Periods[0].AdaptationSets, 4)
	require.Equal(t, "740-1259",
		parsed.Periods[0].AdaptationSets[0].Representations[0].SegmentBase.IndexRange)
}

func TestParse_UpstreamLiveManifest_Rewrite(t *testing.T) {
	const live = `<?xml version="1.0" encoding="utf-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" profiles="urn:mpeg:dash:profile:isoff-live:2011" type="dynamic" minimumUpdatePeriod="PT2S">
  <Period id="0">
    <AdaptationSet id="0" mimeType="video/mp4" subsegmentAlignment="true">
      <Representation id="137" codecs="avc1.640028" bandwidth="4400000" width="1920" height="1080">
        <SegmentTemplate timescale="1000" duration="2000" startNumber="1"
          initialization="https://live.example/init.mp4"
          media="https://live.example/seg-$Number$.m4s"/>
      </Representation>
    </AdaptationSet>
  </Period>
</MPD>`

	mpd, err := Parse(strings.NewReader(live))
	require.NoError(t, err)
	require.Equal(t, "dynamic", mpd.Type)

	RewriteBaseURLs(mpd, "https://front.example/")

	tmpl := mpd.Periods[0].AdaptationSets[0].Representations[0].SegmentTemplate
	require.NotNil(t, tmpl)
	require.Contains(t, tmpl.Initialization, "https://front.example/proxy/media?")
	require.Contains(t, tmpl.Media, "host=live.example")
}

func TestProxyURL(t *testing.T) {
	require.Equal(t, "seg-1.m4s", ProxyURL("https://front.example", "seg-1.m4s"))
	require.Equal(t, "", ProxyURL("https://front.example", ""))
	require.Equal(t, "https://cdn.example/x", ProxyURL("", "https://cdn.example/x"))

	got := ProxyURL("https://front.example", "https://cdn.example/x?a=1")
	u, err := url.Parse(got)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/x?a=1", u.Query().Get("url"))
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "PT0S", FormatDuration(0))
	require.Equal(t, "PT0S", FormatDuration(-5))
	require.Equal(t, "PT61.000S", FormatDuration(61))
	require.Equal(t, "PT212.500S", FormatDuration(212.5))
}

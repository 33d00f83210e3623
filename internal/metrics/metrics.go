// package metrics holds the process-wide Prometheus-style counters.
package metrics

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// UpstreamRequest counts one call to a backend API endpoint.
func UpstreamRequest(endpoint string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`upstream_requests_total{endpoint=%q}`, endpoint)).Inc()
}

// UpstreamError counts one failed call to a backend API endpoint.
func UpstreamError(endpoint string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`upstream_errors_total{endpoint=%q}`, endpoint)).Inc()
}

// ManifestGenerated counts one successfully built DASH manifest.
func ManifestGenerated() {
	metrics.GetOrCreateCounter(`dash_manifests_generated_total`).Inc()
}

// ProxyBytes counts bytes streamed through the media proxy.
func ProxyBytes(n int64) {
	if n > 0 {
		metrics.GetOrCreateCounter(`proxy_bytes_total`).Add(int(n))
	}
}

// WritePrometheus dumps all registered metrics in Prometheus text format.
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, true)
}

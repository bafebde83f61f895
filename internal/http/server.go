package httpx

import (
	"net/http"

	"github.com/seoagent/hostprobe/internal/metrics"
)

// NewMux assembles the detection API handler chain. Middleware order is
// logging outermost, then metrics, then auth, then CORS.
func NewMux(e Env, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", e.Healthz)
	mux.HandleFunc("/readyz", e.Readyz)
	mux.HandleFunc("/v1/detect", e.Detect)
	mux.HandleFunc("/v1/quick", e.Quick)
	mux.HandleFunc("/v1/providers", e.Providers)
	mux.HandleFunc("/v1/instructions", e.Instructions)

	return RequestLogger(MetricsMiddleware(m)(bearerAuth(e.Cfg.APIToken, cors(mux))))
}

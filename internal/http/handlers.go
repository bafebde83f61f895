package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seoagent/hostprobe/internal/catalog"
	"github.com/seoagent/hostprobe/internal/detect"
	cfg "github.com/seoagent/hostprobe/pkg/config"
)

type Env struct {
	Cfg      cfg.Config
	Detector *detect.Detector
	Catalog  *catalog.Catalog
}

func (e Env) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (e Env) Readyz(w http.ResponseWriter, r *http.Request) {
	if e.Detector == nil || e.Catalog == nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// GET /v1/detect?domain=example.com&identity=site-123&ua=MyBot/2.0
//
// Runs the full three-pass detection. The optional ua parameter overrides
// the probe User-Agent for this call only. Probe failures are not errors: an
// unreachable domain yields an empty candidate list with confidence 0.
func (e Env) Detect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	domain := q.Get("domain")
	if domain == "" {
		http.Error(w, "missing domain parameter", http.StatusBadRequest)
		return
	}
	identity := q.Get("identity")

	var opts []detect.RunOption
	if ua := q.Get("ua"); ua != "" {
		opts = append(opts, detect.ForUserAgent(ua))
	}

	res, err := e.Detector.Detect(r.Context(), domain, identity, opts...)
	if err != nil {
		if errors.Is(err, detect.ErrBadDomain) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "detection failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /v1/quick?domain=example.com
//
// Single-request header sniff. A network failure is reported as no signal,
// not an error, so callers can treat quick mode as strictly best-effort.
func (e Env) Quick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		http.Error(w, "missing domain parameter", http.StatusBadRequest)
		return
	}

	provider, err := e.Detector.QuickDetect(r.Context(), domain)
	if err != nil && errors.Is(err, detect.ErrBadDomain) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"domain":   domain,
		"provider": provider,
		"detected": provider != "",
	})
}

// providerInfo is the /v1/providers listing shape.
type providerInfo struct {
	Provider      string           `json:"provider"`
	Profile       *catalog.Profile `json:"profile,omitempty"`
	DetectionOnly bool             `json:"detection_only"`
}

// GET /v1/providers lists every provider the catalog can detect, in
// catalog declaration order.
func (e Env) Providers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	names := e.Catalog.Providers()
	out := make([]providerInfo, 0, len(names))
	for _, name := range names {
		info := providerInfo{Provider: name, DetectionOnly: true}
		if p, ok := e.Catalog.Profile(name); ok {
			prof := p
			info.Profile = &prof
			info.DetectionOnly = false
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": out})
}

// GET /v1/instructions?provider=cloudflare&domain=example.com
//
// Returns setup guidance for wiring a detected provider. Pure catalog
// lookup; no probes are made.
func (e Env) Instructions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	provider := q.Get("provider")
	if provider == "" {
		http.Error(w, "missing provider parameter", http.StatusBadRequest)
		return
	}
	domain := q.Get("domain")
	if domain == "" {
		domain = "your domain"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"provider":     provider,
		"domain":       domain,
		"instructions": detect.IntegrationInstructions(e.Catalog, provider, domain),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

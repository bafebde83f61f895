package detect

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// probeReply carries the parts of a HEAD response the passes inspect.
// Bodies are never read.
type probeReply struct {
	status  int
	headers http.Header
}

// head issues a single HEAD probe with the per-probe timeout. Every failure
// is the caller's "no signal", never a run-level error.
func (d *Detector) head(ctx context.Context, client *http.Client, method Method, target, userAgent string) (*probeReply, error) {
	pctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(pctx, http.MethodHead, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	if d.metrics != nil {
		d.metrics.IncrementProbes(string(method))
	}
	resp, err := client.Do(req)
	if err != nil {
		if d.metrics != nil {
			d.metrics.IncrementProbeErrors(string(method))
		}
		return nil, err
	}
	defer resp.Body.Close()
	return &probeReply{status: resp.StatusCode, headers: resp.Header.Clone()}, nil
}

// headerPass issues one redirect-following HEAD and scores every provider by
// the fraction of its declared header signatures found on the response.
func (d *Detector) headerPass(ctx context.Context, normURL, userAgent string) passResult {
	out := passResult{scores: make(map[string]float64)}

	reply, err := d.head(ctx, d.client, MethodHeaders, normURL, userAgent)
	if err != nil {
		logProbeError(MethodHeaders, normURL, err)
		return out
	}

	for _, fp := range d.catalog.Fingerprints() {
		total := len(fp.Headers)
		if total == 0 {
			continue
		}
		names := make([]string, 0, total)
		for name := range fp.Headers {
			names = append(names, name)
		}
		sort.Strings(names)

		sigWeight := headerMethodMax / float64(total)
		matched := 0
		for _, name := range names {
			observed := reply.headers.Get(name)
			if observed == "" || !fp.Headers[name].Matches(observed) {
				continue
			}
			matched++
			out.matches = append(out.matches, Match{
				Method:   MethodHeaders,
				Provider: fp.Provider,
				Signal:   name,
				Observed: observed,
				Pattern:  fp.Headers[name].Pattern(),
				Weight:   sigWeight,
			})
		}
		if matched > 0 {
			out.scores[fp.Provider] = float64(matched) / float64(total) * headerMethodMax
		}
	}
	return out
}

// dnsPass probes both schemes without following redirects and tests any
// Location target against the DNS signatures. This is deliberately not real
// DNS resolution; redirect targets are the only client-side evidence used,
// and each match carries a flat, lower weight than header evidence.
func (d *Detector) dnsPass(ctx context.Context, host, userAgent string) passResult {
	out := passResult{scores: make(map[string]float64)}

	for _, scheme := range []string{"https", "http"} {
		target := scheme + "://" + host
		reply, err := d.head(ctx, d.noRedirect, MethodDNS, target, userAgent)
		if err != nil {
			logProbeError(MethodDNS, target, err)
			continue
		}
		location := reply.headers.Get("Location")
		if location == "" {
			continue
		}
		lower := strings.ToLower(location)
		for _, fp := range d.catalog.Fingerprints() {
			for _, sig := range fp.DNS {
				if strings.Contains(lower, sig) {
					out.scores[fp.Provider] += dnsMatchWeight
					out.matches = append(out.matches, Match{
						Method:   MethodDNS,
						Provider: fp.Provider,
						Signal:   target,
						Observed: location,
						Pattern:  sig,
						Weight:   dnsMatchWeight,
					})
					break
				}
			}
		}
	}
	return out
}

// pathPass probes every declared provider path concurrently, bounded by the
// configured worker limit and per-target rate limiter. A response status the
// origin actively routed (200, 403, 404) counts as a match.
func (d *Detector) pathPass(ctx context.Context, normURL, userAgent string) passResult {
	out := passResult{scores: make(map[string]float64)}
	limiter := d.newLimiter()
	sem := make(chan struct{}, d.concurrency)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, fp := range d.catalog.Fingerprints() {
		if len(fp.Paths) == 0 {
			continue
		}
		perPath := pathMethodMax / float64(len(fp.Paths))
		for _, path := range fp.Paths {
			wg.Add(1)
			go func(provider, path string, weight float64) {
				defer wg.Done()
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				sem <- struct{}{}
				defer func() { <-sem }()

				target := normURL + path
				reply, err := d.head(ctx, d.client, MethodPaths, target, userAgent)
				if err != nil {
					logProbeError(MethodPaths, target, err)
					return
				}
				switch reply.status {
				case http.StatusOK, http.StatusForbidden, http.StatusNotFound:
					mu.Lock()
					out.scores[provider] += weight
					out.matches = append(out.matches, Match{
						Method:   MethodPaths,
						Provider: provider,
						Signal:   path,
						Observed: strconv.Itoa(reply.status),
						Pattern:  "200|403|404",
						Weight:   weight,
					})
					mu.Unlock()
				}
			}(fp.Provider, path, perPath)
		}
	}
	wg.Wait()

	// Goroutine completion order is arbitrary; fix the audit order.
	sort.SliceStable(out.matches, func(i, j int) bool {
		a, b := out.matches[i], out.matches[j]
		if a.Provider != b.Provider {
			return d.catalog.Rank(a.Provider) < d.catalog.Rank(b.Provider)
		}
		return a.Signal < b.Signal
	})
	return out
}

package main

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/seoagent/hostprobe/internal/detect"
)

// generateSampleRecords creates representative detection records for
// exercising sinks without probing any real domain.
func generateSampleRecords() []detect.Record {
	now := time.Now().UTC()

	return []detect.Record{
		{
			RunID:             uuid.New().String(),
			Identity:          "site-" + uuid.New().String()[:8],
			Domain:            "example.com",
			NormalizedURL:     "https://example.com",
			Primary:           "cloudflare",
			OverallConfidence: 100,
			Candidates: []detect.Candidate{
				{Provider: "cloudflare", Confidence: 100},
			},
			MethodsUsed: []string{"headers:cloudflare", "dns:cloudflare"},
			Matches: []detect.Match{
				{Method: detect.MethodHeaders, Provider: "cloudflare", Signal: "cf-ray", Observed: "7f2ab3c9d-SJC", Pattern: "(?i)^[0-9a-f]+-[a-z]+$", Weight: 50},
				{Method: detect.MethodHeaders, Provider: "cloudflare", Signal: "server", Observed: "cloudflare", Pattern: "cloudflare", Weight: 50},
				{Method: detect.MethodDNS, Provider: "cloudflare", Signal: "https://example.com", Observed: "https://example.com.cdn.cloudflare.net/", Pattern: "cloudflare.net", Weight: 30},
			},
			UserAgent:  "SEOAgent-HostProbe/1.0 (+https://seoagent.com)",
			DurationMs: 412,
			DetectedAt: now,
		},
		{
			RunID:             uuid.New().String(),
			Identity:          "site-" + uuid.New().String()[:8],
			Domain:            "blog.example.org",
			NormalizedURL:     "https://blog.example.org",
			Primary:           "vercel",
			OverallConfidence: 50,
			Candidates: []detect.Candidate{
				{Provider: "vercel", Confidence: 50},
			},
			MethodsUsed: []string{"headers:vercel"},
			Matches: []detect.Match{
				{Method: detect.MethodHeaders, Provider: "vercel", Signal: "x-vercel-id", Observed: "sfo1::abc123", Pattern: ".+", Weight: 50},
			},
			UserAgent:  "SEOAgent-HostProbe/1.0 (+https://seoagent.com)",
			DurationMs: 389,
			DetectedAt: now.Add(1 * time.Second),
		},
		{
			RunID:             uuid.New().String(),
			Identity:          "site-" + uuid.New().String()[:8],
			Domain:            "shop.example.net",
			NormalizedURL:     "https://shop.example.net",
			Primary:           "shopify",
			OverallConfidence: 70,
			Candidates: []detect.Candidate{
				{Provider: "shopify", Confidence: 70},
			},
			MethodsUsed: []string{"headers:shopify", "paths:shopify"},
			Matches: []detect.Match{
				{Method: detect.MethodHeaders, Provider: "shopify", Signal: "x-shopid", Observed: "12345678", Pattern: ".+", Weight: 50},
				{Method: detect.MethodPaths, Provider: "shopify", Signal: "/cart.js", Observed: "200", Pattern: "200|403|404", Weight: 40},
			},
			UserAgent:  "SEOAgent-HostProbe/1.0 (+https://seoagent.com)",
			DurationMs: 958,
			DetectedAt: now.Add(2 * time.Second),
		},
		{
			RunID:             uuid.New().String(),
			Identity:          "site-" + uuid.New().String()[:8],
			Domain:            "unknown-host.example",
			NormalizedURL:     "https://unknown-host.example",
			OverallConfidence: 0,
			UserAgent:         "SEOAgent-HostProbe/1.0 (+https://seoagent.com)",
			DurationMs:        5021,
			DetectedAt:        now.Add(3 * time.Second),
		},
	}
}

// runTestMode pushes sample records through the sink fan-out.
func runTestMode(emitFn func(detect.Record)) {
	log.Println("TEST MODE: generating sample detection records...")

	records := generateSampleRecords()

	for i, rec := range records {
		log.Printf("sending sample record %d/%d: %s (%s)", i+1, len(records), rec.Domain, rec.RunID)
		emitFn(rec)

		if i < len(records)-1 {
			time.Sleep(200 * time.Millisecond)
		}
	}

	log.Println("TEST MODE: all sample records sent")
}

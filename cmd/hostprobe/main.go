package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/seoagent/hostprobe/internal/catalog"
	"github.com/seoagent/hostprobe/internal/detect"
	httpx "github.com/seoagent/hostprobe/internal/http"
	"github.com/seoagent/hostprobe/internal/metrics"
	"github.com/seoagent/hostprobe/internal/sink"
	"github.com/seoagent/hostprobe/pkg/config"
)

// initializeSinks starts every configured output. A sink that fails to
// start is logged and skipped; detection never depends on persistence.
func initializeSinks(ctx context.Context, outputs []string) []sink.Sink {
	var sinks []sink.Sink
	for _, out := range outputs {
		var s sink.Sink
		switch strings.ToLower(strings.TrimSpace(out)) {
		case "log":
			s = sink.NewLogSink()
		case "kafka":
			s = sink.NewKafkaSinkFromEnv()
		case "postgres", "pg":
			s = sink.NewPGSinkFromEnv()
		case "":
			continue
		default:
			log.Printf("unknown output %q, skipping", out)
			continue
		}
		if err := s.Start(ctx); err != nil {
			log.Printf("sink %s failed to start: %v", s.Name(), err)
			continue
		}
		log.Printf("sink %s started", s.Name())
		sinks = append(sinks, s)
	}
	return sinks
}

func closeSinks(sinks []sink.Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			log.Printf("sink %s close: %v", s.Name(), err)
		}
	}
}

// runOnce probes each domain from the command line and prints results as
// JSON, one document per domain.
func runOnce(ctx context.Context, det *detect.Detector, domains []string) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	exitCode := 0
	for _, domain := range domains {
		res, err := det.Detect(ctx, domain, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "hostprobe: %s: %v\n", domain, err)
			exitCode = 1
			continue
		}
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "hostprobe: encode result: %v\n", err)
			exitCode = 1
		}
	}
	return exitCode
}

func main() {
	cfg := config.Load()
	m := metrics.InitMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sinks := initializeSinks(ctx, cfg.Outputs)
	defer closeSinks(sinks)
	emit := sink.FanOut(m, sinks...)

	cat := catalog.Default()
	det := detect.New(cat,
		detect.WithUserAgent(cfg.UserAgent),
		detect.WithTimeout(cfg.ProbeTimeout),
		detect.WithConcurrency(cfg.PathConcurrency),
		detect.WithProbeRate(cfg.ProbeRate),
		detect.WithEmitter(emit),
		detect.WithMetrics(m),
	)

	if os.Getenv("TEST_MODE") == "true" {
		runTestMode(emit)
		return
	}

	// One-shot mode: probe the given domains and exit.
	if args := os.Args[1:]; len(args) > 0 {
		code := runOnce(ctx, det, args)
		closeSinks(sinks)
		os.Exit(code)
	}

	metricsCfg := metrics.LoadConfig()
	metricsSrv := metrics.NewServer(metricsCfg)
	if err := metricsSrv.Start(ctx); err != nil {
		log.Fatalf("metrics server: %v", err)
	}

	env := httpx.Env{
		Cfg:      cfg,
		Detector: det,
		Catalog:  cat,
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: httpx.NewMux(env, m),
	}

	go func() {
		log.Printf("hostprobe listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
}

// Command finder runs the catalogue -> Exchange Graph -> Chain Finder flow:
// it loads pairs from a catalogue, builds the graph, optionally starts the
// event-ingestion pipeline against a live WebSocket endpoint, and on demand
// scans the graph for profitable arbitrage cycles.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/catalogue"
	"github.com/dexgraph/arbiscan/chainfinder"
	arbconfig "github.com/dexgraph/arbiscan/config"
	"github.com/dexgraph/arbiscan/exchangegraph"
	"github.com/dexgraph/arbiscan/ingest"
	"github.com/dexgraph/arbiscan/logging"
	"github.com/dexgraph/arbiscan/pair"
)

func main() {
	rootLogHandler := slog.NewJSONHandler(os.Stdout, nil)
	rootLogger := slog.New(rootLogHandler)
	logger := slogLogger{rootLogger}

	configPath := flag.String("config", "config.yaml", "Path to the configuration file.")
	startToken := flag.String("start-token", "", "Token symbol to scan for arbitrage cycles (skips the scan if empty).")
	liveIngest := flag.Bool("live", false, "Start the event ingestion pipeline against the configured WSS endpoints.")
	flag.Parse()

	cfg, err := arbconfig.Load(*configPath)
	if err != nil {
		rootLogger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.WSSURLsWarning != "" {
		rootLogger.Warn(cfg.WSSURLsWarning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Reserved for graph/pipeline metric registration as the ingestion
	// pipeline grows instrumentation; not yet exercised.
	_ = prometheus.DefaultRegisterer

	store := catalogue.NewMemStore()
	pairs, err := store.LoadPairsByFilter(ctx, catalogue.Filter{})
	if err != nil {
		rootLogger.Error("failed to load pairs from catalogue", "error", err)
		os.Exit(1)
	}

	graph := exchangegraph.New(logger)
	inserted := graph.BuildFrom(pairs)
	rootLogger.Info("exchange graph built", "pairs_loaded", len(pairs), "edges_inserted", inserted)

	if *liveIngest {
		runIngest(ctx, cfg, graph, pairs, logger, rootLogger)
	}

	if *startToken == "" {
		return
	}

	finderCfg := chainfinder.Config{
		MaxHops:             4,
		MinProfitPercentage: 0.1,
		MaxSlippage:         0.02,
		MinLiquidity:        decimal.NewFromInt(1000),
		MaxRiskScore:        0.8,
		MaxChainsPerToken:   10,
		MinAmountThreshold:  decimal.NewFromFloat(0.01),
		EnableEarlyPruning:  true,
	}
	finder := chainfinder.New(graph, finderCfg)

	chains, err := finder.FindChains(*startToken)
	if err != nil {
		rootLogger.Error("chain search failed", "start_token", *startToken, "error", err)
		os.Exit(1)
	}

	rootLogger.Info("chain search complete", "start_token", *startToken, "chains_found", len(chains))
	for i, chain := range chains {
		rootLogger.Info("ranked chain",
			"rank", i+1,
			"hops", len(chain.Hops),
			"net_profit", chain.NetProfit.String(),
			"profit_percentage", chain.ProfitPercentage,
			"risk_score", chain.RiskScore,
		)
	}
}

// runIngest dials the first healthy configured endpoint and runs the
// ingestion pipeline until ctx is canceled or a subscription ends,
// consuming display messages on a background goroutine so the pipeline's
// bounded channel never blocks the caller.
func runIngest(ctx context.Context, cfg *arbconfig.Config, graph *exchangegraph.Graph, pairs []pair.Record, logger logging.Logger, rootLogger *slog.Logger) {
	client, url, err := ingest.DialHealthy(ctx, cfg.WSSURLs, logger)
	if err != nil {
		rootLogger.Error("ingest: no healthy endpoint, continuing without live updates", "error", err)
		return
	}
	rootLogger.Info("ingest: dialed endpoint", "url", url)

	pipeline := ingest.New(client, graph, pairs, ingest.WithLogger(logger))

	go func() {
		for msg := range pipeline.Display() {
			rootLogger.Debug("display message", "message", msg.String())
		}
	}()

	go func() {
		if err := <-pipeline.Err(); err != nil {
			rootLogger.Error("ingest: pipeline stopped", "error", err)
		}
	}()

	go pipeline.Run(ctx)
}

type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

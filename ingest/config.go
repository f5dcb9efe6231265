// Package ingest maintains near-real-time freshness of an Exchange Graph by
// subscribing to on-chain swap logs for a configured set of pair contracts
// and decoding them into per-pair updates, mirroring how the reference
// chain client dials a stream and fans a decoded state out to consumers.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/dexgraph/arbiscan/logging"
)

// DefaultEndpoint is used, with a warning, when no WSS_URLS are configured.
const DefaultEndpoint = "wss://example-default-endpoint.invalid/ws"

// probeTimeout bounds the single block-number read used to health-check an
// endpoint before committing to it.
const probeTimeout = 5 * time.Second

// DialHealthy tries each endpoint in order, health-probing it with a single
// block-number read, and returns the client for the first one that
// succeeds. An empty endpoints list is not valid; callers needing the
// documented env-var fallback should pass []string{DefaultEndpoint}
// themselves and log the warning.
func DialHealthy(ctx context.Context, endpoints []string, logger logging.Logger) (*ethclient.Client, string, error) {
	if logger == nil {
		logger = logging.Nop{}
	}
	if len(endpoints) == 0 {
		return nil, "", fmt.Errorf("ingest: no endpoints configured")
	}

	var lastErr error
	for _, url := range endpoints {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			logger.Warn("ingest: dial failed, trying next endpoint", "url", url, "error", err)
			lastErr = err
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		_, err = client.BlockNumber(probeCtx)
		cancel()
		if err != nil {
			logger.Warn("ingest: health probe failed, trying next endpoint", "url", url, "error", err)
			client.Close()
			lastErr = err
			continue
		}

		logger.Info("ingest: connected", "url", url)
		return client, url, nil
	}

	return nil, "", fmt.Errorf("ingest: no endpoint passed health probe, last error: %w", lastErr)
}

package app

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// keepalive periodically pings an external URL so free-tier hosts don't put
// the process to sleep. Disabled when no URL is configured.
type keepalive struct {
	url      string
	interval time.Duration
	httpc    *http.Client
	log      *zerolog.Logger
}

func newKeepalive(url string, interval time.Duration, logger *zerolog.Logger) *keepalive {
	return &keepalive{
		url:      url,
		interval: interval,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		log:      logger,
	}
}

func (k *keepalive) run(ctx context.Context) {
	if k.url == "" || k.interval <= 0 {
		return
	}

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			k.ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (k *keepalive) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		k.log.Warn().Err(err).Msg("keepalive request build failed")
		return
	}

	resp, err := k.httpc.Do(req)
	if err != nil {
		k.log.Warn().Err(err).Str("url", k.url).Msg("keepalive ping failed")
		return
	}
	resp.Body.Close()

	k.log.Debug().Str("url", k.url).Int("status", resp.StatusCode).Msg("keepalive ping")
}

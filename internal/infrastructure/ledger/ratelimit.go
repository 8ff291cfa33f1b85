package ledger

import (
	"context"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"golang.org/x/time/rate"
)

// RateLimitedClient spaces out response submissions with a token bucket
// shared by every oracle. Other calls are not limited.
type RateLimitedClient struct {
	application.Ledger
	limiter *rate.Limiter
}

func NewRateLimitedClient(inner application.Ledger, cfg config.DispatchConfig) *RateLimitedClient {
	limit := rate.Limit(cfg.SubmitRate)
	if cfg.SubmitRate <= 0 {
		limit = rate.Inf
	}
	burst := cfg.SubmitBurst
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		Ledger:  inner,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (c *RateLimitedClient) SubmitResponse(ctx context.Context, from domain.Address, resp domain.OracleResponse) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.Ledger.SubmitResponse(ctx, from, resp)
}

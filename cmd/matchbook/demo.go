package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/efreitasn/matchbook/internal/domain"
	"github.com/efreitasn/matchbook/internal/service"
)

const (
	demoBasePrice = 50000
	demoPriceStep = 10
	demoQuantity  = 100
)

// demoOrder returns the i-th order of the demo flow: even indexes bid,
// odd indexes ask, prices cycling over five levels above the base.
func demoOrder(i int) service.SubmitOrderRequest {
	side := domain.SideAsk
	if i%2 == 0 {
		side = domain.SideBid
	}
	return service.SubmitOrderRequest{
		ID:       uint64(i),
		Side:     side,
		Price:    demoBasePrice + int64(i%5)*demoPriceStep,
		Quantity: demoQuantity,
	}
}

// runDemo submits n demo orders through feed from producers goroutines.
// Producer p sends every order whose index is congruent to p modulo
// producers, so a single producer replays the sequence in order.
func runDemo(ctx context.Context, feed *service.Feed, n, producers int, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < producers; p++ {
		p := p
		g.Go(func() error {
			for i := p; i < n; i += producers {
				res, err := feed.Submit(ctx, demoOrder(i))
				if err != nil {
					return fmt.Errorf("submit demo order %d: %w", i, err)
				}
				if len(res.Fills) > 0 {
					logger.Info("order matched",
						slog.Uint64("order_id", res.Order.ID),
						slog.Int("fills", len(res.Fills)),
						slog.Int("producer", p),
					)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

package notification

import (
	"context"
	"time"

	"SDRAdmin/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ExpirySweeper periodically deletes notifications past their expiresAt.
type ExpirySweeper struct {
	service  *NotificationService
	interval time.Duration
	logger   *zap.Logger
}

// NewExpirySweeper creates a sweeper ticking every NotificationSweepInterval.
func NewExpirySweeper(service *NotificationService, cfg *config.Config, logger *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{service: service, interval: cfg.NotificationSweepInterval, logger: logger}
}

// Start registers the sweep loop with the fx lifecycle.
func (s *ExpirySweeper) Start(lc fx.Lifecycle) {
	var (
		ticker *time.Ticker
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("starting notification expiry sweeper", zap.Duration("interval", s.interval))
			var sweepCtx context.Context
			sweepCtx, cancel = context.WithCancel(context.Background())
			ticker = time.NewTicker(s.interval)
			done = make(chan struct{})
			go func() {
				defer close(done)
				for {
					select {
					case now := <-ticker.C:
						s.Sweep(sweepCtx, now)
					case <-sweepCtx.Done():
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("stopping notification expiry sweeper")
			ticker.Stop()
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}

// Sweep purges notifications expired at now and logs the outcome.
func (s *ExpirySweeper) Sweep(ctx context.Context, now time.Time) {
	removed, err := s.service.PurgeExpired(ctx, now)
	if err != nil {
		s.logger.Error("notification sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("expired notifications removed", zap.Int64("count", removed))
	}
}

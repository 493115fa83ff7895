package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plugashop/storefront/config"
	"github.com/plugashop/storefront/internal/core"
	obserrors "github.com/plugashop/storefront/internal/observability/errors"
	"github.com/plugashop/storefront/internal/observability/metrics"
	"github.com/plugashop/storefront/internal/observability/statsd"
)

// CartReaperServiceOptions groups dependencies for CartReaperService.
type CartReaperServiceOptions struct {
	Store   core.CartReaperStore    // Required
	Config  config.CartReaperConfig // Required
	Logger  *slog.Logger            // Optional
	Metrics statsd.Sink             // Optional
}

// CartReaperService prunes carts that have been idle longer than the
// configured retention. Carts carry no TTL of their own, so without the
// reaper abandoned carts accumulate in Redis indefinitely.
type CartReaperService struct {
	store   core.CartReaperStore
	config  config.CartReaperConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewCartReaperService constructs a new CartReaperService.
func NewCartReaperService(opts CartReaperServiceOptions) (*CartReaperService, error) {
	if opts.Store == nil {
		return nil, errors.New("CartReaperStore is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "cart_reaper")
		logger.Debug("CartReaperService initialized",
			"interval", opts.Config.Interval,
			"max_idle", opts.Config.MaxIdle,
			"batch_size", opts.Config.BatchSize,
		)
	}

	return &CartReaperService{
		store:   opts.Store,
		config:  opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Run starts the reaper loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *CartReaperService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting cart reaper",
			"interval", s.config.Interval, "max_idle", s.config.MaxIdle)
	}

	// Jitter keeps multiple instances from sweeping in lockstep.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if err := s.runCleanup(ctx); err != nil {
		s.logCleanupError(err, "initial cleanup")
	}

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "cart reaper stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.runCleanup(ctx); err != nil {
				s.logCleanupError(err, "cleanup")
			}
		}
	}
}

// waitWithJitter delays startup by up to 10% of the interval.
func (s *CartReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

// runCleanup deletes idle carts in batches until a sweep comes back empty.
func (s *CartReaperService) runCleanup(ctx context.Context) error {
	start := time.Now()

	var totalCount int64
	var runErr error
	for {
		count, err := s.store.DeleteIdleCarts(ctx, s.config.MaxIdle, s.config.BatchSize)
		totalCount += count
		if err != nil {
			runErr = err
			break
		}
		if count == 0 {
			break
		}
		// Check context between batches
		if ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}
	}

	s.emitCleanupMetrics(totalCount, time.Since(start), runErr)

	if runErr != nil {
		if isContextCancellation(runErr) {
			return context.Canceled
		}
		return fmt.Errorf("delete idle carts: %w", runErr)
	}

	if totalCount > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "deleted idle carts",
			"count", totalCount,
			"max_idle", s.config.MaxIdle,
		)
	}
	return nil
}

func (s *CartReaperService) emitCleanupMetrics(count int64, elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	} else if count == 0 {
		result = metrics.ResultNoop
	}

	tags := map[string]string{
		"result": result,
	}
	if err != nil {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}

	s.metrics.Count("cart_reaper.cleanup", 1, tags)
	if elapsed > 0 {
		s.metrics.Timing("cart_reaper.cleanup_duration", elapsed, metrics.CloneTags(tags))
	}
	if err == nil {
		if count > 0 {
			s.metrics.Count("cart_reaper.carts_deleted", count, metrics.CloneTags(tags))
		}
		s.metrics.Gauge("cart_reaper.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}

func (s *CartReaperService) logCleanupError(err error, label string) {
	if err == nil || s.logger == nil {
		return
	}
	if isContextCancellation(err) {
		s.logger.Debug(label+" cancelled by context", "error", err)
		return
	}
	s.logger.Error(label+" failed", "error", err)
}

func isContextCancellation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

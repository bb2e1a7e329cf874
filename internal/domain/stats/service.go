package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitness-tracker/backend/internal/cache"
	"fitness-tracker/backend/internal/domain/payment"

	"go.uber.org/zap"
)

const (
	recentLimit = 6
	summaryKey  = "financial-summary"
)

type Payments interface {
	TotalAmount(ctx context.Context) (float64, error)
	DistinctStudents(ctx context.Context) (int, error)
	Recent(ctx context.Context, n int) ([]payment.Record, error)
}

type Subscribers interface {
	Count(ctx context.Context) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	payments    Payments
	subscribers Subscribers
	cache       Cache
	ttl         time.Duration
	log         *zap.Logger
}

// NewService builds the summary service. c may be nil to always recompute.
func NewService(payments Payments, subscribers Subscribers, c Cache, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{payments: payments, subscribers: subscribers, cache: c, ttl: ttl, log: log}
}

func (s *Service) FinancialSummary(ctx context.Context) (*FinancialSummary, error) {
	if s.cache != nil {
		var cached FinancialSummary
		err := s.cache.Get(ctx, summaryKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) && !errors.Is(err, cache.ErrUnavailable) {
			s.log.Warn("summary cache read failed", zap.Error(err))
		}
	}

	out, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summaryKey, out, s.ttl); err != nil {
			s.log.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

// Invalidate drops the cached summary after a new payment.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, summaryKey); err != nil {
		s.log.Warn("summary cache invalidate failed", zap.Error(err))
	}
}

func (s *Service) compute(ctx context.Context) (*FinancialSummary, error) {
	total, err := s.payments.TotalAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}
	subs, err := s.subscribers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}
	paid, err := s.payments.DistinctStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("count paid members: %w", err)
	}
	recent, err := s.payments.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}
	if recent == nil {
		recent = []payment.Record{}
	}

	return &FinancialSummary{
		TotalBalance:     total,
		TotalSubscribers: subs,
		TotalPaidMembers: paid,
		RecentPayments:   recent,
	}, nil
}

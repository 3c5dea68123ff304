// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package billing answers the single premium question the rest of the system
// asks — "is this user premium right now" — and applies Stars payments to
// premium expiry.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

var (
	ErrUsersRequired   = errors.New("billing: user repository is required")
	ErrUnknownPlan     = errors.New("billing: unknown plan code")
	ErrDuplicateCharge = errors.New("billing: charge already applied")
)

// DefaultPlans are the purchasable premium durations.
func DefaultPlans() []core.PremiumPlan {
	return []core.PremiumPlan{
		{Code: "premium_30", Title: "Premium, 1 month", PriceStars: 99, DurationDays: 30, Active: true},
		{Code: "premium_90", Title: "Premium, 3 months", PriceStars: 249, DurationDays: 90, Active: true},
		{Code: "premium_365", Title: "Premium, 1 year", PriceStars: 799, DurationDays: 365, Active: true},
	}
}

// Service owns premium state transitions.
type Service struct {
	users  storage.UserRepository
	plans  map[string]core.PremiumPlan
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPlans replaces the default plan set.
func WithPlans(plans []core.PremiumPlan) Option {
	return func(s *Service) error {
		byCode := make(map[string]core.PremiumPlan, len(plans))
		for _, p := range plans {
			if err := core.ValidatePremiumPlan(&p); err != nil {
				return err
			}
			byCode[p.Code] = p
		}
		s.plans = byCode
		return nil
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		s.now = now
		return nil
	}
}

// NewService creates a billing service backed by the user repository.
func NewService(users storage.UserRepository, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, ErrUsersRequired
	}

	s := &Service{
		users:  users,
		logger: slog.Default(),
		now:    time.Now,
	}
	if err := WithPlans(DefaultPlans())(s); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Plans returns the active plans in a stable, price-ascending order.
func (s *Service) Plans() []core.PremiumPlan {
	plans := make([]core.PremiumPlan, 0, len(s.plans))
	for _, p := range s.plans {
		if p.Active {
			plans = append(plans, p)
		}
	}
	for i := 1; i < len(plans); i++ {
		for j := i; j > 0 && plans[j].PriceStars < plans[j-1].PriceStars; j-- {
			plans[j], plans[j-1] = plans[j-1], plans[j]
		}
	}
	return plans
}

// Plan looks up a plan by code.
func (s *Service) Plan(code string) (core.PremiumPlan, error) {
	plan, ok := s.plans[code]
	if !ok || !plan.Active {
		return core.PremiumPlan{}, fmt.Errorf("%w: %s", ErrUnknownPlan, code)
	}
	return plan, nil
}

// PremiumActive reports whether the user's premium is active right now.
// Unknown users are not premium.
func (s *Service) PremiumActive(ctx context.Context, telegramId int64) (bool, error) {
	user, err := s.users.GetUser(ctx, telegramId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.PremiumActiveAt(s.now()), nil
}

// ApplyPayment records the payment and extends the user's premium by the
// plan's duration. An unexpired premium is extended from its current expiry,
// an expired or absent one from now. Replaying a charge ID is rejected
// without touching expiry.
func (s *Service) ApplyPayment(ctx context.Context, payment *core.StarPayment) (time.Time, error) {
	plan, err := s.Plan(payment.Payload)
	if err != nil {
		return time.Time{}, err
	}

	if existing, err := s.users.GetPayment(ctx, payment.ChargeId); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return time.Time{}, err
	} else if existing != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrDuplicateCharge, payment.ChargeId)
	}

	user, err := s.users.GetUser(ctx, payment.UserId)
	if err != nil {
		return time.Time{}, err
	}

	now := s.now()
	base := now
	if user.PremiumUntil.After(now) {
		base = user.PremiumUntil
	}
	until := base.AddDate(0, 0, plan.DurationDays)

	payment.Status = core.PaymentSucceeded
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	if err := s.users.AddPayment(ctx, payment); err != nil {
		return time.Time{}, err
	}
	if err := s.users.SetPremiumUntil(ctx, payment.UserId, until); err != nil {
		return time.Time{}, err
	}

	s.logger.Info("premium extended",
		"userId", payment.UserId, "plan", plan.Code, "until", until)
	return until, nil
}

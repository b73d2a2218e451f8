// Package daily tracks the escalating daily bonus: last-claim day and
// consecutive streak, claimable at most once per calendar day.
package daily

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lootworks/casesim/internal/domain"
	"github.com/lootworks/casesim/internal/logger"
	"github.com/lootworks/casesim/internal/storage"
)

// ResetPolicy controls the streak when a calendar day is skipped between
// claims.
type ResetPolicy string

const (
	// ResetNone keeps the streak growing across missed days (historical
	// behavior, the default).
	ResetNone ResetPolicy = "none"
	// ResetMissedDay drops the streak back to 1 when the previous claim
	// was not yesterday.
	ResetMissedDay ResetPolicy = "missed-day"
)

// Service owns the daily-reward state. Claims mutate it; everything else is
// read-only. Callers serialize access (the ledger holds the command lock).
type Service struct {
	store  storage.Store
	clock  domain.Clock
	policy ResetPolicy
	state  domain.DailyRewardState
}

// NewService creates the tracker and restores its state from the store.
// A missing or corrupt snapshot falls back to a fresh state: no prior
// claim, streak 1.
func NewService(ctx context.Context, store storage.Store, clock domain.Clock, policy ResetPolicy) *Service {
	log := logger.FromContext(ctx)

	s := &Service{
		store:  store,
		clock:  clock,
		policy: policy,
		state:  domain.DailyRewardState{Streak: 1},
	}

	if v, ok, err := store.Get(ctx, storage.KeyLastDaily); err != nil {
		log.Warn("Failed to read last claim day, starting fresh", "error", err)
	} else if ok {
		if _, parseErr := time.Parse(domain.DayFormat, v); parseErr != nil {
			log.Warn("Corrupt last claim day, starting fresh", "value", v)
		} else {
			s.state.LastClaimDay = v
		}
	}

	if v, ok, err := store.Get(ctx, storage.KeyDailyStreak); err != nil {
		log.Warn("Failed to read streak, starting fresh", "error", err)
	} else if ok {
		streak, parseErr := strconv.Atoi(v)
		if parseErr != nil || streak < 1 {
			log.Warn("Corrupt streak, starting fresh", "value", v)
		} else {
			s.state.Streak = streak
		}
	}

	return s
}

// Claim awards today's bonus: reward = streak x 100, then the streak
// advances by one. A second claim on the same calendar day fails with
// ErrAlreadyClaimed and mutates nothing.
func (s *Service) Claim(ctx context.Context) (*domain.ClaimResult, error) {
	log := logger.FromContext(ctx)
	today := s.clock.Today()

	if s.state.LastClaimDay == today {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyClaimed, today)
	}

	streak := s.effectiveStreak(today)
	reward := domain.Dollars(streak * domain.DailyRewardBase)

	s.state.LastClaimDay = today
	s.state.Streak = streak + 1
	s.persist(ctx)

	log.Info("Daily reward claimed", "day", today, "reward", reward.String(), "streak", s.state.Streak)

	return &domain.ClaimResult{Reward: reward, NewStreak: s.state.Streak}, nil
}

// Status reports whether today's bonus is claimable and what it would pay.
// Once today is claimed, NextReward is tomorrow's payout.
func (s *Service) Status(ctx context.Context) domain.DailyStatus {
	today := s.clock.Today()
	status := domain.DailyStatus{
		Claimable: s.state.LastClaimDay != today,
		Streak:    s.state.Streak,
	}
	if status.Claimable {
		status.NextReward = domain.Dollars(s.effectiveStreak(today) * domain.DailyRewardBase)
	} else {
		status.NextReward = s.state.Reward()
	}
	return status
}

// effectiveStreak applies the reset policy: under ResetMissedDay a claim
// whose predecessor was not yesterday restarts at 1.
func (s *Service) effectiveStreak(today string) int {
	if s.policy == ResetMissedDay && s.state.LastClaimDay != "" && s.state.LastClaimDay != previousDay(today) {
		return 1
	}
	return s.state.Streak
}

// persist is write-behind: failures are logged and the in-memory state
// stays authoritative for the session.
func (s *Service) persist(ctx context.Context) {
	log := logger.FromContext(ctx)
	if err := s.store.Set(ctx, storage.KeyLastDaily, s.state.LastClaimDay); err != nil {
		log.Warn("Failed to persist last claim day", "error", err)
	}
	if err := s.store.Set(ctx, storage.KeyDailyStreak, strconv.Itoa(s.state.Streak)); err != nil {
		log.Warn("Failed to persist streak", "error", err)
	}
}

func previousDay(day string) string {
	t, err := time.Parse(domain.DayFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(domain.DayFormat)
}

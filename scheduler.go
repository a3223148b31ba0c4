package main

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/fuelchain/stationlog_backend/appctx"
	"github.com/fuelchain/stationlog_backend/config"
	"github.com/fuelchain/stationlog_backend/sweep"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SweepScheduler fires each sweep once per day at its configured wall-clock
// time, evaluated in the configured scheduling timezone. It implements no
// cron semantics beyond that: compute next fire, sleep, run, repeat.
type SweepScheduler struct {
	Config *config.SweepConfig
	Engine *sweep.Engine
	Logger *logrus.Logger

	// LockTTL bounds the per-day redislock that guards against a duplicate
	// fire (second process, scheduler mis-fire). Best effort: when Redis is
	// down the sweep still runs.
	LockTTL time.Duration
}

func NewSweepScheduler(cfg *config.SweepConfig, engine *sweep.Engine, logger *logrus.Logger) *SweepScheduler {
	return &SweepScheduler{
		Config:  cfg,
		Engine:  engine,
		Logger:  logger,
		LockTTL: 12 * time.Hour,
	}
}

// Run blocks until ctx is cancelled, driving both daily triggers.
func (s *SweepScheduler) Run(ctx context.Context) {
	go s.loop(ctx, sweep.JobFirstAlert, s.Config.FirstAlertAt, s.Engine.RunFirstAlertSweep)
	s.loop(ctx, sweep.JobEscalation, s.Config.EscalationAt, s.Engine.RunEscalationSweep)
}

func (s *SweepScheduler) loop(ctx context.Context, job string, at string, run func(context.Context) error) {
	hour, minute, err := config.ParseClock(at)
	if err != nil {
		// Config is validated at startup; reaching this means a programming error.
		config.LogError(s.Logger, "scheduler", "loop", job, nil, err)
		return
	}

	for {
		next := nextFireTime(time.Now(), hour, minute, s.Config.Location())
		timer := time.NewTimer(time.Until(next))

		s.Logger.WithFields(logrus.Fields{
			"field": "scheduler",
			"job":   job,
			"at":    next.Format(time.RFC3339),
		}).Info("next sweep scheduled")

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.fire(ctx, job, next, run)
	}
}

func (s *SweepScheduler) fire(ctx context.Context, job string, fireAt time.Time, run func(context.Context) error) {
	if locker := config.GetRedisLock(); locker != nil {
		key := "sweep:" + job + ":" + fireAt.Format("2006-01-02")
		// The lock is never released: holding it for LockTTL is what makes a
		// same-day duplicate fire skip instead of re-notifying everyone.
		_, err := locker.Obtain(ctx, key, s.LockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			s.Logger.WithFields(logrus.Fields{
				"field": "scheduler",
				"job":   job,
				"key":   key,
			}).Warn("sweep already ran today; skipping duplicate fire")
			return
		}
		if err != nil {
			config.LogError(s.Logger, "scheduler", "fire", job+" lock", nil, err)
			// fall through: the lock is best effort
		}
	}

	runCtx := appctx.Set(ctx, appctx.ContextKeyRunId, uuid.NewString())
	if err := run(runCtx); err != nil {
		// Already recorded in the execution log by the engine; the scheduler
		// owns no retry policy.
		config.LogError(s.Logger, "scheduler", "fire", job, nil, err)
	}
}

// nextFireTime is the next occurrence of hour:minute in loc strictly after now.
func nextFireTime(now time.Time, hour, minute int, loc *time.Location) time.Time {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

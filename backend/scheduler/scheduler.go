package scheduler

import (
	"context"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/utils"

	"github.com/go-co-op/gocron"
)

// StreakSweeper zeroes lapsed streaks.
type StreakSweeper interface {
	SweepStaleStreaks(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   StreakSweeper
	log       *utils.Logger
	cfg       *config.Config
}

// New creates a new scheduler instance
func New(cfg *config.Config, sweeper StreakSweeper, log *utils.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		log:       log,
		cfg:       cfg,
	}
}

// Start registers the jobs and runs them in the background. Per-completion
// streaks never lapse, so nothing is scheduled in that mode.
func (s *Scheduler) Start() error {
	if s.cfg.StreakMode != config.StreakDaily {
		s.log.Info("streak sweep disabled", "streak_mode", s.cfg.StreakMode)
		return nil
	}

	_, err := s.scheduler.Every(1).Day().At(s.cfg.StreakSweepAt).Do(s.sweepStreaks)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler started", "streak_sweep_at", s.cfg.StreakSweepAt)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepStreaks() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.sweeper.SweepStaleStreaks(ctx, time.Now())
	if err != nil {
		s.log.Error("streak sweep failed", "error", err)
		return
	}
	s.log.Info("streak sweep finished", "reset", n)
}

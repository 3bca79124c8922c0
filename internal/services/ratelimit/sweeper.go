package ratelimit

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type sweepable interface {
	Sweep() int
}

// Sweeper periodically removes expired rate-limit entries, off the request path.
type Sweeper struct {
	target sweepable
	spec   string
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewSweeper builds a sweeper for a cron spec such as "@every 1m".
func NewSweeper(target sweepable, spec string, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		target: target,
		spec:   spec,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With().Str("component", "RateLimitSweeper").Logger(),
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		s.logger.Error().Err(err).Str("spec", s.spec).Msg("failed to schedule sweep")
		return fmt.Errorf("schedule rate limit sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info().Str("spec", s.spec).Msg("rate limit sweeper started")
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("rate limit sweeper stopped")
}

func (s *Sweeper) run() {
	start := time.Now()
	removed := s.target.Sweep()
	s.logger.Debug().
		Int("removed", removed).
		Dur("duration", time.Since(start)).
		Msg("rate limit sweep finished")
}

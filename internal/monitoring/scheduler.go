package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/services"
)

// rollupSpec is when the daily analytics rollup runs.
const rollupSpec = "0 0 * * *"

// Scheduler checks for and executes time-based content transitions.
type Scheduler struct {
	articleSvc   services.ArticleServiceProvider
	adSvc        services.AdServiceProvider
	pollSvc      services.PollServiceProvider
	analyticsSvc services.AnalyticsServiceProvider
	ticker       *time.Ticker
	nextRollup   time.Time
	done         chan bool
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(articleSvc services.ArticleServiceProvider, adSvc services.AdServiceProvider, pollSvc services.PollServiceProvider, analyticsSvc services.AnalyticsServiceProvider) *Scheduler {
	return &Scheduler{
		articleSvc:   articleSvc,
		adSvc:        adSvc,
		pollSvc:      pollSvc,
		analyticsSvc: analyticsSvc,
		done:         make(chan bool),
	}
}

// Run starts the scheduler's ticking loop.
func (s *Scheduler) Run() {
	log.Info().Msg("Starting background scheduler...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	rollupSchedule, err := cron.ParseStandard(rollupSpec)
	if err != nil {
		log.Error().Err(err).Str("spec", rollupSpec).Msg("Scheduler: Invalid rollup cron expression")
		return
	}
	s.nextRollup = rollupSchedule.Next(time.Now())

	// Run once immediately on start
	s.runTransitions(time.Now())

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping background scheduler.")
			return
		case now := <-s.ticker.C:
			s.runTransitions(now)
			if now.After(s.nextRollup) {
				s.runRollup(now)
				s.nextRollup = rollupSchedule.Next(now)
			}
		}
	}
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.done <- true
}

// runTransitions applies all due content transitions for the current tick.
func (s *Scheduler) runTransitions(now time.Time) {
	if published, err := s.articleSvc.PublishDueArticles(now); err != nil {
		log.Error().Err(err).Msg("Scheduler: Failed to publish due articles")
	} else if published > 0 {
		log.Info().Int("count", published).Msg("Scheduler: Published scheduled articles")
	}

	if activated, paused, err := s.adSvc.ApplyWindowTransitions(now); err != nil {
		log.Error().Err(err).Msg("Scheduler: Failed to apply ad window transitions")
	} else if activated > 0 || paused > 0 {
		log.Info().Int("activated", activated).Int("paused", paused).Msg("Scheduler: Applied ad window transitions")
	}

	if activated, err := s.pollSvc.ActivateScheduledPolls(now); err != nil {
		log.Error().Err(err).Msg("Scheduler: Failed to activate scheduled polls")
	} else if activated > 0 {
		log.Info().Int("count", activated).Msg("Scheduler: Activated scheduled polls")
	}
}

// runRollup builds the analytics snapshot for the day that just ended.
func (s *Scheduler) runRollup(now time.Time) {
	snapshot, err := s.analyticsSvc.RollupDaily(now)
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: Failed to roll up daily analytics")
		return
	}
	log.Info().Str("snapshot_id", snapshot.ID).Msg("Scheduler: Rolled up daily analytics")
}

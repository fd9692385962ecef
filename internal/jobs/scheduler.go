package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"storefront/api/internal/repository"
)

// Scheduler prunes the audit trail past its retention window. It is the
// only recurring job; session tokens expire on their own and the store
// needs no sweeping.
type Scheduler struct {
	cron      *cron.Cron
	audit     repository.AuditStore
	retention int
	log       zerolog.Logger
}

func NewScheduler(audit repository.AuditStore, retentionDays int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		audit:     audit,
		retention: retentionDays,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if s.audit == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("@daily", s.pruneAudit); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) pruneAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.audit.DeleteOlderThan(ctx, s.retention)
	if err != nil {
		s.log.Error().Err(err).Msg("audit prune failed")
		return
	}
	s.log.Info().Int64("deleted", deleted).Msg("audit trail pruned")
}

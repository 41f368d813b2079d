package registry

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	appincident "github.com/aegisops/actiongate/pkg/app/incident"
	"github.com/aegisops/actiongate/pkg/domain/block"
	"github.com/aegisops/actiongate/pkg/domain/incident"
	"github.com/aegisops/actiongate/pkg/infra/cache"
	"github.com/aegisops/actiongate/pkg/infra/cache/event"
	"github.com/aegisops/actiongate/pkg/infra/prometheus"
)

// BlockResult reports whether the subject transitioned to blocked or was
// already blocked and had its entry refreshed.
type BlockResult struct {
	Entry   *block.Entry
	Created bool
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore --with-expecter
type Service interface {
	// Block is idempotent: repeating it refreshes the entry and reports
	// Created=false instead of failing.
	Block(ctx context.Context, subject block.SubjectKey, reason, actor string, until *time.Time) (BlockResult, error)
	// Unblock is idempotent: removing an absent subject reports removed=false.
	Unblock(ctx context.Context, subject block.SubjectKey, actor string) (bool, error)
	IsBlocked(ctx context.Context, subject block.SubjectKey) (bool, error)
	ListActive(ctx context.Context) ([]block.Entry, error)
}

type service struct {
	logger    *logrus.Logger
	repo      block.Repository
	recorder  appincident.Recorder
	publisher cache.EventPublisher
}

func NewService(
	logger *logrus.Logger,
	repo block.Repository,
	recorder appincident.Recorder,
	publisher cache.EventPublisher,
) Service {
	return &service{
		logger:    logger,
		repo:      repo,
		recorder:  recorder,
		publisher: publisher,
	}
}

func (s *service) Block(
	ctx context.Context,
	subject block.SubjectKey,
	reason, actor string,
	until *time.Time,
) (BlockResult, error) {
	entry := block.NewEntry(subject, reason, actor, until)

	created, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		prometheus.RegistryMutationsTotal.WithLabelValues("block", "error").Inc()
		return BlockResult{}, err
	}

	result := "refreshed"
	if created {
		result = "created"
	}
	prometheus.RegistryMutationsTotal.WithLabelValues("block", result).Inc()
	s.logger.WithFields(logrus.Fields{
		"subject": subject.String(),
		"actor":   actor,
		"result":  result,
	}).Info("subject blocked")

	// Audit and fanout only fire on an actual state transition; a refresh
	// of an existing block stays quiet.
	if created {
		s.audit(ctx, incident.KindAdminBlock, subject, reason, actor)
		s.publish(ctx, subject, true, reason, actor)
	}

	return BlockResult{Entry: entry, Created: created}, nil
}

func (s *service) Unblock(ctx context.Context, subject block.SubjectKey, actor string) (bool, error) {
	removed, err := s.repo.DeleteIfExists(ctx, subject)
	if err != nil {
		prometheus.RegistryMutationsTotal.WithLabelValues("unblock", "error").Inc()
		return false, err
	}

	result := "removed"
	if !removed {
		result = "absent"
	}
	prometheus.RegistryMutationsTotal.WithLabelValues("unblock", result).Inc()
	s.logger.WithFields(logrus.Fields{
		"subject": subject.String(),
		"actor":   actor,
		"result":  result,
	}).Info("subject unblocked")

	if removed {
		s.audit(ctx, incident.KindAdminUnblock, subject, "", actor)
		s.publish(ctx, subject, false, "", actor)
	}

	return removed, nil
}

func (s *service) IsBlocked(ctx context.Context, subject block.SubjectKey) (bool, error) {
	entry, err := s.repo.Find(ctx, subject)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, nil
	}
	return entry.Active(time.Now()), nil
}

func (s *service) ListActive(ctx context.Context) ([]block.Entry, error) {
	return s.repo.ListActive(ctx, time.Now())
}

func (s *service) audit(ctx context.Context, kind string, subject block.SubjectKey, reason, actor string) {
	record := &incident.Record{
		Principal: "-",
		Address:   "-",
		Kind:      kind,
		Reason:    reason,
		Detail: incident.DetailJSON{
			"subject_key": subject.String(),
			"actor":       actor,
		},
	}
	switch subject.Kind {
	case block.SubjectPrincipal:
		record.Principal = subject.Value
	case block.SubjectAddress:
		record.Address = subject.Value
	}
	if err := s.recorder.Record(ctx, record); err != nil {
		s.logger.WithError(err).Error("failed to audit registry mutation")
	}
}

func (s *service) publish(ctx context.Context, subject block.SubjectKey, blocked bool, reason, actor string) {
	ev := event.BlockStateChangedEvent{
		SubjectKey: subject.String(),
		Blocked:    blocked,
		Reason:     reason,
		Actor:      actor,
	}
	if err := s.publisher.Publish(ctx, cache.EventsChannel, ev); err != nil {
		s.logger.WithError(err).Error("failed to publish block state change")
	}
}

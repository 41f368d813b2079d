package incident

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/domain/incident"
)

//go:generate mockery --name=Recorder --dir=. --output=./mocks --filename=recorder_mock.go --case=underscore --with-expecter
type Recorder interface {
	Record(ctx context.Context, record *incident.Record) error
}

type recorder struct {
	logger *logrus.Logger
	repo   incident.Repository
}

func NewRecorder(logger *logrus.Logger, repo incident.Repository) Recorder {
	return &recorder{
		logger: logger,
		repo:   repo,
	}
}

func (r *recorder) Record(ctx context.Context, record *incident.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid incident: %w", err)
	}
	if err := r.repo.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to record incident: %w", err)
	}
	r.logger.WithFields(logrus.Fields{
		"principal": record.Principal,
		"address":   record.Address,
		"kind":      record.Kind,
		"severity":  record.Severity,
		"threat":    record.Threat,
	}).Debug("incident recorded")
	return nil
}

package escalation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/app/registry"
	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/domain/block"
	"github.com/aegisops/actiongate/pkg/infra/cache"
	"github.com/aegisops/actiongate/pkg/infra/cache/event"
	"github.com/aegisops/actiongate/pkg/infra/notifier"
	"github.com/aegisops/actiongate/pkg/infra/prometheus"
)

const systemActor = "system"

//go:generate mockery --name=Bridge --dir=. --output=./mocks --filename=bridge_mock.go --case=underscore --with-expecter
type Bridge interface {
	// HandleVerdict escalates a threat verdict: high severity auto-blocks
	// the source address, and the operator channel is notified. The
	// notification is best effort and never fails the caller.
	HandleVerdict(ctx context.Context, ev action.Event, verdict action.Verdict) error
	// HandleOperatorCommand applies a remediation command from the
	// operator channel. The state mutation happens before the ack, and a
	// command ID is acked at most once.
	HandleOperatorCommand(ctx context.Context, cmd notifier.InboundCommand) error
	// AlertBlockedAttempt reports an attempt by a blocked subject.
	AlertBlockedAttempt(ctx context.Context, ev action.Event, subject block.SubjectKey)
}

type bridge struct {
	logger    *logrus.Logger
	registry  registry.Service
	notifier  notifier.Notifier
	publisher cache.EventPublisher
	dedupe    *cache.TTLMap
	enabled   bool
}

func NewBridge(
	logger *logrus.Logger,
	reg registry.Service,
	n notifier.Notifier,
	publisher cache.EventPublisher,
	dedupe *cache.TTLMap,
	enabled bool,
) Bridge {
	return &bridge{
		logger:    logger,
		registry:  reg,
		notifier:  n,
		publisher: publisher,
		dedupe:    dedupe,
		enabled:   enabled,
	}
}

func (b *bridge) HandleVerdict(ctx context.Context, ev action.Event, verdict action.Verdict) error {
	if !verdict.Threat {
		return nil
	}

	b.publishAlert(ctx, ev, verdict)

	autoBlocked := false
	if verdict.Severity == action.SeverityHigh {
		subject := block.AddressKey(ev.Address)
		if _, err := b.registry.Block(ctx, subject, verdict.Reason, systemActor, nil); err != nil {
			return err
		}
		autoBlocked = true
	}

	b.notify(ctx, notifier.Alert{
		SubjectKey: block.AddressKey(ev.Address).String(),
		Principal:  ev.Principal,
		Address:    ev.Address,
		Kind:       string(ev.Kind),
		Severity:   verdict.Severity,
		Reason:     verdict.Reason,
		AutoBlock:  autoBlocked,
		Commands:   []string{notifier.CommandBlock, notifier.CommandUnblock},
	})

	return nil
}

func (b *bridge) HandleOperatorCommand(ctx context.Context, cmd notifier.InboundCommand) error {
	if !b.dedupe.SetIfAbsent(cmd.ID, struct{}{}) {
		b.logger.WithField("command_id", cmd.ID).Info("duplicate operator command ignored")
		return nil
	}

	subject, err := block.ParseSubjectKey(cmd.SubjectKey)
	if err != nil {
		// A failed command releases its ID so a corrected or retried
		// command is not swallowed as a duplicate.
		b.dedupe.Delete(cmd.ID)
		return err
	}

	actor := cmd.Actor
	if actor == "" {
		actor = "notifier"
	}

	var result string
	switch cmd.Action {
	case notifier.CommandBlock:
		res, err := b.registry.Block(ctx, subject, cmd.Reason, actor, nil)
		if err != nil {
			b.dedupe.Delete(cmd.ID)
			return err
		}
		result = "blocked"
		if !res.Created {
			result = "already_blocked"
		}
	case notifier.CommandUnblock:
		removed, err := b.registry.Unblock(ctx, subject, actor)
		if err != nil {
			b.dedupe.Delete(cmd.ID)
			return err
		}
		result = "unblocked"
		if !removed {
			result = "not_blocked"
		}
	}

	// The mutation is committed; a lost ack leaves state correct and the
	// operator channel free to retry, which dedupe then absorbs.
	b.ack(ctx, notifier.Ack{
		CommandID: cmd.ID,
		Action:    cmd.Action,
		Subject:   cmd.SubjectKey,
		Result:    result,
	})

	return nil
}

func (b *bridge) AlertBlockedAttempt(ctx context.Context, ev action.Event, subject block.SubjectKey) {
	b.publishAlert(ctx, ev, action.Threat(action.SeverityHigh, "attempt by blocked subject"))

	b.notify(ctx, notifier.Alert{
		SubjectKey: subject.String(),
		Principal:  ev.Principal,
		Address:    ev.Address,
		Kind:       string(ev.Kind),
		Severity:   action.SeverityHigh,
		Reason:     "attempt by blocked subject",
		Commands:   []string{notifier.CommandUnblock},
	})
}

func (b *bridge) notify(ctx context.Context, alert notifier.Alert) {
	if !b.enabled {
		return
	}
	if err := b.notifier.Notify(ctx, alert); err != nil {
		prometheus.NotifierFailuresTotal.Inc()
		b.logger.WithError(err).WithField("subject", alert.SubjectKey).Error("failed to deliver alert")
	}
}

func (b *bridge) ack(ctx context.Context, ack notifier.Ack) {
	if !b.enabled {
		return
	}
	if err := b.notifier.AckCommand(ctx, ack); err != nil {
		prometheus.NotifierFailuresTotal.Inc()
		b.logger.WithError(err).WithField("command_id", ack.CommandID).Error("failed to ack operator command")
	}
}

func (b *bridge) publishAlert(ctx context.Context, ev action.Event, verdict action.Verdict) {
	alert := event.AlertRaisedEvent{
		Principal: ev.Principal,
		Address:   ev.Address,
		Kind:      string(ev.Kind),
		Severity:  string(verdict.Severity),
		Reason:    verdict.Reason,
	}
	if err := b.publisher.Publish(ctx, cache.EventsChannel, alert); err != nil {
		b.logger.WithError(err).Error("failed to publish alert event")
	}
}

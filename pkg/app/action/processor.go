package action

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/app/analyzer"
	"github.com/aegisops/actiongate/pkg/app/escalation"
	"github.com/aegisops/actiongate/pkg/app/gatecheck"
	appincident "github.com/aegisops/actiongate/pkg/app/incident"
	"github.com/aegisops/actiongate/pkg/config"
	domainAction "github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/domain/incident"
	"github.com/aegisops/actiongate/pkg/infra/prometheus"
)

type Outcome string

const (
	OutcomeAllowed      Outcome = "allowed"
	OutcomeFlagged      Outcome = "flagged"
	OutcomeDenied       Outcome = "denied"
	OutcomeBlocked      Outcome = "blocked"
	OutcomeWindowDenied Outcome = "window_denied"
	OutcomeQuotaDenied  Outcome = "quota_denied"
)

// Result is the processor's answer for one event. Outcome drives the
// transport status; Verdict carries the analyzer detail when one ran.
type Result struct {
	Outcome Outcome              `json:"outcome"`
	Verdict domainAction.Verdict `json:"verdict"`
	Reason  string               `json:"reason,omitempty"`
}

//go:generate mockery --name=Processor --dir=. --output=./mocks --filename=processor_mock.go --case=underscore --with-expecter
type Processor interface {
	Process(ctx context.Context, ev domainAction.Event) (Result, error)
}

type processor struct {
	logger   *logrus.Logger
	gate     gatecheck.Gate
	analyzer analyzer.Analyzer
	recorder appincident.Recorder
	bridge   escalation.Bridge
	policy   config.PolicyConfig
}

func NewProcessor(
	logger *logrus.Logger,
	gate gatecheck.Gate,
	riskAnalyzer analyzer.Analyzer,
	recorder appincident.Recorder,
	bridge escalation.Bridge,
	policy config.PolicyConfig,
) Processor {
	return &processor{
		logger:   logger,
		gate:     gate,
		analyzer: riskAnalyzer,
		recorder: recorder,
		bridge:   bridge,
		policy:   policy,
	}
}

// Process runs the full pipeline: gate first, then the risk rules, then
// escalation. Every decision leaves an incident row behind.
func (p *processor) Process(ctx context.Context, ev domainAction.Event) (Result, error) {
	gateResult, err := p.gate.Check(ctx, ev)
	if err != nil {
		return Result{}, err
	}

	switch gateResult.Denial {
	case gatecheck.DenialBlocked:
		if err := p.record(ctx, ev, incident.KindBlockedAttempt, gateResult.Reason,
			domainAction.SeverityHigh, true, incident.DetailJSON{
				"subject_key": gateResult.BlockedSubject.String(),
			}); err != nil {
			return Result{}, err
		}
		p.bridge.AlertBlockedAttempt(ctx, ev, gateResult.BlockedSubject)
		p.count(ev, OutcomeBlocked)
		return Result{Outcome: OutcomeBlocked, Reason: gateResult.Reason}, nil

	case gatecheck.DenialWindow:
		if err := p.record(ctx, ev, incident.KindWindowDenied, gateResult.Reason,
			domainAction.SeverityLow, false, nil); err != nil {
			return Result{}, err
		}
		p.count(ev, OutcomeWindowDenied)
		return Result{Outcome: OutcomeWindowDenied, Reason: gateResult.Reason}, nil

	case gatecheck.DenialQuota:
		if err := p.record(ctx, ev, incident.KindQuotaDenied, gateResult.Reason,
			domainAction.SeverityLow, false, nil); err != nil {
			return Result{}, err
		}
		p.count(ev, OutcomeQuotaDenied)
		return Result{Outcome: OutcomeQuotaDenied, Reason: gateResult.Reason}, nil
	}

	if gateResult.Trusted && ev.Kind == domainAction.KindUpload && p.policy.TrustedUploadBypass {
		if err := p.record(ctx, ev, string(ev.Kind), "", domainAction.SeverityLow, false,
			incident.DetailJSON{"trusted_bypass": true}); err != nil {
			return Result{}, err
		}
		p.count(ev, OutcomeAllowed)
		return Result{Outcome: OutcomeAllowed, Verdict: domainAction.NoThreat()}, nil
	}

	verdict := p.analyzer.Analyze(analyzer.Input{
		Event:        ev,
		KnownAddress: gateResult.Trusted,
	})
	prometheus.VerdictsTotal.WithLabelValues(string(verdict.Severity), fmt.Sprintf("%t", verdict.Threat)).Inc()

	if err := p.record(ctx, ev, string(ev.Kind), verdict.Reason, verdict.Severity, verdict.Threat, p.detail(ev)); err != nil {
		return Result{}, err
	}

	if verdict.Threat {
		if err := p.bridge.HandleVerdict(ctx, ev, verdict); err != nil {
			return Result{}, err
		}
		outcome := OutcomeFlagged
		if verdict.Severity == domainAction.SeverityHigh {
			outcome = OutcomeDenied
		}
		p.count(ev, outcome)
		return Result{Outcome: outcome, Verdict: verdict, Reason: verdict.Reason}, nil
	}

	p.count(ev, OutcomeAllowed)
	return Result{Outcome: OutcomeAllowed, Verdict: verdict}, nil
}

func (p *processor) record(
	ctx context.Context,
	ev domainAction.Event,
	kind, reason string,
	severity domainAction.Severity,
	threat bool,
	detail incident.DetailJSON,
) error {
	return p.recorder.Record(ctx, &incident.Record{
		Principal: ev.Principal,
		Address:   ev.Address,
		Kind:      kind,
		Reason:    reason,
		Severity:  severity,
		Threat:    threat,
		Detail:    detail,
	})
}

func (p *processor) detail(ev domainAction.Event) incident.DetailJSON {
	switch ev.Kind {
	case domainAction.KindUpload:
		if ev.File != nil {
			return incident.DetailJSON{"file_name": ev.File.Name, "file_size": ev.File.Size}
		}
	case domainAction.KindRoleChange:
		if ev.RoleChange != nil {
			return incident.DetailJSON{"old_role": ev.RoleChange.OldRole, "new_role": ev.RoleChange.NewRole}
		}
	}
	return nil
}

func (p *processor) count(ev domainAction.Event, outcome Outcome) {
	prometheus.ActionsTotal.WithLabelValues(string(ev.Kind), string(outcome)).Inc()
}

package gatecheck

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/app/registry"
	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/domain/block"
	"github.com/aegisops/actiongate/pkg/domain/trust"
	"github.com/aegisops/actiongate/pkg/infra/ratewindow"
)

type Denial int

const (
	DenialNone Denial = iota
	DenialBlocked
	DenialWindow
	DenialQuota
)

// Result is the gate's answer for one event. Trusted is true when a
// trusted pair exists for the event, whether or not a denial fired.
type Result struct {
	Trusted        bool
	Denial         Denial
	BlockedSubject block.SubjectKey
	Reason         string
}

func (r Result) Denied() bool {
	return r.Denial != DenialNone
}

//go:generate mockery --name=Gate --dir=. --output=./mocks --filename=gate_mock.go --case=underscore --with-expecter
type Gate interface {
	Check(ctx context.Context, ev action.Event) (Result, error)
}

type Opts struct {
	TimeProvider func() time.Time
}

type gate struct {
	logger       *logrus.Logger
	registry     registry.Service
	trustRepo    trust.Repository
	window       *ratewindow.RateWindow
	timeProvider func() time.Time
}

func NewGate(
	logger *logrus.Logger,
	reg registry.Service,
	trustRepo trust.Repository,
	window *ratewindow.RateWindow,
	opts *Opts,
) Gate {
	timeProvider := time.Now
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}
	return &gate{
		logger:       logger,
		registry:     reg,
		trustRepo:    trustRepo,
		window:       window,
		timeProvider: timeProvider,
	}
}

// Check runs the deny-before-allow sequence: block registry first, then
// the trusted pair's wall-clock window, then its quotas. A blocked
// subject never consumes window or quota state.
func (g *gate) Check(ctx context.Context, ev action.Event) (Result, error) {
	for _, subject := range []block.SubjectKey{
		block.AddressKey(ev.Address),
		block.PrincipalKey(ev.Principal),
	} {
		blocked, err := g.registry.IsBlocked(ctx, subject)
		if err != nil {
			return Result{}, fmt.Errorf("failed to check block state: %w", err)
		}
		if blocked {
			return Result{
				Denial:         DenialBlocked,
				BlockedSubject: subject,
				Reason:         fmt.Sprintf("subject %s is blocked", subject.String()),
			}, nil
		}
	}

	entry, err := g.trustRepo.Find(ctx, ev.Principal, ev.Address)
	if err != nil {
		return Result{}, fmt.Errorf("failed to look up trusted pair: %w", err)
	}
	if entry == nil {
		return Result{}, nil
	}

	now := g.timeProvider()
	inWindow, err := entry.WindowContains(now)
	if err != nil {
		return Result{}, fmt.Errorf("corrupt trusted pair window: %w", err)
	}
	if !inWindow {
		return Result{
			Trusted: true,
			Denial:  DenialWindow,
			Reason: fmt.Sprintf("outside allowed window %s-%s",
				*entry.AllowedFrom, *entry.AllowedTo),
		}, nil
	}

	if max := entry.QuotaFor(ev.Kind); max != nil {
		key := fmt.Sprintf("quota:%s:%s:%s", ev.Kind, ev.Principal, ev.Address)
		count := g.window.Observe(key, entry.QuotaWindow())
		if count > *max {
			return Result{
				Trusted: true,
				Denial:  DenialQuota,
				Reason:  fmt.Sprintf("%s quota of %d per %s exhausted", ev.Kind, *max, entry.QuotaWindow()),
			}, nil
		}
	}

	return Result{Trusted: true}, nil
}

package analyzer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aegisops/actiongate/pkg/config"
	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/infra/ratewindow"
)

// Input is one event plus the context bits the rules need but the event
// itself does not carry.
type Input struct {
	Event action.Event
	// AddressBlocked is true when the event address sits in the block
	// registry. Gated paths never reach the analyzer with it set; it
	// exists for callers that score without gating first.
	AddressBlocked bool
	// KnownAddress is true when the (principal, address) pair is
	// registered as trusted.
	KnownAddress bool
}

//go:generate mockery --name=Analyzer --dir=. --output=./mocks --filename=analyzer_mock.go --case=underscore --with-expecter
type Analyzer interface {
	Analyze(in Input) action.Verdict
}

type engine struct {
	policy     config.PolicyConfig
	window     *ratewindow.RateWindow
	extensions map[string]struct{}
}

// NewRiskAnalyzer builds the rule engine. Rules run in a fixed order and
// the first match wins; tuning the policy changes thresholds, never the
// order.
func NewRiskAnalyzer(policy config.PolicyConfig, window *ratewindow.RateWindow) Analyzer {
	extensions := make(map[string]struct{}, len(policy.AllowedUploadExtensions))
	for _, ext := range policy.AllowedUploadExtensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}
	return &engine{
		policy:     policy,
		window:     window,
		extensions: extensions,
	}
}

func (e *engine) Analyze(in Input) action.Verdict {
	ev := in.Event

	if in.AddressBlocked {
		return action.Threat(action.SeverityHigh, fmt.Sprintf("blocked address %s", ev.Address))
	}

	if ev.Kind == action.KindLogin {
		hour := ev.OccurredAt.Hour()
		if hour < e.policy.AllowedHourStart || hour > e.policy.AllowedHourEnd {
			return action.Threat(action.SeverityMedium, fmt.Sprintf("login at unusual hour %02d:00", hour))
		}
		if !in.KnownAddress {
			return action.Threat(action.SeverityMedium, fmt.Sprintf("login from unknown address %s", ev.Address))
		}
	}

	if ev.Kind == action.KindUpload && ev.File != nil {
		if v, ok := e.checkUpload(ev.File); !ok {
			return v
		}
	}

	if ev.Kind == action.KindRoleChange && ev.RoleChange != nil {
		if ev.RoleChange.OldRole != "admin" && ev.RoleChange.NewRole == "admin" {
			return action.Threat(action.SeverityHigh,
				fmt.Sprintf("unauthorized escalation from %s to admin", ev.RoleChange.OldRole))
		}
	}

	if ev.Kind == action.KindLogin {
		// The attempt is recorded before comparing, so the threshold-plus-one
		// attempt inside the window is the first one flagged. The counter is
		// per (principal, address): a flood from one address must not taint
		// the principal's logins from elsewhere.
		count := e.window.Observe("login_flood:"+ev.Principal+":"+ev.Address, e.floodWindow())
		if count > e.policy.LoginFloodThreshold {
			return action.Threat(action.SeverityHigh,
				fmt.Sprintf("rate limit: %d login attempts within %s", count, e.floodWindow()))
		}
	}

	return action.NoThreat()
}

func (e *engine) checkUpload(file *action.FilePayload) (action.Verdict, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Name), "."))
	if _, ok := e.extensions[ext]; !ok {
		return action.Threat(action.SeverityMedium, fmt.Sprintf("disallowed file type %q", ext)), false
	}
	if file.Size > e.policy.MaxUploadBytes {
		return action.Threat(action.SeverityMedium,
			fmt.Sprintf("file too large: %d bytes exceeds limit %d", file.Size, e.policy.MaxUploadBytes)), false
	}
	return action.Verdict{}, true
}

func (e *engine) floodWindow() time.Duration {
	return time.Duration(e.policy.LoginFloodWindowSeconds) * time.Second
}

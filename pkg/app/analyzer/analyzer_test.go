package analyzer_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aegisops/actiongate/pkg/app/analyzer"
	"github.com/aegisops/actiongate/pkg/config"
	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/infra/ratewindow"
)

func newAnalyzer() analyzer.Analyzer {
	return analyzer.NewRiskAnalyzer(config.DefaultPolicy(), ratewindow.NewRateWindow(nil))
}

func at(hour int) time.Time {
	return time.Date(2025, 3, 1, hour, 30, 0, 0, time.UTC)
}

func loginEvent(principal, address string, hour int) action.Event {
	return action.Event{
		Principal:  principal,
		Address:    address,
		Kind:       action.KindLogin,
		OccurredAt: at(hour),
	}
}

func TestAnalyze_BlockedAddressWinsOverEverything(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{
		Event:          loginEvent("alice", "10.0.0.9", 3),
		AddressBlocked: true,
		KnownAddress:   false,
	})

	assert.True(t, v.Threat)
	assert.Equal(t, action.SeverityHigh, v.Severity)
	assert.Contains(t, v.Reason, "blocked")
}

func TestAnalyze_LoginAtUnusualHour(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.9", 3), KnownAddress: true})

	assert.True(t, v.Threat)
	assert.Equal(t, action.SeverityMedium, v.Severity)
	assert.Contains(t, v.Reason, "unusual hour")
}

func TestAnalyze_HourBoundariesAreAllowed(t *testing.T) {
	a := newAnalyzer()

	for _, hour := range []int{5, 23} {
		v := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.9", hour), KnownAddress: true})
		assert.False(t, v.Threat, "hour %d should be inside the allowed window", hour)
	}
	v := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.9", 4), KnownAddress: true})
	assert.True(t, v.Threat)
}

func TestAnalyze_LoginFromUnknownAddress(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{Event: loginEvent("alice", "198.51.100.7", 12), KnownAddress: false})

	assert.True(t, v.Threat)
	assert.Equal(t, action.SeverityMedium, v.Severity)
	assert.Contains(t, v.Reason, "unknown address")
}

func TestAnalyze_UnknownAddressIgnoredForUploads(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{
		Event: action.Event{
			Principal:  "alice",
			Address:    "198.51.100.7",
			Kind:       action.KindUpload,
			File:       &action.FilePayload{Name: "report.pdf", Size: 1024},
			OccurredAt: at(12),
		},
		KnownAddress: false,
	})

	assert.False(t, v.Threat)
}

func TestAnalyze_UploadDisallowedExtension(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{
		Event: action.Event{
			Principal:  "alice",
			Address:    "10.0.0.9",
			Kind:       action.KindUpload,
			File:       &action.FilePayload{Name: "payload.EXE", Size: 10},
			OccurredAt: at(12),
		},
		KnownAddress: true,
	})

	assert.True(t, v.Threat)
	assert.Equal(t, action.SeverityMedium, v.Severity)
	assert.Contains(t, v.Reason, "disallowed file type")
}

func TestAnalyze_UploadExtensionIsCaseInsensitive(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{
		Event: action.Event{
			Principal:  "alice",
			Address:    "10.0.0.9",
			Kind:       action.KindUpload,
			File:       &action.FilePayload{Name: "photo.JPG", Size: 10},
			OccurredAt: at(12),
		},
		KnownAddress: true,
	})

	assert.False(t, v.Threat)
}

func TestAnalyze_UploadSizeLimit(t *testing.T) {
	a := newAnalyzer()
	limit := int64(5 * 1024 * 1024)

	exactly := a.Analyze(analyzer.Input{
		Event: action.Event{
			Principal:  "alice",
			Address:    "10.0.0.9",
			Kind:       action.KindUpload,
			File:       &action.FilePayload{Name: "big.pdf", Size: limit},
			OccurredAt: at(12),
		},
		KnownAddress: true,
	})
	assert.False(t, exactly.Threat, "a file of exactly the limit is allowed")

	over := a.Analyze(analyzer.Input{
		Event: action.Event{
			Principal:  "alice",
			Address:    "10.0.0.9",
			Kind:       action.KindUpload,
			File:       &action.FilePayload{Name: "big.pdf", Size: limit + 1},
			OccurredAt: at(12),
		},
		KnownAddress: true,
	})
	assert.True(t, over.Threat)
	assert.Equal(t, action.SeverityMedium, over.Severity)
	assert.Contains(t, over.Reason, "file too large")
}

func TestAnalyze_RoleEscalationToAdmin(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{
		Event: action.Event{
			Principal:  "mallory",
			Address:    "10.0.0.9",
			Kind:       action.KindRoleChange,
			RoleChange: &action.RoleChangePayload{OldRole: "editor", NewRole: "admin"},
			OccurredAt: at(12),
		},
		KnownAddress: true,
	})

	assert.True(t, v.Threat)
	assert.Equal(t, action.SeverityHigh, v.Severity)
	assert.Contains(t, v.Reason, "unauthorized escalation")
}

func TestAnalyze_AdminToAdminIsNotEscalation(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{
		Event: action.Event{
			Principal:  "root",
			Address:    "10.0.0.9",
			Kind:       action.KindRoleChange,
			RoleChange: &action.RoleChangePayload{OldRole: "admin", NewRole: "admin"},
			OccurredAt: at(12),
		},
		KnownAddress: true,
	})

	assert.False(t, v.Threat)
}

func TestAnalyze_LoginFloodTriggersOnSixthAttempt(t *testing.T) {
	a := newAnalyzer()

	for i := 0; i < 5; i++ {
		v := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.9", 12), KnownAddress: true})
		assert.False(t, v.Threat, "attempt %d should pass", i+1)
	}

	sixth := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.9", 12), KnownAddress: true})
	assert.True(t, sixth.Threat)
	assert.Equal(t, action.SeverityHigh, sixth.Severity)
	assert.Contains(t, sixth.Reason, "rate limit")
}

func TestAnalyze_LoginFloodCountsPerPrincipal(t *testing.T) {
	a := newAnalyzer()

	for i := 0; i < 5; i++ {
		principal := fmt.Sprintf("user-%d", i)
		v := a.Analyze(analyzer.Input{Event: loginEvent(principal, "10.0.0.9", 12), KnownAddress: true})
		assert.False(t, v.Threat)
	}
}

func TestAnalyze_LoginFloodCountsPerAddress(t *testing.T) {
	a := newAnalyzer()

	for i := 0; i < 5; i++ {
		v := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.1", 12), KnownAddress: true})
		assert.False(t, v.Threat, "attempt %d should pass", i+1)
	}

	// A flood from one address must not flag the principal's first login
	// from another address.
	fresh := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.2", 12), KnownAddress: true})
	assert.False(t, fresh.Threat)

	sixth := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.1", 12), KnownAddress: true})
	assert.True(t, sixth.Threat)
	assert.Equal(t, action.SeverityHigh, sixth.Severity)
}

func TestAnalyze_CleanEventPassesAllRules(t *testing.T) {
	a := newAnalyzer()

	v := a.Analyze(analyzer.Input{Event: loginEvent("alice", "10.0.0.9", 12), KnownAddress: true})

	assert.False(t, v.Threat)
	assert.Equal(t, action.SeverityLow, v.Severity)
	assert.Empty(t, v.Reason)
}

package action_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appaction "github.com/aegisops/actiongate/pkg/app/action"
	"github.com/aegisops/actiongate/pkg/app/analyzer"
	analyzermocks "github.com/aegisops/actiongate/pkg/app/analyzer/mocks"
	escalationmocks "github.com/aegisops/actiongate/pkg/app/escalation/mocks"
	"github.com/aegisops/actiongate/pkg/app/gatecheck"
	gatemocks "github.com/aegisops/actiongate/pkg/app/gatecheck/mocks"
	"github.com/aegisops/actiongate/pkg/app/incident"
	"github.com/aegisops/actiongate/pkg/config"
	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/domain/block"
	domainincident "github.com/aegisops/actiongate/pkg/domain/incident"
	incidentmocks "github.com/aegisops/actiongate/pkg/domain/incident/mocks"
)

type processorFixture struct {
	gate         *gatemocks.Gate
	analyzer     *analyzermocks.Analyzer
	incidentRepo *incidentmocks.Repository
	bridge       *escalationmocks.Bridge
	processor    appaction.Processor
}

func newProcessorFixture(t *testing.T) *processorFixture {
	t.Helper()
	logger := logrus.New()
	f := &processorFixture{
		gate:         new(gatemocks.Gate),
		analyzer:     new(analyzermocks.Analyzer),
		incidentRepo: new(incidentmocks.Repository),
		bridge:       new(escalationmocks.Bridge),
	}
	f.processor = appaction.NewProcessor(
		logger, f.gate, f.analyzer,
		incident.NewRecorder(logger, f.incidentRepo),
		f.bridge, config.DefaultPolicy(),
	)
	return f
}

func loginEvent() action.Event {
	return action.Event{
		Principal:  "alice",
		Address:    "10.0.0.9",
		Kind:       action.KindLogin,
		OccurredAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func uploadEvent() action.Event {
	ev := loginEvent()
	ev.Kind = action.KindUpload
	ev.File = &action.FilePayload{Name: "report.pdf", Size: 1024}
	return ev
}

func TestProcess_CleanEventIsAllowed(t *testing.T) {
	f := newProcessorFixture(t)

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{Trusted: true}, nil)
	f.analyzer.On("Analyze", mock.Anything).Return(action.NoThreat())
	f.incidentRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domainincident.Record) bool {
		return r.Kind == "login" && !r.Threat
	})).Return(nil)

	result, err := f.processor.Process(context.Background(), loginEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeAllowed, result.Outcome)
	f.bridge.AssertNotCalled(t, "HandleVerdict", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_BlockedSubjectNeverReachesAnalyzer(t *testing.T) {
	f := newProcessorFixture(t)
	subject := block.AddressKey("10.0.0.9")

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{
		Denial:         gatecheck.DenialBlocked,
		BlockedSubject: subject,
		Reason:         "subject ip:10.0.0.9 is blocked",
	}, nil)
	f.incidentRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domainincident.Record) bool {
		return r.Kind == domainincident.KindBlockedAttempt && r.Threat
	})).Return(nil)
	f.bridge.On("AlertBlockedAttempt", mock.Anything, mock.Anything, subject).Return()

	result, err := f.processor.Process(context.Background(), loginEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeBlocked, result.Outcome)
	f.analyzer.AssertNotCalled(t, "Analyze", mock.Anything)
	f.bridge.AssertExpectations(t)
}

func TestProcess_WindowDenialRecordsLowNonThreat(t *testing.T) {
	f := newProcessorFixture(t)

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{
		Trusted: true,
		Denial:  gatecheck.DenialWindow,
		Reason:  "outside allowed window 09:00-17:00",
	}, nil)
	f.incidentRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domainincident.Record) bool {
		return r.Kind == domainincident.KindWindowDenied && !r.Threat && r.Severity == action.SeverityLow
	})).Return(nil)

	result, err := f.processor.Process(context.Background(), loginEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeWindowDenied, result.Outcome)
	f.analyzer.AssertNotCalled(t, "Analyze", mock.Anything)
}

func TestProcess_QuotaDenial(t *testing.T) {
	f := newProcessorFixture(t)

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{
		Trusted: true,
		Denial:  gatecheck.DenialQuota,
		Reason:  "login quota of 2 per 1h0m0s exhausted",
	}, nil)
	f.incidentRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domainincident.Record) bool {
		return r.Kind == domainincident.KindQuotaDenied
	})).Return(nil)

	result, err := f.processor.Process(context.Background(), loginEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeQuotaDenied, result.Outcome)
}

func TestProcess_TrustedUploadBypassesAnalyzer(t *testing.T) {
	f := newProcessorFixture(t)

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{Trusted: true}, nil)
	f.incidentRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domainincident.Record) bool {
		return r.Kind == "upload" && !r.Threat && r.Detail["trusted_bypass"] == true
	})).Return(nil)

	result, err := f.processor.Process(context.Background(), uploadEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeAllowed, result.Outcome)
	f.analyzer.AssertNotCalled(t, "Analyze", mock.Anything)
}

func TestProcess_UntrustedUploadIsStillAnalyzed(t *testing.T) {
	f := newProcessorFixture(t)

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{Trusted: false}, nil)
	f.analyzer.On("Analyze", mock.MatchedBy(func(in analyzer.Input) bool {
		return !in.KnownAddress
	})).Return(action.NoThreat())
	f.incidentRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := f.processor.Process(context.Background(), uploadEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeAllowed, result.Outcome)
	f.analyzer.AssertExpectations(t)
}

func TestProcess_MediumThreatIsFlaggedAndEscalated(t *testing.T) {
	f := newProcessorFixture(t)
	verdict := action.Threat(action.SeverityMedium, "login at unusual hour 03:00")

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{Trusted: true}, nil)
	f.analyzer.On("Analyze", mock.Anything).Return(verdict)
	f.incidentRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domainincident.Record) bool {
		return r.Threat && r.Severity == action.SeverityMedium
	})).Return(nil)
	f.bridge.On("HandleVerdict", mock.Anything, mock.Anything, verdict).Return(nil)

	result, err := f.processor.Process(context.Background(), loginEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeFlagged, result.Outcome)
	f.bridge.AssertExpectations(t)
}

func TestProcess_HighThreatIsDenied(t *testing.T) {
	f := newProcessorFixture(t)
	verdict := action.Threat(action.SeverityHigh, "login flood")

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{Trusted: true}, nil)
	f.analyzer.On("Analyze", mock.Anything).Return(verdict)
	f.incidentRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.bridge.On("HandleVerdict", mock.Anything, mock.Anything, verdict).Return(nil)

	result, err := f.processor.Process(context.Background(), loginEvent())

	require.NoError(t, err)
	assert.Equal(t, appaction.OutcomeDenied, result.Outcome)
}

func TestProcess_PersistenceFailureSurfaces(t *testing.T) {
	f := newProcessorFixture(t)

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{Trusted: true}, nil)
	f.analyzer.On("Analyze", mock.Anything).Return(action.NoThreat())
	f.incidentRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.processor.Process(context.Background(), loginEvent())

	assert.Error(t, err)
}

func TestProcess_GateFailureSurfaces(t *testing.T) {
	f := newProcessorFixture(t)

	f.gate.On("Check", mock.Anything, mock.Anything).Return(gatecheck.Result{}, errors.New("db down"))

	_, err := f.processor.Process(context.Background(), loginEvent())

	assert.Error(t, err)
}

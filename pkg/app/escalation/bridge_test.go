package escalation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/actiongate/pkg/app/escalation"
	"github.com/aegisops/actiongate/pkg/app/registry"
	registrymocks "github.com/aegisops/actiongate/pkg/app/registry/mocks"
	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/domain/block"
	"github.com/aegisops/actiongate/pkg/infra/cache"
	cachemocks "github.com/aegisops/actiongate/pkg/infra/cache/mocks"
	"github.com/aegisops/actiongate/pkg/infra/notifier"
	notifiermocks "github.com/aegisops/actiongate/pkg/infra/notifier/mocks"
)

type bridgeFixture struct {
	registry  *registrymocks.Service
	notifier  *notifiermocks.Notifier
	publisher *cachemocks.EventPublisher
	bridge    escalation.Bridge
}

func newBridgeFixture(t *testing.T) *bridgeFixture {
	t.Helper()
	f := &bridgeFixture{
		registry:  new(registrymocks.Service),
		notifier:  new(notifiermocks.Notifier),
		publisher: new(cachemocks.EventPublisher),
	}
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.bridge = escalation.NewBridge(
		logrus.New(), f.registry, f.notifier, f.publisher,
		cache.NewTTLMap(time.Minute), true,
	)
	return f
}

func testEvent() action.Event {
	return action.Event{
		Principal:  "mallory",
		Address:    "10.0.0.9",
		Kind:       action.KindLogin,
		OccurredAt: time.Now(),
	}
}

func TestHandleVerdict_NoThreatIsNoop(t *testing.T) {
	f := newBridgeFixture(t)

	err := f.bridge.HandleVerdict(context.Background(), testEvent(), action.NoThreat())

	require.NoError(t, err)
	f.registry.AssertNotCalled(t, "Block", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestHandleVerdict_HighSeverityAutoBlocksThenNotifies(t *testing.T) {
	f := newBridgeFixture(t)
	subject := block.AddressKey("10.0.0.9")

	f.registry.On("Block", mock.Anything, subject, "login flood", "system", (*time.Time)(nil)).
		Return(registry.BlockResult{Created: true}, nil)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(a notifier.Alert) bool {
		return a.AutoBlock && a.Severity == action.SeverityHigh && a.SubjectKey == "ip:10.0.0.9"
	})).Return(nil)

	err := f.bridge.HandleVerdict(context.Background(), testEvent(), action.Threat(action.SeverityHigh, "login flood"))

	require.NoError(t, err)
	f.registry.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestHandleVerdict_MediumSeverityNotifiesWithoutBlocking(t *testing.T) {
	f := newBridgeFixture(t)

	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(a notifier.Alert) bool {
		return !a.AutoBlock && a.Severity == action.SeverityMedium
	})).Return(nil)

	err := f.bridge.HandleVerdict(context.Background(), testEvent(), action.Threat(action.SeverityMedium, "unusual hour"))

	require.NoError(t, err)
	f.registry.AssertNotCalled(t, "Block", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertExpectations(t)
}

func TestHandleVerdict_NotifierFailureDoesNotFailCaller(t *testing.T) {
	f := newBridgeFixture(t)

	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("webhook down"))

	err := f.bridge.HandleVerdict(context.Background(), testEvent(), action.Threat(action.SeverityMedium, "unusual hour"))

	require.NoError(t, err)
}

func TestHandleOperatorCommand_BlockMutatesThenAcks(t *testing.T) {
	f := newBridgeFixture(t)
	subject := block.AddressKey("10.0.0.9")

	f.registry.On("Block", mock.Anything, subject, "manual", "ops", (*time.Time)(nil)).
		Return(registry.BlockResult{Created: true}, nil)
	f.notifier.On("AckCommand", mock.Anything, mock.MatchedBy(func(a notifier.Ack) bool {
		return a.CommandID == "cmd-1" && a.Result == "blocked"
	})).Return(nil)

	err := f.bridge.HandleOperatorCommand(context.Background(), notifier.InboundCommand{
		ID:         "cmd-1",
		Action:     notifier.CommandBlock,
		SubjectKey: "ip:10.0.0.9",
		Actor:      "ops",
		Reason:     "manual",
	})

	require.NoError(t, err)
	f.registry.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestHandleOperatorCommand_UnblockAbsentSubject(t *testing.T) {
	f := newBridgeFixture(t)
	subject := block.PrincipalKey("mallory")

	f.registry.On("Unblock", mock.Anything, subject, "ops").Return(false, nil)
	f.notifier.On("AckCommand", mock.Anything, mock.MatchedBy(func(a notifier.Ack) bool {
		return a.Result == "not_blocked"
	})).Return(nil)

	err := f.bridge.HandleOperatorCommand(context.Background(), notifier.InboundCommand{
		ID:         "cmd-2",
		Action:     notifier.CommandUnblock,
		SubjectKey: "principal:mallory",
		Actor:      "ops",
	})

	require.NoError(t, err)
	f.notifier.AssertExpectations(t)
}

func TestHandleOperatorCommand_DuplicateCommandIsAckedOnce(t *testing.T) {
	f := newBridgeFixture(t)
	subject := block.AddressKey("10.0.0.9")

	f.registry.On("Block", mock.Anything, subject, "", "ops", (*time.Time)(nil)).
		Return(registry.BlockResult{Created: true}, nil).Once()
	f.notifier.On("AckCommand", mock.Anything, mock.Anything).Return(nil).Once()

	cmd := notifier.InboundCommand{
		ID:         "cmd-3",
		Action:     notifier.CommandBlock,
		SubjectKey: "ip:10.0.0.9",
		Actor:      "ops",
	}
	require.NoError(t, f.bridge.HandleOperatorCommand(context.Background(), cmd))
	require.NoError(t, f.bridge.HandleOperatorCommand(context.Background(), cmd))

	f.notifier.AssertNumberOfCalls(t, "AckCommand", 1)
	f.registry.AssertNumberOfCalls(t, "Block", 1)
}

func TestHandleOperatorCommand_AckFailureDoesNotFail(t *testing.T) {
	f := newBridgeFixture(t)
	subject := block.AddressKey("10.0.0.9")

	f.registry.On("Block", mock.Anything, subject, "", "ops", (*time.Time)(nil)).
		Return(registry.BlockResult{Created: true}, nil)
	f.notifier.On("AckCommand", mock.Anything, mock.Anything).Return(errors.New("webhook down"))

	err := f.bridge.HandleOperatorCommand(context.Background(), notifier.InboundCommand{
		ID:         "cmd-4",
		Action:     notifier.CommandBlock,
		SubjectKey: "ip:10.0.0.9",
		Actor:      "ops",
	})

	require.NoError(t, err)
}

func TestHandleOperatorCommand_InvalidSubjectKey(t *testing.T) {
	f := newBridgeFixture(t)

	err := f.bridge.HandleOperatorCommand(context.Background(), notifier.InboundCommand{
		ID:         "cmd-5",
		Action:     notifier.CommandBlock,
		SubjectKey: "garbage",
	})

	assert.Error(t, err)
	f.registry.AssertNotCalled(t, "Block", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleOperatorCommand_RetryAfterRegistryFailure(t *testing.T) {
	f := newBridgeFixture(t)
	subject := block.AddressKey("10.0.0.9")

	f.registry.On("Block", mock.Anything, subject, "", "ops", (*time.Time)(nil)).
		Return(registry.BlockResult{}, errors.New("store unavailable")).Once()
	f.registry.On("Block", mock.Anything, subject, "", "ops", (*time.Time)(nil)).
		Return(registry.BlockResult{Created: true}, nil).Once()
	f.notifier.On("AckCommand", mock.Anything, mock.MatchedBy(func(a notifier.Ack) bool {
		return a.CommandID == "cmd-6" && a.Result == "blocked"
	})).Return(nil).Once()

	cmd := notifier.InboundCommand{
		ID:         "cmd-6",
		Action:     notifier.CommandBlock,
		SubjectKey: "ip:10.0.0.9",
		Actor:      "ops",
	}

	// A failed command must not burn its ID: the retry has to reach the
	// registry instead of being dropped as a duplicate.
	require.Error(t, f.bridge.HandleOperatorCommand(context.Background(), cmd))
	require.NoError(t, f.bridge.HandleOperatorCommand(context.Background(), cmd))

	f.registry.AssertNumberOfCalls(t, "Block", 2)
	f.notifier.AssertNumberOfCalls(t, "AckCommand", 1)
}

func TestHandleOperatorCommand_CorrectedCommandReusesID(t *testing.T) {
	f := newBridgeFixture(t)
	subject := block.AddressKey("10.0.0.9")

	f.registry.On("Block", mock.Anything, subject, "", "ops", (*time.Time)(nil)).
		Return(registry.BlockResult{Created: true}, nil).Once()
	f.notifier.On("AckCommand", mock.Anything, mock.Anything).Return(nil).Once()

	require.Error(t, f.bridge.HandleOperatorCommand(context.Background(), notifier.InboundCommand{
		ID:         "cmd-7",
		Action:     notifier.CommandBlock,
		SubjectKey: "10.0.0.9",
		Actor:      "ops",
	}))
	require.NoError(t, f.bridge.HandleOperatorCommand(context.Background(), notifier.InboundCommand{
		ID:         "cmd-7",
		Action:     notifier.CommandBlock,
		SubjectKey: "ip:10.0.0.9",
		Actor:      "ops",
	}))

	f.registry.AssertNumberOfCalls(t, "Block", 1)
	f.notifier.AssertNumberOfCalls(t, "AckCommand", 1)
}

func TestAlertBlockedAttempt_Notifies(t *testing.T) {
	f := newBridgeFixture(t)

	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(a notifier.Alert) bool {
		return a.SubjectKey == "ip:10.0.0.9" && a.Severity == action.SeverityHigh
	})).Return(nil)

	f.bridge.AlertBlockedAttempt(context.Background(), testEvent(), block.AddressKey("10.0.0.9"))

	f.notifier.AssertExpectations(t)
}

package notifier

import (
	"context"

	"github.com/aegisops/actiongate/pkg/domain/action"
)

// Alert is an outbound escalation message for the operator channel.
// Commands lists the remediation actions the channel may send back.
type Alert struct {
	SubjectKey string          `json:"subject_key"`
	Principal  string          `json:"principal"`
	Address    string          `json:"address"`
	Kind       string          `json:"kind"`
	Severity   action.Severity `json:"severity"`
	Reason     string          `json:"reason"`
	AutoBlock  bool            `json:"auto_block"`
	Commands   []string        `json:"commands"`
}

// Ack confirms an operator command after its mutation has been applied.
type Ack struct {
	CommandID string `json:"command_id"`
	Action    string `json:"action"`
	Subject   string `json:"subject_key"`
	Result    string `json:"result"`
}

// Notifier delivers alerts and acks to the external operator channel.
// Delivery is best effort: callers must not let a failed notification
// roll back or delay a state mutation.
//
//go:generate mockery --name=Notifier --dir=. --output=./mocks --filename=notifier_mock.go --case=underscore --with-expecter
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
	AckCommand(ctx context.Context, ack Ack) error
}

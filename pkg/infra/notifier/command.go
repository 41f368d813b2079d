package notifier

import (
	"fmt"

	"github.com/valyala/fastjson"
)

const (
	CommandBlock   = "block"
	CommandUnblock = "unblock"
)

// InboundCommand is a remediation order sent back by the operator channel.
type InboundCommand struct {
	ID         string
	Action     string
	SubjectKey string
	Actor      string
	Reason     string
}

var commandParserPool fastjson.ParserPool

// ParseCommand decodes an inbound operator command and rejects anything
// without an id, a known action, or a subject.
func ParseCommand(body []byte) (InboundCommand, error) {
	parser := commandParserPool.Get()
	defer commandParserPool.Put(parser)

	v, err := parser.ParseBytes(body)
	if err != nil {
		return InboundCommand{}, fmt.Errorf("invalid command payload: %w", err)
	}

	cmd := InboundCommand{
		ID:         string(v.GetStringBytes("id")),
		Action:     string(v.GetStringBytes("action")),
		SubjectKey: string(v.GetStringBytes("subject_key")),
		Actor:      string(v.GetStringBytes("actor")),
		Reason:     string(v.GetStringBytes("reason")),
	}

	if cmd.ID == "" {
		return InboundCommand{}, fmt.Errorf("command id is required")
	}
	if cmd.Action != CommandBlock && cmd.Action != CommandUnblock {
		return InboundCommand{}, fmt.Errorf("unknown command action %q", cmd.Action)
	}
	if cmd.SubjectKey == "" {
		return InboundCommand{}, fmt.Errorf("command subject_key is required")
	}
	return cmd, nil
}

package event

// AlertRaisedEvent carries a threat verdict to live alert consumers.
type AlertRaisedEvent struct {
	Principal string `json:"principal"`
	Address   string `json:"address"`
	Kind      string `json:"kind"`
	Severity  string `json:"severity"`
	Reason    string `json:"reason"`
}

func (e AlertRaisedEvent) Type() string {
	return AlertRaisedEventType
}

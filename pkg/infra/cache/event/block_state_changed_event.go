package event

// BlockStateChangedEvent is published whenever the block registry mutates,
// so every instance refreshes its view of the subject.
type BlockStateChangedEvent struct {
	SubjectKey string `json:"subject_key"`
	Blocked    bool   `json:"blocked"`
	Reason     string `json:"reason"`
	Actor      string `json:"actor"`
}

func (e BlockStateChangedEvent) Type() string {
	return BlockStateChangedEventType
}

package event

import "reflect"

type Event interface {
	Type() string
}

var (
	BlockStateChangedEventType = "BlockStateChangedEvent"
	AlertRaisedEventType       = "AlertRaisedEvent"
)

var Registry = map[string]reflect.Type{
	BlockStateChangedEventType: reflect.TypeOf(BlockStateChangedEvent{}),
	AlertRaisedEventType:       reflect.TypeOf(AlertRaisedEvent{}),
}

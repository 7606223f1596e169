package event

type EventSource <-chan Event

// Event is a notification with a type, such as "source_replaced", and a JSON
// friendly payload.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewTypedEvent(_type string, data interface{}) Event {
	return Event{Type: _type, Data: data}
}

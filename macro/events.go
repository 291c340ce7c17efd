// Copyright © 2025 The Whisker authors

package macro

// EventType names a context notification.
type EventType string

// The notification vocabulary.  Each event carries a small data payload;
// attaching a channel never changes any other observable behavior.
const (
	EventMacroStarted      EventType = "macro-started"
	EventMacroCompleted    EventType = "macro-completed"
	EventVariableChanged   EventType = "variable-changed"
	EventOutputOverflow    EventType = "output-overflow"
	EventUndefinedVariable EventType = "undefined-variable"
	EventPassageNavigate   EventType = "passage-navigate"
)

// Event is a single context notification.
type Event struct {
	Type EventType
	Data map[string]interface{}
}

// emit sends an event to the attached channel without blocking.  A full or
// absent channel drops the event.
func (c *Context) emit(typ EventType, data map[string]interface{}) {
	if c.events == nil {
		return
	}
	select {
	case c.events <- Event{Type: typ, Data: data}:
	default:
	}
}
